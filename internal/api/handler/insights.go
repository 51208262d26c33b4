package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-pipeline/infrastructure/artifact"
	"github.com/vfg2006/insights-pipeline/infrastructure/repository"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/internal/usecases/diagnosing"
	"github.com/vfg2006/insights-pipeline/pkg/apiErrors"
	"github.com/vfg2006/insights-pipeline/pkg/middleware"
)

// resolveAccount carrega a conta do tenant do token a partir do parâmetro de
// rota. Escreve o erro na resposta e retorna nil quando não for possível
func resolveAccount(
	w http.ResponseWriter,
	r *http.Request,
	accountRepo repository.AccountRepository,
) *domain.AdAccount {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil
	}

	externalID := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if externalID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não informado", nil)
		return nil
	}

	account, err := accountRepo.GetAccountByExternalID(claims.TenantID, externalID)
	if err != nil {
		logrus.Error("Error fetching account:", err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar conta no banco de dados", nil)
		return nil
	}

	if account == nil {
		apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)
		return nil
	}

	return account
}

// isConfiguredWindow verifica se a janela pedida é uma das janelas agregadas
func isConfiguredWindow(cfg *config.Config, windowDays int) bool {
	for _, days := range cfg.Pipeline.WindowsDays {
		if days == windowDays {
			return true
		}
	}
	return false
}

// GetWindowInsights serve o artefato agregado de uma janela da conta
func GetWindowInsights(
	cfg *config.Config,
	accountRepo repository.AccountRepository,
	store *artifact.Store,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := resolveAccount(w, r, accountRepo)
		if account == nil {
			return
		}

		windowDays, err := strconv.Atoi(r.URL.Query().Get("window"))
		if err != nil || windowDays <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, "Parâmetro window inválido", nil)
			return
		}

		if !isConfiguredWindow(cfg, windowDays) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, "Janela de agregação não configurada", map[string]any{
				"available_windows": cfg.Pipeline.WindowsDays,
			})
			return
		}

		window, err := store.LoadWindow(account.TenantID, account.ID, windowDays)
		if err != nil {
			logrus.Error("Error loading window artifact:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao carregar artefato da janela", nil)
			return
		}

		if window == nil {
			apiErrors.WriteError(w, apiErrors.ErrArtifactMissing, "Artefato ainda não gerado para esta janela", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(window); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetDiagnostics compara duas janelas agregadas da conta e devolve o
// relatório de divergências
func GetDiagnostics(
	cfg *config.Config,
	accountRepo repository.AccountRepository,
	store *artifact.Store,
	diagnoser *diagnosing.Service,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := resolveAccount(w, r, accountRepo)
		if account == nil {
			return
		}

		windowA, errA := strconv.Atoi(r.URL.Query().Get("windowA"))
		windowB, errB := strconv.Atoi(r.URL.Query().Get("windowB"))
		if errA != nil || errB != nil || windowA <= 0 || windowB <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, "Parâmetros windowA e windowB são obrigatórios", nil)
			return
		}

		if !isConfiguredWindow(cfg, windowA) || !isConfiguredWindow(cfg, windowB) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, "Janela de agregação não configurada", map[string]any{
				"available_windows": cfg.Pipeline.WindowsDays,
			})
			return
		}

		artifactA, err := store.LoadWindow(account.TenantID, account.ID, windowA)
		if err != nil {
			logrus.Error("Error loading window artifact:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao carregar artefato da janela", nil)
			return
		}

		artifactB, err := store.LoadWindow(account.TenantID, account.ID, windowB)
		if err != nil {
			logrus.Error("Error loading window artifact:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao carregar artefato da janela", nil)
			return
		}

		if artifactA == nil || artifactB == nil {
			apiErrors.WriteError(w, apiErrors.ErrArtifactMissing, "Artefato ainda não gerado para uma das janelas", nil)
			return
		}

		report := diagnoser.Diff(artifactA.Ads, artifactB.Ads, windowA, windowB)

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(report); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
