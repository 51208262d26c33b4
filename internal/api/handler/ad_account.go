package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-pipeline/infrastructure/repository"
	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/pkg/apiErrors"
	"github.com/vfg2006/insights-pipeline/pkg/middleware"
)

// AdAccountList lista as contas do tenant do token, com os contadores de erro
// e o motivo de desabilitação
func AdAccountList(accountRepo repository.AccountRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		filterStatus := r.URL.Query().Get("status")

		availableStatus := make([]domain.AdAccountStatus, 0)
		if filterStatus != "" {
			for _, status := range strings.Split(filterStatus, ",") {
				availableStatus = append(availableStatus, domain.AdAccountStatus(status))
			}
		}

		accounts, err := accountRepo.ListAccounts(claims.TenantID, availableStatus)
		if err != nil {
			logrus.Error("Error listing accounts:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar contas no banco de dados", nil)
			return
		}

		response := make([]*domain.AdAccountResponse, 0, len(accounts))
		for _, account := range accounts {
			response = append(response, &domain.AdAccountResponse{
				ID:                account.ID,
				ExternalID:        account.ExternalID,
				Name:              account.Name,
				Currency:          account.Currency,
				Status:            account.Status,
				ConsecutiveErrors: account.ConsecutiveErrors,
				DisabledReason:    account.DisabledReason,
			})
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// EnableAdAccount reativa uma conta desabilitada por falhas consecutivas,
// zerando o contador de erros
func EnableAdAccount(accountRepo repository.AccountRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		externalID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if externalID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não informado", nil)
			return
		}

		account, err := accountRepo.GetAccountByExternalID(claims.TenantID, externalID)
		if err != nil {
			logrus.Error("Error fetching account:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar conta no banco de dados", nil)
			return
		}

		if account == nil {
			apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)
			return
		}

		if err := accountRepo.UpdateStatus(account.ID, domain.AdAccountStatusActive); err != nil {
			logrus.Error("Error enabling account:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao reativar conta", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"account_id": externalID,
			"tenant_id":  claims.TenantID,
		}).Info("accounts: conta reativada")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":     account.ID,
			"status": string(domain.AdAccountStatusActive),
		})
	})
}
