package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-pipeline/internal/scheduler"
	"github.com/vfg2006/insights-pipeline/pkg/apiErrors"
)

// CronJobServices contém os serviços de cron expostos nas rotas de operação
type CronJobServices struct {
	RefreshSyncService *scheduler.RefreshSyncService
}

// RunRefreshJob dispara manualmente o refresh de insights
func RunRefreshJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if services.RefreshSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de refresh não disponível", nil)
			return
		}

		if err := services.RefreshSyncService.TriggerManualSync(r.Context()); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Refresh de insights já em andamento", nil)
			return
		}

		logrus.Info("cron: refresh manual de insights disparado")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "refresh iniciado",
		})
	})
}

// GetCronStatus retorna o estado atual do agendador
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if services.RefreshSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de refresh não disponível", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(services.RefreshSyncService.GetStatus()); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
