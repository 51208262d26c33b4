package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/usecases/refreshing"
)

// RefreshSyncConfig representa a configuração do agendador de refresh de insights
type RefreshSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	SyncEnabled         bool
}

// RefreshSyncService gerencia o agendamento e a execução do refresh diário de
// insights de todas as contas ativas do tenant
type RefreshSyncService struct {
	scheduler           *gocron.Scheduler
	config              RefreshSyncConfig
	appConfig           *config.Config
	refresher           refreshing.Refresher
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *refreshing.Summary
}

// NewRefreshSyncService cria uma nova instância do serviço de sincronização
func NewRefreshSyncService(
	refresher refreshing.Refresher,
	appConfig *config.Config,
) *RefreshSyncService {
	syncConfig := RefreshSyncConfig{
		CronSchedule:        appConfig.RefreshSync.CronSchedule,
		LookbackDays:        appConfig.RefreshSync.LookbackDays,
		RequestDelaySeconds: appConfig.RefreshSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.RefreshSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de refresh de insights carregada")

	return &RefreshSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		refresher:   refresher,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *RefreshSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Refresh agendado de insights desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de refresh de insights")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar refresh de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de refresh de insights")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara um refresh fora do horário agendado. Retorna erro
// quando já existe uma execução em andamento
func (s *RefreshSyncService) TriggerManualSync(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return fmt.Errorf("refresh de insights já em andamento")
	}
	s.syncMutex.Unlock()

	go s.runRefresh(ctx)

	return nil
}

// runRefresh executa um ciclo completo de refresh, com guarda contra execuções
// sobrepostas
func (s *RefreshSyncService) runRefresh(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Refresh de insights já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	lookback := s.config.LookbackDays
	if lookback <= 0 {
		lookback = 7
	}

	// Janela de busca: de ontem-(lookback-1) até ontem; o dia corrente ainda
	// está parcial no upstream
	until := time.Now().AddDate(0, 0, -1)
	since := until.AddDate(0, 0, -(lookback - 1))

	logrus.WithFields(logrus.Fields{
		"tenant_id":  s.appConfig.App.TenantID,
		"start_date": since.Format(time.DateOnly),
		"end_date":   until.Format(time.DateOnly),
	}).Info("Iniciando refresh de insights para todas as contas ativas")

	summary, err := s.refresher.RefreshAll(ctx, s.appConfig.App.TenantID, since, until)
	if err != nil {
		logrus.WithError(err).Error("Erro ao executar refresh de insights")
		return
	}

	s.lastSummary = summary
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	}).Info("Refresh de insights concluído")
}

// GetStatus retorna o estado atual do agendador para a rota de operação
func (s *RefreshSyncService) GetStatus() map[string]interface{} {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]interface{}{
		"enabled":       s.config.SyncEnabled,
		"cron_schedule": s.config.CronSchedule,
		"lookback_days": s.config.LookbackDays,
		"sync_running":  s.syncRunning,
	}

	if !s.lastSyncStartedAt.IsZero() {
		status["last_sync_started_at"] = s.lastSyncStartedAt.Format(time.RFC3339)
	}

	if !s.lastSyncCompletedAt.IsZero() {
		status["last_sync_completed_at"] = s.lastSyncCompletedAt.Format(time.RFC3339)
	}

	if s.lastSummary != nil {
		status["last_sync_succeeded"] = s.lastSummary.Succeeded
		status["last_sync_failed"] = s.lastSummary.Failed
	}

	return status
}
