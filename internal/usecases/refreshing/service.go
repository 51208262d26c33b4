package refreshing

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/internal/usecases/aggregating"
	"github.com/vfg2006/insights-pipeline/internal/usecases/classifying"
	"github.com/vfg2006/insights-pipeline/internal/usecases/normalizing"
	"github.com/vfg2006/insights-pipeline/pkg/utils"
)

type Service struct {
	cfg        *config.Config
	integrator Integrator
	normalizer normalizing.Normalizer
	store      ArtifactStore
	accounts   AccountTracker
}

func NewService(
	cfg *config.Config,
	integrator Integrator,
	normalizer normalizing.Normalizer,
	store ArtifactStore,
	accounts AccountTracker,
) Refresher {
	return &Service{
		cfg:        cfg,
		integrator: integrator,
		normalizer: normalizer,
		store:      store,
		accounts:   accounts,
	}
}

// RefreshAccount executa o pipeline completo de uma conta: fetch, normalização,
// resolução de criativos, merge do baseline e agregação de todas as janelas
// configuradas. Nada é persistido se o fetch falhar; um fetch truncado pela
// válvula de páginas é persistido com a flag de truncamento nos metadados
func (s *Service) RefreshAccount(
	ctx context.Context,
	account *domain.AdAccount,
	since, until time.Time,
) (*AccountResult, error) {
	runID, err := utils.GenerateRunID()
	if err != nil {
		logrus.WithError(err).Warn("refresh: erro ao gerar o identificador da execução, seguindo sem run_id")
		runID = ""
	}

	logger := logrus.WithFields(logrus.Fields{
		"account_id": account.ExternalID,
		"tenant_id":  account.TenantID,
		"run_id":     runID,
		"since":      since.Format(time.DateOnly),
		"until":      until.Format(time.DateOnly),
	})
	logger.Info("refresh: iniciando refresh da conta")

	rows, stats, err := s.integrator.FetchDailyRows(ctx, account, since, until)
	if err != nil {
		return nil, err
	}

	records := s.normalizer.NormalizeAll(rows)

	s.enrichWithCreatives(ctx, account, records)

	metadata := domain.ArtifactMetadata{
		GeneratedAt: time.Now().UTC(),
		StartDate:   since.Format(time.DateOnly),
		EndDate:     until.Format(time.DateOnly),
		Truncated:   stats.Truncated,
		RunID:       runID,
	}

	baseline, err := s.store.MergeBaseline(account.TenantID, account.ID, records, metadata)
	if err != nil {
		return nil, err
	}

	windowsSaved, err := s.aggregateWindows(account, baseline, until, stats.Truncated, runID)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"rows":    len(rows),
		"records": len(records),
		"windows": len(windowsSaved),
	}).Info("refresh: refresh da conta concluído")

	return &AccountResult{
		AccountID:    account.ExternalID,
		RunID:        runID,
		RowsFetched:  len(rows),
		RecordsSaved: len(records),
		Truncated:    stats.Truncated,
		WindowsSaved: windowsSaved,
	}, nil
}

// enrichWithCreatives resolve os criativos dos anúncios do lote e preenche
// formato e mídia. Falha na resolução não aborta o refresh: anúncios sem
// criativo resolvido são classificados só pelo nome
func (s *Service) enrichWithCreatives(ctx context.Context, account *domain.AdAccount, records []*domain.DailyAdRecord) {
	seen := make(map[string]struct{})
	adIDs := make([]string, 0)
	for _, record := range records {
		if _, ok := seen[record.AdID]; ok {
			continue
		}
		seen[record.AdID] = struct{}{}
		adIDs = append(adIDs, record.AdID)
	}

	creatives, err := s.integrator.ResolveCreatives(ctx, account, adIDs)
	if err != nil {
		logrus.WithError(err).WithField("account_id", account.ExternalID).
			Warn("refresh: resolução de criativos falhou, classificando apenas pelo nome do anúncio")
		creatives = nil
	}

	for _, record := range records {
		creative := creatives[record.AdID]
		record.Format = classifying.Classify(creative, record.AdName)
		record.MediaURL = classifying.MediaURL(creative)
	}
}

// aggregateWindows recalcula e persiste todas as janelas configuradas a partir
// do baseline completo
func (s *Service) aggregateWindows(
	account *domain.AdAccount,
	baseline *domain.BaselineArtifact,
	referenceDate time.Time,
	truncated bool,
	runID string,
) ([]int, error) {
	windows := s.cfg.Pipeline.WindowsDays
	saved := make([]int, 0, len(windows))

	for _, windowDays := range windows {
		aggregates := aggregating.Aggregate(
			baseline.DailyAds,
			windowDays,
			referenceDate,
			s.cfg.Pipeline.CPASanityCeiling,
		)

		start := utils.TruncateToDay(referenceDate).AddDate(0, 0, -(windowDays - 1))

		window := &domain.WindowArtifact{
			Metadata: domain.ArtifactMetadata{
				GeneratedAt:   time.Now().UTC(),
				ReferenceDate: referenceDate.Format(time.DateOnly),
				WindowDays:    windowDays,
				StartDate:     start.Format(time.DateOnly),
				EndDate:       referenceDate.Format(time.DateOnly),
				RowCount:      len(aggregates),
				Truncated:     truncated,
				RunID:         runID,
			},
			Ads: aggregates,
		}

		if err := s.store.SaveWindow(account.TenantID, account.ID, window); err != nil {
			return saved, err
		}

		saved = append(saved, windowDays)
	}

	return saved, nil
}

// RefreshAll roda o refresh de todas as contas ativas do tenant. A falha de
// uma conta é registrada e o lote continua; apenas AuthError conta para o
// auto-desligamento da conta
func (s *Service) RefreshAll(ctx context.Context, tenantID string, since, until time.Time) (*Summary, error) {
	accounts, err := s.accounts.ListAccounts(tenantID, []domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Results: make([]*AccountResult, 0, len(accounts)),
		Errors:  make([]*AccountError, 0),
	}

	if len(accounts) == 0 {
		logrus.WithField("tenant_id", tenantID).Info("refresh: nenhuma conta ativa para atualizar")
		return summary, nil
	}

	maxConcurrent := s.cfg.RefreshSync.MaxConcurrentAccounts
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	var mutex sync.Mutex

	for _, account := range accounts {
		wg.Add(1)

		go func(acc *domain.AdAccount) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := s.RefreshAccount(ctx, acc, since, until)

			mutex.Lock()
			defer mutex.Unlock()

			if err != nil {
				summary.Failed++
				summary.Errors = append(summary.Errors, s.registerAccountError(acc, err))
				return
			}

			summary.Succeeded++
			summary.Results = append(summary.Results, result)

			if err := s.accounts.RegisterSuccess(acc.ID); err != nil {
				logrus.WithError(err).WithField("account_id", acc.ExternalID).
					Warn("refresh: erro ao zerar o contador de erros da conta")
			}
		}(account)

		// Espaçamento entre os inícios para aliviar o rate limit global
		if s.cfg.RefreshSync.RequestDelaySeconds > 0 {
			time.Sleep(time.Duration(s.cfg.RefreshSync.RequestDelaySeconds) * time.Second)
		}
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	}).Info("refresh: lote concluído")

	return summary, nil
}

// registerAccountError registra a falha da conta. Erros de autorização contam
// para o desligamento automático; os demais são apenas logados
func (s *Service) registerAccountError(account *domain.AdAccount, refreshErr error) *AccountError {
	accountError := &AccountError{
		AccountID: account.ExternalID,
		Error:     refreshErr.Error(),
	}

	if !metaclient.IsAuthError(refreshErr) {
		logrus.WithError(refreshErr).WithField("account_id", account.ExternalID).
			Error("refresh: refresh da conta falhou")
		return accountError
	}

	disabled, err := s.accounts.RegisterFailure(account.ID, refreshErr.Error(), s.cfg.RefreshSync.DisableThreshold)
	if err != nil {
		logrus.WithError(err).WithField("account_id", account.ExternalID).
			Error("refresh: erro ao registrar falha de autorização da conta")
		return accountError
	}

	accountError.Disabled = disabled

	logrus.WithError(refreshErr).WithFields(logrus.Fields{
		"account_id": account.ExternalID,
		"disabled":   disabled,
	}).Error("refresh: refresh da conta falhou com erro de autorização")

	return accountError
}
