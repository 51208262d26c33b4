package meta

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchDailyRows busca as linhas diárias de insights no nível de anúncio para
// o intervalo informado, inclusivo nas duas pontas
func (s *MetaIntegrator) FetchDailyRows(
	ctx context.Context,
	account *domain.AdAccount,
	startDate, endDate time.Time,
) ([]metadomain.InsightRow, *metadomain.FetchStats, error) {
	// O token do aplicativo é renovado proativamente antes do lote; uma falha
	// aqui não impede a busca, que usa os tokens das próprias contas
	if err := s.Client.EnsureValidToken(); err != nil {
		logrus.WithError(err).Warn("insights: erro ao renovar o token do aplicativo, seguindo com os tokens das contas")
	}

	filters := &domain.InsightFilters{
		StartDate: &startDate,
		EndDate:   &endDate,
		Level:     domain.InsightLevelAd,
		Fields:    domain.DefaultAdFields,
		MaxPages:  s.cfg.Meta.MaxPages,
	}

	rows, stats, err := s.Client.FetchInsights(ctx, account.ExternalID, account.AccessToken, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ExternalID,
			"error":      err.Error(),
		}).Error("insights: erro ao buscar linhas diárias de anúncios na API")
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": account.ExternalID,
		"rows":       stats.Rows,
		"pages":      stats.Pages,
		"truncated":  stats.Truncated,
	}).Debug("insights: linhas diárias de anúncios buscadas")

	return rows, stats, nil
}

// ResolveCreatives resolve os metadados de criativo dos anúncios informados.
// IDs sem criativo resolvido simplesmente não aparecem no mapa retornado
func (s *MetaIntegrator) ResolveCreatives(
	ctx context.Context,
	account *domain.AdAccount,
	adIDs []string,
) (map[string]*metadomain.CreativeInfo, error) {
	if err := s.Client.EnsureValidToken(); err != nil {
		logrus.WithError(err).Warn("insights: erro ao renovar o token do aplicativo, seguindo com os tokens das contas")
	}

	creatives, err := s.Client.ResolveCreatives(ctx, account.AccessToken, adIDs)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ExternalID,
			"error":      err.Error(),
		}).Error("insights: erro ao resolver criativos dos anúncios na API")
		return nil, err
	}

	return creatives, nil
}
