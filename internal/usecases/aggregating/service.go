package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/pkg/utils"
)

// Aggregate soma os registros diários de cada anúncio dentro da janela
// [referenceDate - (windowDays-1), referenceDate], inclusiva nas duas pontas.
// As razões são sempre recalculadas a partir dos totais somados; a média das
// razões diárias estaria errada quando os dias têm denominadores desiguais.
// Anúncios sem nenhum dia dentro da janela ficam fora da saída: emitir linhas
// zeradas corromperia contagens de anúncios ativos no consumidor
func Aggregate(
	baseline []*domain.DailyAdRecord,
	windowDays int,
	referenceDate time.Time,
	cpaSanityCeiling float64,
) []*domain.PeriodAggregate {
	if windowDays <= 0 {
		return []*domain.PeriodAggregate{}
	}

	reference := utils.TruncateToDay(referenceDate)
	start := reference.AddDate(0, 0, -(windowDays - 1))

	byAd := make(map[string]*domain.PeriodAggregate)
	latestDate := make(map[string]time.Time)

	for _, record := range baseline {
		day := utils.TruncateToDay(record.Date)
		if day.Before(start) || day.After(reference) {
			continue
		}

		aggregate, ok := byAd[record.AdID]
		if !ok {
			aggregate = &domain.PeriodAggregate{
				AdID:         record.AdID,
				AdName:       record.AdName,
				AccountID:    record.AccountID,
				AccountName:  record.AccountName,
				CampaignName: record.CampaignName,
				WindowDays:   windowDays,
			}
			byAd[record.AdID] = aggregate
		}

		aggregate.Spend += record.Spend
		aggregate.Impressions += record.Impressions
		aggregate.Clicks += record.Clicks
		aggregate.Reach += record.Reach
		aggregate.Purchases += record.Purchases
		aggregate.PurchaseValue += record.PurchaseValue
		aggregate.DaysWithData++

		// Formato e mídia acompanham o registro mais recente do anúncio
		if day.After(latestDate[record.AdID]) || latestDate[record.AdID].IsZero() {
			latestDate[record.AdID] = day
			aggregate.AdName = record.AdName
			aggregate.Format = record.Format
			aggregate.MediaURL = record.MediaURL
		}
	}

	aggregates := make([]*domain.PeriodAggregate, 0, len(byAd))
	for _, aggregate := range byAd {
		recomputeRatios(aggregate, cpaSanityCeiling)
		aggregates = append(aggregates, aggregate)
	}

	// Saída determinística para o artefato ser reprodutível byte a byte
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].AdID < aggregates[j].AdID
	})

	return aggregates
}

// recomputeRatios deriva ctr, cpm, roas e cpa dos totais somados
func recomputeRatios(aggregate *domain.PeriodAggregate, cpaSanityCeiling float64) {
	aggregate.Spend = utils.RoundWithTwoDecimalPlace(aggregate.Spend)
	aggregate.PurchaseValue = utils.RoundWithTwoDecimalPlace(aggregate.PurchaseValue)

	aggregate.CTR = utils.RoundWithFourDecimalPlace(
		utils.SafeRatio(float64(aggregate.Clicks), float64(aggregate.Impressions)) * 100,
	)
	aggregate.CPM = utils.RoundWithTwoDecimalPlace(
		utils.SafeRatio(aggregate.Spend, float64(aggregate.Impressions)) * 1000,
	)
	aggregate.ROAS = utils.RoundWithFourDecimalPlace(
		utils.SafeRatio(aggregate.PurchaseValue, aggregate.Spend),
	)

	if aggregate.Purchases == 0 {
		aggregate.CPA = 0
		return
	}

	cpa := aggregate.Spend / float64(aggregate.Purchases)
	if cpaSanityCeiling > 0 && cpa > cpaSanityCeiling {
		aggregate.CPA = 0
		return
	}
	aggregate.CPA = utils.RoundWithTwoDecimalPlace(cpa)
}
