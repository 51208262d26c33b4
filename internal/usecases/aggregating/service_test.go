package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

const testCPACeiling = 10000

func day(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func record(adID string, date string, spend float64, impressions, clicks int) *domain.DailyAdRecord {
	return &domain.DailyAdRecord{
		AdID:        adID,
		AdName:      "Anúncio " + adID,
		AccountID:   "act_1",
		Date:        day(date),
		Spend:       spend,
		Impressions: impressions,
		Clicks:      clicks,
		Format:      domain.FormatUnknown,
	}
}

func TestAggregate_SomaCamposAditivos(t *testing.T) {
	baseline := []*domain.DailyAdRecord{
		{AdID: "ad_1", Date: day("2025-09-28"), Spend: 40.0, Impressions: 1000, Clicks: 10, Reach: 500, Purchases: 1, PurchaseValue: 80.0},
		{AdID: "ad_1", Date: day("2025-09-29"), Spend: 40.0, Impressions: 1000, Clicks: 10, Reach: 400, Purchases: 1, PurchaseValue: 60.0},
		{AdID: "ad_1", Date: day("2025-09-30"), Spend: 40.0, Impressions: 1000, Clicks: 10, Reach: 300, Purchases: 1, PurchaseValue: 60.0},
	}

	aggregates := Aggregate(baseline, 7, day("2025-09-30"), testCPACeiling)

	require.Len(t, aggregates, 1)
	aggregate := aggregates[0]

	assert.Equal(t, 120.0, aggregate.Spend)
	assert.Equal(t, 3000, aggregate.Impressions)
	assert.Equal(t, 30, aggregate.Clicks)
	assert.Equal(t, 1200, aggregate.Reach)
	assert.Equal(t, 3, aggregate.Purchases)
	assert.Equal(t, 200.0, aggregate.PurchaseValue)
	assert.Equal(t, 3, aggregate.DaysWithData)

	// Razões derivadas dos totais
	assert.Equal(t, 1.0, aggregate.CTR)      // 30/3000*100
	assert.Equal(t, 40.0, aggregate.CPM)     // 120/3000*1000
	assert.Equal(t, 1.6667, aggregate.ROAS)  // 200/120
	assert.Equal(t, 40.0, aggregate.CPA)     // 120/3
}

func TestAggregate_RecalculaRazoesNaoFazMedia(t *testing.T) {
	// Dias com denominadores desiguais: a média das razões diárias daria
	// (10% + 1%) / 2 = 5.5%, mas o CTR correto é 19/1000 = 1.9%
	baseline := []*domain.DailyAdRecord{
		record("ad_1", "2025-09-29", 0, 100, 10),
		record("ad_1", "2025-09-30", 0, 900, 9),
	}

	aggregates := Aggregate(baseline, 7, day("2025-09-30"), testCPACeiling)

	require.Len(t, aggregates, 1)
	assert.Equal(t, 1.9, aggregates[0].CTR)
}

func TestAggregate_JanelaInclusivaNasDuasPontas(t *testing.T) {
	baseline := []*domain.DailyAdRecord{
		record("ad_1", "2025-09-23", 10.0, 100, 1), // um dia antes da janela
		record("ad_1", "2025-09-24", 20.0, 100, 1), // primeiro dia da janela
		record("ad_1", "2025-09-30", 30.0, 100, 1), // dia de referência
	}

	aggregates := Aggregate(baseline, 7, day("2025-09-30"), testCPACeiling)

	require.Len(t, aggregates, 1)
	assert.Equal(t, 50.0, aggregates[0].Spend)
	assert.Equal(t, 2, aggregates[0].DaysWithData)
}

func TestAggregate_SemLinhasFantasma(t *testing.T) {
	baseline := []*domain.DailyAdRecord{
		record("ad_dentro", "2025-09-30", 10.0, 100, 1),
		record("ad_fora", "2025-08-01", 10.0, 100, 1),
	}

	aggregates := Aggregate(baseline, 7, day("2025-09-30"), testCPACeiling)

	require.Len(t, aggregates, 1)
	assert.Equal(t, "ad_dentro", aggregates[0].AdID)
}

func TestAggregate_SaidaOrdenadaPorAdID(t *testing.T) {
	baseline := []*domain.DailyAdRecord{
		record("ad_c", "2025-09-30", 1.0, 10, 1),
		record("ad_a", "2025-09-30", 1.0, 10, 1),
		record("ad_b", "2025-09-30", 1.0, 10, 1),
	}

	first := Aggregate(baseline, 7, day("2025-09-30"), testCPACeiling)
	second := Aggregate(baseline, 7, day("2025-09-30"), testCPACeiling)

	ids := []string{first[0].AdID, first[1].AdID, first[2].AdID}
	assert.Equal(t, []string{"ad_a", "ad_b", "ad_c"}, ids)

	// Mesma entrada, mesma saída
	assert.Equal(t, first, second)
}

func TestAggregate_FormatoEMidiaDoRegistroMaisRecente(t *testing.T) {
	oldURL := "http://old"
	newURL := "http://new"

	older := record("ad_1", "2025-09-28", 1.0, 10, 1)
	older.Format = domain.FormatImage
	older.MediaURL = &oldURL

	newer := record("ad_1", "2025-09-30", 1.0, 10, 1)
	newer.Format = domain.FormatVideo
	newer.MediaURL = &newURL

	// Ordem de entrada invertida de propósito
	aggregates := Aggregate([]*domain.DailyAdRecord{newer, older}, 7, day("2025-09-30"), testCPACeiling)

	require.Len(t, aggregates, 1)
	assert.Equal(t, domain.FormatVideo, aggregates[0].Format)
	assert.Equal(t, &newURL, aggregates[0].MediaURL)
}

func TestAggregate_CPAZeradoAcimaDoTeto(t *testing.T) {
	baseline := []*domain.DailyAdRecord{
		{AdID: "ad_1", Date: day("2025-09-30"), Spend: 50000.0, Purchases: 1},
	}

	aggregates := Aggregate(baseline, 7, day("2025-09-30"), testCPACeiling)

	require.Len(t, aggregates, 1)
	assert.Zero(t, aggregates[0].CPA)
}

func TestAggregate_JanelaInvalida(t *testing.T) {
	baseline := []*domain.DailyAdRecord{record("ad_1", "2025-09-30", 1.0, 10, 1)}

	assert.Empty(t, Aggregate(baseline, 0, day("2025-09-30"), testCPACeiling))
	assert.Empty(t, Aggregate(nil, 7, day("2025-09-30"), testCPACeiling))
}
