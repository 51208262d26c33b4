package normalizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

func newTestService() *Service {
	cfg := &config.Config{}
	cfg.Pipeline.CPASanityCeiling = 10000
	return NewService(cfg)
}

func baseRow() metadomain.InsightRow {
	return metadomain.InsightRow{
		AdID:         "ad_1",
		AdName:       "Anúncio de teste",
		AccountID:    "act_1",
		AccountName:  "Conta de teste",
		CampaignName: "Campanha de teste",
		DateStart:    "2025-09-15",
		DateStop:     "2025-09-15",
		Spend:        "50.00",
		Impressions:  "1000",
		Clicks:       "20",
		Reach:        "800",
		Frequency:    "1.25",
	}
}

func TestNormalize_ExtracaoDeCompras(t *testing.T) {
	tests := []struct {
		name                  string
		actions               []metadomain.ActionEntry
		actionValues          []metadomain.ActionEntry
		expectedPurchases     int
		expectedPurchaseValue float64
	}{
		{
			name: "soma purchase e omni_purchase",
			actions: []metadomain.ActionEntry{
				{ActionType: "purchase", Value: "2"},
				{ActionType: "omni_purchase", Value: "3"},
				{ActionType: "link_click", Value: "99"},
			},
			actionValues: []metadomain.ActionEntry{
				{ActionType: "purchase", Value: "120.50"},
				{ActionType: "omni_purchase", Value: "79.50"},
				{ActionType: "add_to_cart", Value: "500.00"},
			},
			expectedPurchases:     5,
			expectedPurchaseValue: 200.0,
		},
		{
			name:                  "sem acoes vira zero, nunca nulo",
			actions:               nil,
			actionValues:          nil,
			expectedPurchases:     0,
			expectedPurchaseValue: 0,
		},
		{
			name: "valor de acao invalido é ignorado",
			actions: []metadomain.ActionEntry{
				{ActionType: "purchase", Value: "nao-numerico"},
				{ActionType: "purchase", Value: "4"},
			},
			expectedPurchases: 4,
		},
	}

	service := newTestService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := baseRow()
			row.Actions = tt.actions
			row.ActionValues = tt.actionValues

			record, err := service.Normalize(row)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPurchases, record.Purchases)
			assert.Equal(t, tt.expectedPurchaseValue, record.PurchaseValue)
		})
	}
}

func TestNormalize_RazoesDiarias(t *testing.T) {
	service := newTestService()

	row := baseRow()
	row.Actions = []metadomain.ActionEntry{{ActionType: "purchase", Value: "2"}}
	row.ActionValues = []metadomain.ActionEntry{{ActionType: "purchase", Value: "100.00"}}

	record, err := service.Normalize(row)

	require.NoError(t, err)
	assert.Equal(t, 2.0, record.CTR)   // 20/1000*100
	assert.Equal(t, 50.0, record.CPM)  // 50/1000*1000
	assert.Equal(t, 2.0, record.ROAS)  // 100/50
	assert.Equal(t, 25.0, record.CPA)  // 50/2
}

func TestNormalize_RazoesComDenominadorZero(t *testing.T) {
	service := newTestService()

	row := baseRow()
	row.Spend = "0"
	row.Impressions = "0"
	row.Clicks = "0"

	record, err := service.Normalize(row)

	require.NoError(t, err)
	assert.Zero(t, record.CTR)
	assert.Zero(t, record.CPM)
	assert.Zero(t, record.ROAS)
	assert.Zero(t, record.CPA)
}

func TestNormalize_CPAZeradoSemCompras(t *testing.T) {
	service := newTestService()

	row := baseRow()
	row.Spend = "100.00"

	record, err := service.Normalize(row)

	require.NoError(t, err)
	assert.Zero(t, record.Purchases)
	assert.Zero(t, record.CPA)
}

func TestNormalize_CPAZeradoAcimaDoTeto(t *testing.T) {
	service := newTestService()

	row := baseRow()
	row.Spend = "50000.00"
	row.Actions = []metadomain.ActionEntry{{ActionType: "purchase", Value: "1"}}

	record, err := service.Normalize(row)

	require.NoError(t, err)
	// 50000/1 estoura o teto de sanidade e vira zero, não infinito
	assert.Zero(t, record.CPA)
}

func TestNormalize_Idempotente(t *testing.T) {
	service := newTestService()

	row := baseRow()
	row.Actions = []metadomain.ActionEntry{{ActionType: "purchase", Value: "2"}}
	row.ActionValues = []metadomain.ActionEntry{{ActionType: "purchase", Value: "80.00"}}

	first, err := service.Normalize(row)
	require.NoError(t, err)

	second, err := service.Normalize(row)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalize_ValidacaoDeParse(t *testing.T) {
	service := newTestService()

	t.Run("sem ad_id", func(t *testing.T) {
		row := baseRow()
		row.AdID = ""

		_, err := service.Normalize(row)
		assert.Error(t, err)
	})

	t.Run("data invalida", func(t *testing.T) {
		row := baseRow()
		row.DateStart = "15/09/2025"

		_, err := service.Normalize(row)
		assert.Error(t, err)
	})

	t.Run("spend invalido", func(t *testing.T) {
		row := baseRow()
		row.Spend = "R$ 50,00"

		_, err := service.Normalize(row)
		assert.Error(t, err)
	})

	t.Run("campos numericos vazios viram zero", func(t *testing.T) {
		row := baseRow()
		row.Spend = ""
		row.Impressions = ""
		row.Reach = ""
		row.Frequency = ""

		record, err := service.Normalize(row)
		require.NoError(t, err)
		assert.Zero(t, record.Spend)
		assert.Zero(t, record.Impressions)
	})
}

func TestNormalizeAll_DescartaLinhasInvalidas(t *testing.T) {
	service := newTestService()

	invalid := baseRow()
	invalid.AdID = ""

	records := service.NormalizeAll([]metadomain.InsightRow{baseRow(), invalid, baseRow()})

	require.Len(t, records, 2)
	assert.Equal(t, domain.FormatUnknown, records[0].Format)
}
