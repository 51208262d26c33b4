package meta_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

func testAccount() *domain.AdAccount {
	return &domain.AdAccount{
		ID:          "acc_1",
		TenantID:    "tenant_1",
		ExternalID:  "123456",
		AccessToken: "token-da-conta",
		Status:      domain.AdAccountStatusActive,
	}
}

func TestFetchDailyRows_RenovaTokenDoAplicativoEDelega(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Meta.MaxPages = 5

	client := mocks.NewMockClient(ctrl)
	integrator := meta.New(cfg, client)

	start := time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	rows := []metadomain.InsightRow{{AdID: "ad_1"}}
	stats := &metadomain.FetchStats{Pages: 1, Rows: 1}

	client.EXPECT().EnsureValidToken().Return(nil)
	client.EXPECT().
		FetchInsights(gomock.Any(), "123456", "token-da-conta", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, filters *domain.InsightFilters) ([]metadomain.InsightRow, *metadomain.FetchStats, error) {
			assert.Equal(t, domain.InsightLevelAd, filters.Level)
			assert.Equal(t, 5, filters.MaxPages)
			assert.Equal(t, start, *filters.StartDate)
			assert.Equal(t, end, *filters.EndDate)
			return rows, stats, nil
		})

	gotRows, gotStats, err := integrator.FetchDailyRows(context.Background(), testAccount(), start, end)

	require.NoError(t, err)
	assert.Equal(t, rows, gotRows)
	assert.Equal(t, stats, gotStats)
}

func TestFetchDailyRows_FalhaNaRenovacaoNaoImpedeABusca(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := meta.New(&config.Config{}, client)

	client.EXPECT().EnsureValidToken().Return(errors.New("app sem credenciais"))
	client.EXPECT().
		FetchInsights(gomock.Any(), "123456", "token-da-conta", gomock.Any()).
		Return([]metadomain.InsightRow{}, &metadomain.FetchStats{}, nil)

	_, _, err := integrator.FetchDailyRows(
		context.Background(),
		testAccount(),
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
	)

	assert.NoError(t, err)
}

func TestFetchDailyRows_ErroDaAPIPropagado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := meta.New(&config.Config{}, client)

	client.EXPECT().EnsureValidToken().Return(nil)
	client.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("upstream indisponível"))

	_, _, err := integrator.FetchDailyRows(
		context.Background(),
		testAccount(),
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
	)

	assert.ErrorContains(t, err, "upstream indisponível")
}

func TestResolveCreatives_DelegaComTokenDaConta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	integrator := meta.New(&config.Config{}, client)

	creatives := map[string]*metadomain.CreativeInfo{
		"ad_1": {VideoID: "v1"},
	}

	client.EXPECT().EnsureValidToken().Return(nil)
	client.EXPECT().
		ResolveCreatives(gomock.Any(), "token-da-conta", []string{"ad_1", "ad_2"}).
		Return(creatives, nil)

	got, err := integrator.ResolveCreatives(context.Background(), testAccount(), []string{"ad_1", "ad_2"})

	require.NoError(t, err)
	assert.Equal(t, creatives, got)
}
