package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(config.Artifact{RootDir: t.TempDir()})
}

func dailyRecord(adID string, day time.Time, spend float64) *domain.DailyAdRecord {
	return &domain.DailyAdRecord{
		AdID:        adID,
		AdName:      "Anúncio " + adID,
		AccountID:   "act_1",
		Date:        day,
		Spend:       spend,
		Impressions: 100,
	}
}

func TestStore_BaselineInexistente(t *testing.T) {
	store := newTestStore(t)

	baseline, err := store.LoadBaseline("tenant_1", "act_1")

	require.NoError(t, err)
	assert.Nil(t, baseline)
}

func TestStore_MergeBaseline_SobrescrevePorAnuncioEDia(t *testing.T) {
	store := newTestStore(t)

	day1 := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)

	_, err := store.MergeBaseline("tenant_1", "act_1", []*domain.DailyAdRecord{
		dailyRecord("ad_1", day1, 10.0),
		dailyRecord("ad_1", day2, 20.0),
	}, domain.ArtifactMetadata{GeneratedAt: time.Now()})
	require.NoError(t, err)

	// Refetch do dia 2 com valor corrigido e um dia novo
	day3 := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	merged, err := store.MergeBaseline("tenant_1", "act_1", []*domain.DailyAdRecord{
		dailyRecord("ad_1", day2, 25.0),
		dailyRecord("ad_1", day3, 30.0),
	}, domain.ArtifactMetadata{GeneratedAt: time.Now()})
	require.NoError(t, err)

	require.Len(t, merged.DailyAds, 3)
	assert.Equal(t, 3, merged.Metadata.RowCount)

	byKey := make(map[string]*domain.DailyAdRecord)
	for _, record := range merged.DailyAds {
		byKey[record.Key()] = record
	}

	// Dia reprocessado foi sobrescrito, dia fora do refresh permaneceu
	assert.Equal(t, 10.0, byKey["ad_1|2025-09-01"].Spend)
	assert.Equal(t, 25.0, byKey["ad_1|2025-09-02"].Spend)
	assert.Equal(t, 30.0, byKey["ad_1|2025-09-03"].Spend)

	reloaded, err := store.LoadBaseline("tenant_1", "act_1")
	require.NoError(t, err)
	assert.Equal(t, merged.DailyAds, reloaded.DailyAds)
}

func TestStore_MergeBaseline_OrdenacaoEstavel(t *testing.T) {
	store := newTestStore(t)

	day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	merged, err := store.MergeBaseline("tenant_1", "act_1", []*domain.DailyAdRecord{
		dailyRecord("ad_2", day, 1.0),
		dailyRecord("ad_1", day.AddDate(0, 0, 1), 1.0),
		dailyRecord("ad_1", day, 1.0),
	}, domain.ArtifactMetadata{})
	require.NoError(t, err)

	keys := make([]string, 0, len(merged.DailyAds))
	for _, record := range merged.DailyAds {
		keys = append(keys, record.Key())
	}

	assert.Equal(t, []string{"ad_1|2025-09-01", "ad_1|2025-09-02", "ad_2|2025-09-01"}, keys)
}

func TestStore_SaveELoadWindow(t *testing.T) {
	store := newTestStore(t)

	window := &domain.WindowArtifact{
		Metadata: domain.ArtifactMetadata{
			GeneratedAt: time.Now().UTC(),
			WindowDays:  7,
			StartDate:   "2025-09-01",
			EndDate:     "2025-09-07",
			RowCount:    1,
		},
		Ads: []*domain.PeriodAggregate{
			{AdID: "ad_1", WindowDays: 7, Spend: 120.0, Impressions: 3000},
		},
	}

	require.NoError(t, store.SaveWindow("tenant_1", "act_1", window))

	loaded, err := store.LoadWindow("tenant_1", "act_1", 7)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, window.Ads, loaded.Ads)

	missing, err := store.LoadWindow("tenant_1", "act_1", 30)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_EscritaNaoDeixaTemporarios(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveWindow("tenant_1", "act_1", &domain.WindowArtifact{
		Metadata: domain.ArtifactMetadata{WindowDays: 3},
	}))

	entries, err := os.ReadDir(filepath.Join(store.rootDir, "tenant_1", "act_1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "window_3d.json", entries[0].Name())
}

func TestStore_BaselineCorrompido(t *testing.T) {
	store := newTestStore(t)

	dir := filepath.Join(store.rootDir, "tenant_1", "act_1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "baseline.json"), []byte("{parcial"), 0o644))

	_, err := store.LoadBaseline("tenant_1", "act_1")
	assert.Error(t, err)
}
