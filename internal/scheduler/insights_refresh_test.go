package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/usecases/refreshing"
	"github.com/vfg2006/insights-pipeline/internal/usecases/refreshing/mocks"
)

func newTestService(t *testing.T) (*RefreshSyncService, *mocks.MockRefresher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	refresher := mocks.NewMockRefresher(ctrl)

	cfg := &config.Config{}
	cfg.App.TenantID = "tenant_1"
	cfg.RefreshSync.CronSchedule = "0 3 * * *"
	cfg.RefreshSync.LookbackDays = 7
	cfg.RefreshSync.Enabled = true

	return NewRefreshSyncService(refresher, cfg), refresher
}

func TestTriggerManualSync_ExecutaRefreshDoTenant(t *testing.T) {
	service, refresher := newTestService(t)

	done := make(chan struct{})

	refresher.EXPECT().
		RefreshAll(gomock.Any(), "tenant_1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, since, until time.Time) (*refreshing.Summary, error) {
			defer close(done)

			// Janela de lookback: 7 dias terminando ontem
			expectedUntil := time.Now().AddDate(0, 0, -1)
			assert.Equal(t, expectedUntil.Format(time.DateOnly), until.Format(time.DateOnly))
			assert.Equal(t, expectedUntil.AddDate(0, 0, -6).Format(time.DateOnly), since.Format(time.DateOnly))

			return &refreshing.Summary{Succeeded: 2}, nil
		})

	require.NoError(t, service.TriggerManualSync(context.Background()))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh não executou dentro do tempo esperado")
	}

	// Aguarda o estado pós-execução ficar visível
	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		running, _ := status["sync_running"].(bool)
		return !running && status["last_sync_succeeded"] == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTriggerManualSync_GuardaContraSobreposicao(t *testing.T) {
	service, refresher := newTestService(t)

	started := make(chan struct{})
	release := make(chan struct{})

	refresher.EXPECT().
		RefreshAll(gomock.Any(), "tenant_1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _, _ time.Time) (*refreshing.Summary, error) {
			close(started)
			<-release
			return &refreshing.Summary{}, nil
		})

	require.NoError(t, service.TriggerManualSync(context.Background()))
	<-started

	// Segundo disparo enquanto o primeiro roda é recusado
	err := service.TriggerManualSync(context.Background())
	assert.Error(t, err)

	close(release)

	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		running, _ := status["sync_running"].(bool)
		return !running
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStart_DesabilitadoNaoAgenda(t *testing.T) {
	ctrl := gomock.NewController(t)
	refresher := mocks.NewMockRefresher(ctrl)

	cfg := &config.Config{}
	cfg.RefreshSync.Enabled = false

	service := NewRefreshSyncService(refresher, cfg)

	require.NoError(t, service.Start(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, false, status["enabled"])
}

func TestGetStatus_EstadoInicial(t *testing.T) {
	service, _ := newTestService(t)

	status := service.GetStatus()

	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 3 * * *", status["cron_schedule"])
	assert.Equal(t, false, status["sync_running"])
	assert.NotContains(t, status, "last_sync_started_at")
}
