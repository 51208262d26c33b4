package refreshing

import (
	"context"
	"time"

	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

// Integrator define o que o orquestrador precisa do integrador do Meta
type Integrator interface {
	FetchDailyRows(ctx context.Context, account *domain.AdAccount, startDate, endDate time.Time) ([]metadomain.InsightRow, *metadomain.FetchStats, error)
	ResolveCreatives(ctx context.Context, account *domain.AdAccount, adIDs []string) (map[string]*metadomain.CreativeInfo, error)
}

// ArtifactStore define a persistência de artefatos usada pelo orquestrador
type ArtifactStore interface {
	MergeBaseline(tenantID, accountID string, records []*domain.DailyAdRecord, metadata domain.ArtifactMetadata) (*domain.BaselineArtifact, error)
	SaveWindow(tenantID, accountID string, window *domain.WindowArtifact) error
}

// AccountTracker define as operações de contas usadas pelo orquestrador:
// listagem das contas ativas e o rastreamento de falhas consecutivas
type AccountTracker interface {
	ListAccounts(tenantID string, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	RegisterFailure(accountID, reason string, disableThreshold int) (bool, error)
	RegisterSuccess(accountID string) error
}

// Refresher é a interface do orquestrador de refresh
type Refresher interface {
	RefreshAccount(ctx context.Context, account *domain.AdAccount, since, until time.Time) (*AccountResult, error)
	RefreshAll(ctx context.Context, tenantID string, since, until time.Time) (*Summary, error)
}

// AccountResult resume o refresh de uma conta
type AccountResult struct {
	AccountID    string `json:"account_id"`
	RunID        string `json:"run_id"`
	RowsFetched  int    `json:"rows_fetched"`
	RecordsSaved int    `json:"records_saved"`
	Truncated    bool   `json:"truncated"`
	WindowsSaved []int  `json:"windows_saved"`
}

// AccountError registra a falha de uma conta dentro de um lote
type AccountError struct {
	AccountID string `json:"account_id"`
	Disabled  bool   `json:"disabled"`
	Error     string `json:"error"`
}

// Summary é o resultado de um lote de refresh; o contrato de saída da CLI
// depende da contagem de falhas
type Summary struct {
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []*AccountResult `json:"results"`
	Errors    []*AccountError  `json:"errors"`
}
