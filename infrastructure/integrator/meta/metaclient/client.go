package metaclient

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/pkg/retry"
)

type Client interface {
	FetchInsights(ctx context.Context, accountID, accessToken string, filters *domain.InsightFilters) ([]metadomain.InsightRow, *metadomain.FetchStats, error)
	ResolveCreatives(ctx context.Context, accessToken string, adIDs []string) (map[string]*metadomain.CreativeInfo, error)
	EnsureValidToken() error
}

type MetaClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager

	httpClient   *http.Client
	lookupClient *http.Client
	limiter      *rate.Limiter
	retryPolicy  retry.Policy
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	requestTimeout := time.Duration(cfg.Meta.RequestTimeoutSeconds) * time.Second
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	lookupTimeout := time.Duration(cfg.Meta.LookupTimeoutSeconds) * time.Second
	if lookupTimeout <= 0 {
		lookupTimeout = 15 * time.Second
	}

	rps := cfg.Meta.RequestsPerSecond
	if rps <= 0 {
		rps = 2.0
	}

	client := &MetaClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		httpClient:   &http.Client{Timeout: requestTimeout},
		lookupClient: &http.Client{Timeout: lookupTimeout},
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
		retryPolicy:  retry.DefaultPolicy(IsRateLimitError),
	}
	return client
}

// EnsureValidToken verifica se o token do aplicativo é válido e tenta
// renová-lo se necessário
func (c *MetaClient) EnsureValidToken() error {
	return c.TokenManager.EnsureValidToken()
}

// wait aplica o limitador de requisições do cliente antes de cada chamada
func (c *MetaClient) wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}
