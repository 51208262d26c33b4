package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-pipeline/internal/config"
	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/pkg/retry"
	"golang.org/x/time/rate"
)

func newTestClient(serverURL string) *MetaClient {
	cfg := &config.Config{}
	cfg.Meta.URL = serverURL
	cfg.Meta.PageSize = 500
	cfg.Meta.CreativeChunkSize = 50
	cfg.Meta.CreativeWorkers = 4

	return &MetaClient{
		Cfg:          cfg,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		lookupClient: &http.Client{Timeout: 5 * time.Second},
		limiter:      rate.NewLimiter(rate.Inf, 1),
		retryPolicy: retry.Policy{
			MaxAttempts: 3,
			BaseDelay:   time.Millisecond,
			MaxDelay:    5 * time.Millisecond,
			Retryable:   IsRateLimitError,
		},
	}
}

func testFilters() *domain.InsightFilters {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	return &domain.InsightFilters{
		StartDate: &start,
		EndDate:   &end,
		Level:     domain.InsightLevelAd,
	}
}

// pageBody monta uma página de insights com rows linhas e um cursor next opcional
func pageBody(rows int, next string) string {
	body := `{"data":[`
	for i := 0; i < rows; i++ {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"ad_id":"ad_%d","date_start":"2025-09-15","date_stop":"2025-09-15","spend":"1.00","impressions":"10","clicks":"1"}`, i)
	}
	body += `]`
	if next != "" {
		body += fmt.Sprintf(`,"paging":{"next":"%s"}`, next)
	}
	body += `}`
	return body
}

func TestFetchInsights_EsgotaPaginacao(t *testing.T) {
	// Três páginas de 500/500/200 linhas; o cursor some na última
	pageSizes := []int{500, 500, 200}
	var server *httptest.Server

	page := 0
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next := ""
		if page < len(pageSizes)-1 {
			next = server.URL + fmt.Sprintf("/page/%d", page+1)
		}
		fmt.Fprint(w, pageBody(pageSizes[page], next))
		page++
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	rows, stats, err := client.FetchInsights(context.Background(), "123", "token", testFilters())

	require.NoError(t, err)
	assert.Len(t, rows, 1200)
	assert.Equal(t, 3, stats.Pages)
	assert.Equal(t, 1200, stats.Rows)
	assert.False(t, stats.Truncated)
}

func TestFetchInsights_ValvulaDeLimiteDePaginas(t *testing.T) {
	var server *httptest.Server

	// Upstream sempre devolve um cursor next: sem a válvula a enumeração não terminaria
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pageBody(100, server.URL+"/more"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	filters := testFilters()
	filters.MaxPages = 2

	rows, stats, err := client.FetchInsights(context.Background(), "123", "token", filters)

	require.NoError(t, err)
	assert.Len(t, rows, 200)
	assert.Equal(t, 2, stats.Pages)
	// O resultado é um piso, não um total
	assert.True(t, stats.Truncated)
}

func TestFetchInsights_ErroDeAutorizacao(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"(#200) Permissions error","type":"OAuthException","code":200}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, _, err := client.FetchInsights(context.Background(), "123", "token", testFilters())

	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestFetchInsights_RateLimitRetentadoAteSucesso(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"User request limit reached","type":"OAuthException","code":17}}`)
			return
		}
		fmt.Fprint(w, pageBody(5, ""))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	rows, stats, err := client.FetchInsights(context.Background(), "123", "token", testFilters())

	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 1, stats.Pages)
}

func TestFetchInsights_RateLimitEsgotadoViraUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"User request limit reached","type":"OAuthException","code":17}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, _, err := client.FetchInsights(context.Background(), "123", "token", testFilters())

	require.Error(t, err)
	assert.False(t, IsRateLimitError(err))

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestFetchInsights_CorpoMalformadoViraUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": not-json`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, _, err := client.FetchInsights(context.Background(), "123", "token", testFilters())

	require.Error(t, err)

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestFetchInsights_FiltrosInvalidos(t *testing.T) {
	client := newTestClient("http://unused")

	start := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := client.FetchInsights(context.Background(), "123", "token", &domain.InsightFilters{
		StartDate: &start,
		EndDate:   &end,
		Level:     domain.InsightLevelAd,
	})

	assert.Error(t, err)
}
