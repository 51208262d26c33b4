package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FetchInsights busca as linhas de insights de uma conta seguindo todos os
// cursores de paginação antes de retornar. Com MaxPages > 0 no filtro, a
// enumeração para no limite e FetchStats.Truncated marca o resultado como um
// piso. Nenhuma página parcial é retornada em caso de erro
func (c *MetaClient) FetchInsights(
	ctx context.Context,
	accountID string,
	accessToken string,
	filters *domain.InsightFilters,
) ([]metadomain.InsightRow, *metadomain.FetchStats, error) {
	if err := filters.Validate(); err != nil {
		return nil, nil, err
	}

	requestURL := c.buildInsightsURL(accountID, accessToken, filters)

	rows := make([]metadomain.InsightRow, 0)
	stats := &metadomain.FetchStats{}

	for requestURL != "" {
		page, err := c.fetchPageWithRetry(ctx, requestURL)
		if err != nil {
			// Se as tentativas contra rate-limit se esgotaram, o erro vira
			// UpstreamError para o chamador
			if IsRateLimitError(err) {
				return nil, nil, &UpstreamError{StatusCode: http.StatusTooManyRequests, Body: err.Error()}
			}
			return nil, nil, err
		}

		rows = append(rows, page.Data...)
		stats.Pages++
		stats.Rows = len(rows)

		if page.Paging == nil || page.Paging.Next == "" {
			break
		}

		if filters.MaxPages > 0 && stats.Pages >= filters.MaxPages {
			stats.Truncated = true
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"pages":      stats.Pages,
				"rows":       stats.Rows,
			}).Warn("Limite de páginas atingido, resultado será tratado como piso")
			break
		}

		requestURL = page.Paging.Next
	}

	return rows, stats, nil
}

// buildInsightsURL monta a URL da primeira página de insights
func (c *MetaClient) buildInsightsURL(accountID, accessToken string, filters *domain.InsightFilters) string {
	baseURL := fmt.Sprintf("%s/act_%s/insights", c.Cfg.Meta.URL, accountID)

	fields := filters.Fields
	if len(fields) == 0 {
		fields = domain.DefaultAdFields
	}

	timeRange := fmt.Sprintf(
		"{\"since\":\"%s\",\"until\":\"%s\"}",
		filters.StartDate.Format(time.DateOnly),
		filters.EndDate.Format(time.DateOnly),
	)

	params := &url.Values{}
	params.Add("level", string(filters.Level))
	params.Add("fields", strings.Join(fields, ","))
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1") // Uma linha por anúncio por dia
	if len(filters.Breakdowns) > 0 {
		params.Add("breakdowns", strings.Join(filters.Breakdowns, ","))
	}
	if c.Cfg.Meta.PageSize > 0 {
		params.Add("limit", fmt.Sprintf("%d", c.Cfg.Meta.PageSize))
	}
	params.Add("access_token", accessToken)

	return baseURL + "?" + params.Encode()
}

// fetchPageWithRetry aplica a política de retry do cliente para erros de
// rate-limit; os demais erros interrompem imediatamente
func (c *MetaClient) fetchPageWithRetry(ctx context.Context, requestURL string) (*metadomain.InsightsPage, error) {
	var page *metadomain.InsightsPage

	err := c.retryPolicy.Do(ctx, "fetch de página de insights", func() error {
		fetched, fetchErr := c.fetchPage(ctx, requestURL)
		if fetchErr != nil {
			return fetchErr
		}
		page = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

// fetchPage busca e decodifica uma única página de insights
func (c *MetaClient) fetchPage(ctx context.Context, requestURL string) (*metadomain.InsightsPage, error) {
	if err := c.wait(ctx); err != nil {
		return nil, errors.Wrap(err, "limitador de requisições cancelado")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição de insights")
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição de insights")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler resposta de insights")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errResp, parseErr := ParseErrorResponse(body)
		if parseErr != nil {
			errResp = nil
		}
		return nil, classifyResponse(resp.StatusCode, body, errResp)
	}

	var page metadomain.InsightsPage
	if err := json.Unmarshal(body, &page); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de insights")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
	}

	return &page, nil
}
