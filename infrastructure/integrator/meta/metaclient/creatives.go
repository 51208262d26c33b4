package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
)

const creativeFields = "creative{id,object_type,video_id,image_url,thumbnail_url,instagram_permalink_url,object_story_spec}"

// ResolveCreatives resolve os metadados de criativo para um conjunto de
// anúncios via lookups multi-id em chunks, executados em paralelo por um pool
// limitado de workers. A falha de um chunk não aborta os demais: ids ausentes
// do resultado são tratados como formato desconhecido pelo chamador
func (c *MetaClient) ResolveCreatives(
	ctx context.Context,
	accessToken string,
	adIDs []string,
) (map[string]*metadomain.CreativeInfo, error) {
	result := make(map[string]*metadomain.CreativeInfo)
	if len(adIDs) == 0 {
		return result, nil
	}

	chunkSize := c.Cfg.Meta.CreativeChunkSize
	if chunkSize <= 0 || chunkSize > 50 {
		chunkSize = 50 // Limite de ids por requisição da Graph API
	}

	chunks := chunkIDs(adIDs, chunkSize)

	maxWorkers := c.Cfg.Meta.CreativeWorkers
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	semaphore := make(chan struct{}, maxWorkers)

	var wg sync.WaitGroup
	var mutex sync.Mutex

	for _, chunk := range chunks {
		wg.Add(1)

		go func(ids []string) {
			defer wg.Done()

			// Adquirir uma vaga no semáforo
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			creatives, err := c.fetchCreativeChunkWithRetry(ctx, accessToken, ids)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"chunk_size": len(ids),
					"first_id":   ids[0],
				}).Warn("Erro ao resolver chunk de criativos, seguindo sem ele")
				return
			}

			mutex.Lock()
			for id, creative := range creatives {
				result[id] = creative
			}
			mutex.Unlock()
		}(chunk)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"requested": len(adIDs),
		"resolved":  len(result),
		"chunks":    len(chunks),
	}).Debug("Resolução de criativos concluída")

	return result, nil
}

// fetchCreativeChunkWithRetry aplica a política de retry do cliente para
// erros de rate-limit; os demais erros interrompem imediatamente
func (c *MetaClient) fetchCreativeChunkWithRetry(
	ctx context.Context,
	accessToken string,
	ids []string,
) (map[string]*metadomain.CreativeInfo, error) {
	var creatives map[string]*metadomain.CreativeInfo

	err := c.retryPolicy.Do(ctx, "lookup de chunk de criativos", func() error {
		fetched, fetchErr := c.fetchCreativeChunk(ctx, accessToken, ids)
		if fetchErr != nil {
			return fetchErr
		}
		creatives = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	return creatives, nil
}

// fetchCreativeChunk faz um lookup multi-id (?ids=a,b,c) de criativos
func (c *MetaClient) fetchCreativeChunk(
	ctx context.Context,
	accessToken string,
	ids []string,
) (map[string]*metadomain.CreativeInfo, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	params := &url.Values{}
	params.Add("ids", strings.Join(ids, ","))
	params.Add("fields", creativeFields)
	params.Add("access_token", accessToken)

	requestURL := fmt.Sprintf("%s/?%s", c.Cfg.Meta.URL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.lookupClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errResp, parseErr := ParseErrorResponse(body)
		if parseErr != nil {
			errResp = nil
		}
		return nil, classifyResponse(resp.StatusCode, body, errResp)
	}

	// A resposta multi-id é um objeto com um anúncio por chave
	var payload map[string]metadomain.AdWithCreative
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
	}

	creatives := make(map[string]*metadomain.CreativeInfo, len(payload))
	for id, ad := range payload {
		if ad.Creative != nil {
			creatives[id] = ad.Creative
		}
	}

	return creatives, nil
}

// chunkIDs divide os ids em chunks de no máximo size elementos
func chunkIDs(ids []string, size int) [][]string {
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
