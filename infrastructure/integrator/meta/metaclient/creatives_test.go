package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCreatives_DivideEmChunksEMescla(t *testing.T) {
	var mu sync.Mutex
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()

		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		assert.LessOrEqual(t, len(ids), 50)

		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf(`"%s":{"id":"%s","creative":{"id":"cr_%s","object_type":"VIDEO"}}`, id, id, id))
		}
		fmt.Fprint(w, "{"+strings.Join(parts, ",")+"}")
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	adIDs := make([]string, 120)
	for i := range adIDs {
		adIDs[i] = fmt.Sprintf("ad_%d", i)
	}

	creatives, err := client.ResolveCreatives(context.Background(), "token", adIDs)

	require.NoError(t, err)
	assert.Len(t, creatives, 120)
	assert.Equal(t, 3, requests)
	assert.Equal(t, "VIDEO", creatives["ad_7"].ObjectType)
}

func TestResolveCreatives_ChunkComFalhaNaoAbortaOsDemais(t *testing.T) {
	var mu sync.Mutex
	failed := false

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("ids"), ",")

		mu.Lock()
		shouldFail := !failed
		if shouldFail {
			failed = true
		}
		mu.Unlock()

		if shouldFail {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"message":"An unknown error occurred","type":"OAuthException","code":1}}`)
			return
		}

		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf(`"%s":{"id":"%s","creative":{"id":"cr_%s","image_url":"http://img"}}`, id, id, id))
		}
		fmt.Fprint(w, "{"+strings.Join(parts, ",")+"}")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	// Um worker por vez para a ordem das requisições ser determinística
	client.Cfg.Meta.CreativeWorkers = 1
	client.Cfg.Meta.CreativeChunkSize = 50

	adIDs := make([]string, 100)
	for i := range adIDs {
		adIDs[i] = fmt.Sprintf("ad_%d", i)
	}

	creatives, err := client.ResolveCreatives(context.Background(), "token", adIDs)

	require.NoError(t, err)
	// O chunk que falhou fica de fora; o restante é resolvido normalmente
	assert.Len(t, creatives, 50)
}

func TestResolveCreatives_SemIDs(t *testing.T) {
	client := newTestClient("http://unused")

	creatives, err := client.ResolveCreatives(context.Background(), "token", nil)

	require.NoError(t, err)
	assert.Empty(t, creatives)
}

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		size     int
		expected []int
	}{
		{
			name:     "divisao exata",
			total:    100,
			size:     50,
			expected: []int{50, 50},
		},
		{
			name:     "ultimo chunk menor",
			total:    103,
			size:     50,
			expected: []int{50, 50, 3},
		},
		{
			name:     "menos ids que o chunk",
			total:    7,
			size:     50,
			expected: []int{7},
		},
		{
			name:     "sem ids",
			total:    0,
			size:     50,
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.total)
			for i := range ids {
				ids[i] = fmt.Sprintf("id_%d", i)
			}

			chunks := chunkIDs(ids, tt.size)

			require.Len(t, chunks, len(tt.expected))
			for i, chunk := range chunks {
				assert.Len(t, chunk, tt.expected[i])
			}
		})
	}
}
