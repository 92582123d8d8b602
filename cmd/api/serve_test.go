package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dataroom/docs"
	"dataroom/internal/config"
	"dataroom/internal/model"
	"dataroom/internal/service"
	storageMocks "dataroom/internal/storage/mocks"
)

func newTestFiberApp(t *testing.T) *fiber.App {
	t.Helper()
	reg := prometheus.NewRegistry()
	app, err := newApp(serverDeps{
		cfg: &config.AppConfig{
			StoreDriver: config.StoreDriverMemory,
			MinIO:       config.MinIOConfig{PresignExpiry: time.Minute},
			Matching:    config.MatchingConfig{ParallelThreshold: 256},
		},
		log:      zap.NewNop(),
		store:    new(storageMocks.MockStorage),
		registry: reg,
		gatherer: reg,
	})
	require.NoError(t, err)
	return app
}

func newTestApp(t *testing.T) func(*http.Request) *http.Response {
	t.Helper()
	app := newTestFiberApp(t)
	return func(req *http.Request) *http.Response {
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}
}

func TestNewApp_QuestionFlowInMemory(t *testing.T) {
	do := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/questions",
		strings.NewReader(`{"title":"Lease terms","content":"Share the signed lease","priority":"high","tags":["Legal"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Name", "Buyer")
	resp := do(req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var q model.Question
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	assert.Equal(t, model.StatusPending, q.Status)
	assert.Equal(t, []string{"legal"}, q.Tags)
	assert.Equal(t, "Buyer", q.AskedBy)

	req = httptest.NewRequest(http.MethodPost, "/questions/"+q.ID+"/answer",
		strings.NewReader(`{"answer":"Attached.","version":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp = do(req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/questions/"+q.ID+"/answer",
		strings.NewReader(`{"answer":"Again.","version":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp = do(req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var d service.Dashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	assert.Equal(t, 1, d.Total)
	assert.Equal(t, 1, d.ByStatus[model.StatusAnswered])
}

func TestNewApp_HealthAndMetrics(t *testing.T) {
	do := newTestApp(t)

	resp := do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestNewApp_SwaggerDocConcurrentReads(t *testing.T) {
	configureSwagger(&config.AppConfig{AppHost: "dataroom.internal:8080"})
	t.Cleanup(func() { docs.SwaggerInfo.Host = "" })
	app := newTestFiberApp(t)

	var wg sync.WaitGroup
	bodies := make([]string, 8)
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
			req.Header.Set("X-Forwarded-Proto", "https")
			resp, err := app.Test(req)
			if err != nil || resp.StatusCode != http.StatusOK {
				return
			}
			b, _ := io.ReadAll(resp.Body)
			bodies[i] = string(b)
		}(i)
	}
	wg.Wait()

	for _, b := range bodies {
		assert.Contains(t, b, "Data Room API")
		assert.Contains(t, b, `"host": "dataroom.internal:8080"`)
	}
	assert.Equal(t, "dataroom.internal:8080", docs.SwaggerInfo.Host)
	assert.Empty(t, docs.SwaggerInfo.Schemes)
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])

	f := serveCmd.Flags().Lookup("migrate")
	require.NotNil(t, f)
	assert.Equal(t, "true", f.DefValue)
}
