// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/sheetmap/internal/config"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"
)

const profilesYAML = `profiles:
  - id: knab
    name: Knab
    delimiter: semicolon
    timestampFormat: "%d-%m-%Y"
    timestampColumn: Datum
`

func testConfig() config.AppConfig {
	cfg := config.Defaults()
	cfg.StoreBackend = store.BackendMemory
	cfg.RateLimitEnabled = false
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}

func TestOpenStore_SyncsProfilesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(profilesYAML), 0o600))

	cfg := testConfig()
	cfg.ProfilesFile = path

	s, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	p, err := s.Get(context.Background(), "knab")
	require.NoError(t, err)
	assert.Equal(t, "Knab", p.Name)
}

func TestOpenStore_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.StoreBackend = "badger"
	_, err := OpenStore(context.Background(), cfg)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  - name: x\n    unknown: 1\n"), 0o600))
	cfg = testConfig()
	cfg.ProfilesFile = path
	_, err = OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenStore_SqliteInDataDir(t *testing.T) {
	cfg := testConfig()
	cfg.StoreBackend = ""
	cfg.DataDir = t.TempDir()

	s, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	assert.IsType(t, &store.SqliteStore{}, s)
	_, err = os.Stat(store.DBPath(cfg.DataDir))
	assert.NoError(t, err)
}

func TestStartTracing(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	p, err := StartTracing(context.Background(), testConfig())
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	cfg := testConfig()
	cfg.TracingEnabled = true
	cfg.TracingExporter = "zipkin"
	_, err = StartTracing(context.Background(), cfg)
	assert.ErrorContains(t, err, "start tracing")

	cfg.TracingExporter = "http"
	cfg.TracingEndpoint = "127.0.0.1:4318"
	p, err = StartTracing(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewApp_TracesAPIRequests(t *testing.T) {
	prev := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	cfg := testConfig()
	cfg.TracingEnabled = true
	s := store.NewMemoryStore()
	defer func() { _ = s.Close() }()

	app, err := NewApp(cfg, s)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profiles/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/profiles/{id}")
}

func TestNewApp_RequiresStore(t *testing.T) {
	_, err := NewApp(testConfig(), nil)
	assert.ErrorIs(t, err, ErrMissingStore)
}

func TestApp_ServesAndShutsDown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: []\n"), 0o600))

	cfg := testConfig()
	cfg.ProfilesFile = path
	cfg.ProfilesWatch = true

	s := store.NewMemoryStore()
	defer func() { _ = s.Close() }()

	app, err := NewApp(cfg, s)
	require.NoError(t, err)
	app.watcher.SetDebounce(20 * time.Millisecond)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	app.UseListener(ln)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	client := &http.Client{
		Timeout:   2 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	base := "http://" + ln.Addr().String()

	require.Eventually(t, func() bool {
		resp, err := client.Get(base + "/healthz")
		if err != nil {
			return false
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	// Editing the watched file reaches the API.
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte(profilesYAML), 0o600); err != nil {
			return false
		}
		resp, err := client.Get(base + "/api/v1/profiles/knab")
		if err != nil {
			return false
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	client.CloseIdleConnections()
}

func TestApp_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	cfg := testConfig()
	cfg.ListenAddr = ln.Addr().String()
	app, err := NewApp(cfg, store.NewMemoryStore())
	require.NoError(t, err)

	err = app.Run(context.Background())
	assert.ErrorIs(t, err, ErrServerStartFailed)
}
