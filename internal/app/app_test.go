package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/little-league/internal/config"
	"github.com/riskibarqy/little-league/internal/platform/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		AppEnv:           config.EnvDev,
		HTTPAddr:         ":0",
		ReadTimeout:      time.Second,
		WriteTimeout:     time.Second,
		Location:         time.UTC,
		Divisions:        []string{"Majors", "T-Ball"},
		ScoringDivisions: []string{"Majors"},
		SourceByDivision: map[string]string{},
		SourceTimeout:    time.Second,
		SyncMaxWorkers:   2,
		SyncOnStart:      true,
		OverrideStore:    config.OverrideStoreMemory,
		CacheEnabled:     true,
		CacheTTL:         time.Minute,
	}
}

func TestNew_SyncsLocalSheetOnStart(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "majors.csv")
	content := "Date,Time,Home,Away,Home Score,Away Score\n2024-04-01,6:00 PM,Tigers,Cubs,5,3\n"
	if err := os.WriteFile(sheet, []byte(content), 0o600); err != nil {
		t.Fatalf("write sheet: %v", err)
	}

	cfg := testConfig(t)
	cfg.SourceByDivision = map[string]string{"Majors": sheet}

	container, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer container.Close()

	container.Warmup(context.Background())
	if got := container.Reconcile.Current().Len(); got != 1 {
		t.Fatalf("expected 1 game after warmup, got %d", got)
	}

	srv, err := container.NewHTTPServer()
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/divisions/Majors/standings", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"team":"Tigers"`) {
		t.Fatalf("unexpected standings response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestNew_SQLiteStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.OverrideStore = config.OverrideStoreSQLite
	cfg.OverrideSQLitePath = filepath.Join(t.TempDir(), "overrides.db")
	cfg.SyncOnStart = false

	container, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.db == nil {
		t.Fatalf("expected sqlite handle")
	}
	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.ScoringDivisions = []string{"Seniors"}
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected unknown scoring division to fail")
	}

	cfg = testConfig(t)
	cfg.OverrideStore = "redis"
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected unsupported store to fail")
	}

	cfg = testConfig(t)
	cfg.HTTPAddr = ""
	container, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, err := container.NewHTTPServer(); err == nil {
		t.Fatalf("expected empty addr to fail")
	}
}
