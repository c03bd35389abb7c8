package handler_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/ideabox/internal/handler"
	"github.com/msomdec/ideabox/internal/metrics"
	"github.com/msomdec/ideabox/internal/repository/sqlite"
	"github.com/msomdec/ideabox/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testEnv struct {
	app handler.App
	db  *sqlite.DB
	srv *httptest.Server
}

func newTestApp(t *testing.T) handler.App {
	t.Helper()
	return newTestEnv(t).app
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.InitSchema(context.Background()); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	app := handler.App{
		Auth:    service.NewAuthService(db.Users(), db.Revocations(), testJWTSecret, 4, time.Hour),
		Ideas:   service.NewIdeaService(db.Ideas()),
		DB:      db,
		Metrics: metrics.New(),
	}

	srv := httptest.NewServer(handler.NewRouter(app))
	t.Cleanup(srv.Close)

	return &testEnv{app: app, db: db, srv: srv}
}

// newClient returns a client with its own cookie jar that does not follow
// redirects, so tests can assert on each hop.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := e.db.SqlDB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
