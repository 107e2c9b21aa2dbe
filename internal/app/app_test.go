package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewWithSQLite(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_MODE", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("JWT_SECRET_KEY", "app-test")

	a, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close(context.Background()) })
	if a.DB.Driver() != "sqlite" {
		t.Fatalf("driver: want=sqlite got=%q", a.DB.Driver())
	}

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/business-plans", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: want=401 got=%d", rec.Code)
	}
}
