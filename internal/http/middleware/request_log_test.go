package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

func TestRequestLoggerLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	r := gin.New()
	r.Use(RequestLogger(log, "/healthcheck"))
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/business-plans/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/healthcheck", "/api/business-plans/p1", "/boom", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("want 4 access lines, got %d", len(entries))
	}
	want := []zapcore.Level{zapcore.DebugLevel, zapcore.WarnLevel, zapcore.ErrorLevel, zapcore.WarnLevel}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("entry %d: want level %v got %v", i, want[i], e.Level)
		}
	}
	if got := entries[1].ContextMap()["plan_id"]; got != "p1" {
		t.Fatalf("plan_id field: %v", got)
	}
	if got := entries[3].ContextMap()["route"]; got != "unmatched" {
		t.Fatalf("unmatched route label: %v", got)
	}
}

func TestInboundID(t *testing.T) {
	cases := map[string]string{
		"  req-1  ":     "req-1",
		"has space":     "",
		"line\nbreak":   "",
		"":              "",
		"café":          "",
		"00-abc-def-01": "00-abc-def-01",
	}
	for in, want := range cases {
		if got := inboundID(in); got != want {
			t.Fatalf("inboundID(%q): want %q got %q", in, want, got)
		}
	}
}
