package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/cemse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
	"github.com/yungbote/cemse-backend/internal/services"
)

const samplePlan = `{
  "ownerId": "u1",
  "title": "Hello<script>alert(1)</script>World",
  "description": "d",
  "industry": "Retail",
  "stage": "idea",
  "fundingGoal": 1000,
  "revenueStreams": ["  a  ", "", "b"]
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, samplePlan, "validate", "-")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, `"valid": true`) {
		t.Fatalf("validate output: %s", out)
	}

	out, err = run(t, `{"ownerId":"u1","title":""}`, "validate", "-")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("want errInvalid, got %v", err)
	}
	if !strings.Contains(out, `"field": "title"`) {
		t.Fatalf("validate output: %s", out)
	}

	scriptOnly := strings.Replace(samplePlan, `"Hello<script>alert(1)</script>World"`, `"<script>alert(1)</script>"`, 1)
	out, err = run(t, scriptOnly, "validate", "-")
	if !errors.Is(err, errInvalid) || !strings.Contains(out, `"field": "title"`) {
		t.Fatalf("script-only title should be invalid: %v %s", err, out)
	}

	if _, err := run(t, `{"title":"x"}`, "validate", "--update", "-"); err != nil {
		t.Fatalf("partial update should validate: %v", err)
	}
}

func TestSanitizeCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte(samplePlan), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := run(t, "", "sanitize", path)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	var got struct {
		Title          string   `json:"title"`
		RevenueStreams []string `json:"revenueStreams"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "HelloWorld" || len(got.RevenueStreams) != 2 {
		t.Fatalf("sanitized: %+v", got)
	}
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, samplePlan, "score", "-")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var got struct {
		Score     int `json:"score"`
		Completed int `json:"completed"`
		Total     int `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Completed != 5 || got.Total != 38 || got.Score != 13 {
		t.Fatalf("report: %+v", got)
	}

	if _, err := run(t, samplePlan, "score", "--policy", "ugc", "-"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "", "token", "--secret", "s", "--subject", "owner-9", "--ttl", "5m")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	auth := services.NewAuthService(logger.Nop(), "s")
	ctx, err := auth.SetContextFromToken(context.Background(), strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("minted token rejected: %v", err)
	}
	if rd := ctxutil.GetRequestData(ctx); rd == nil || rd.UserID != "owner-9" {
		t.Fatalf("subject: %+v", rd)
	}
}

func TestWatchRequiresAddress(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	if _, err := run(t, "", "watch"); err == nil {
		t.Fatalf("expected error without redis address")
	}
}
