package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	types "github.com/yungbote/cemse-backend/internal/domain"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

func TestNewPlanEventBusWithoutAddrIsNop(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	bus, err := NewPlanEventBus(log, Options{})
	if err != nil {
		t.Fatalf("NewPlanEventBus: %v", err)
	}
	if _, ok := bus.(NopBus); !ok {
		t.Fatalf("expected NopBus, got %T", bus)
	}
	if err := bus.Publish(context.Background(), types.PlanEvent{Type: types.EventCreated}); err != nil {
		t.Fatalf("Publish on nop bus: %v", err)
	}
	if err := bus.StartForwarder(context.Background(), func(types.PlanEvent) {}); err == nil {
		t.Fatalf("StartForwarder on nop bus should report disabled events")
	}
}

func TestNewPlanEventBusRequiresLogger(t *testing.T) {
	if _, err := NewPlanEventBus(nil, Options{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error without logger")
	}
}

func TestEventPayloadRoundTrip(t *testing.T) {
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	raw, err := encodeEvent(types.PlanEvent{
		Type:       types.EventUpdated,
		PlanID:     "p1",
		OwnerID:    "u1",
		Score:      55,
		OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("encodeEvent: %v", err)
	}
	if !strings.Contains(string(raw), `"type":"business_plan.updated"`) || !strings.Contains(string(raw), `"planId":"p1"`) {
		t.Fatalf("unexpected payload: %s", raw)
	}

	ev, err := decodeEvent(string(raw))
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if ev.Type != types.EventUpdated || ev.Score != 55 || !ev.OccurredAt.Equal(at) {
		t.Fatalf("decoded event: %+v", ev)
	}
}

func TestEncodeEventStampsTime(t *testing.T) {
	raw, err := encodeEvent(types.PlanEvent{Type: types.EventDeleted, PlanID: "p"})
	if err != nil {
		t.Fatalf("encodeEvent: %v", err)
	}
	ev, err := decodeEvent(string(raw))
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if ev.OccurredAt.IsZero() {
		t.Fatalf("occurredAt should be stamped")
	}
	if _, err := encodeEvent(types.PlanEvent{}); err == nil {
		t.Fatalf("expected error for untyped event")
	}
	if _, err := decodeEvent(`{"type":"business_plan.created"}`); err == nil {
		t.Fatalf("expected error for event without planId")
	}
	if _, err := decodeEvent(`not json`); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
