package services

import (
	"context"
	"time"

	types "github.com/yungbote/cemse-backend/internal/domain"
	"github.com/yungbote/cemse-backend/internal/platform/ctxutil"
)

// PlanEventPublisher is the transport the notifier hands events to.
type PlanEventPublisher interface {
	Publish(ctx context.Context, ev types.PlanEvent) error
}

type PlanNotifier interface {
	PlanCreated(ctx context.Context, plan *types.BusinessPlan) error
	PlanUpdated(ctx context.Context, plan *types.BusinessPlan) error
	PlanDeleted(ctx context.Context, planID, ownerID string) error
}

type planNotifier struct {
	bus PlanEventPublisher
	now func() time.Time
}

func NewPlanNotifier(bus PlanEventPublisher) PlanNotifier {
	return &planNotifier{bus: bus, now: func() time.Time { return time.Now().UTC() }}
}

func (n *planNotifier) PlanCreated(ctx context.Context, plan *types.BusinessPlan) error {
	return n.publish(ctx, types.EventCreated, plan.ID.String(), plan.OwnerID, plan.CompletionScore)
}

func (n *planNotifier) PlanUpdated(ctx context.Context, plan *types.BusinessPlan) error {
	return n.publish(ctx, types.EventUpdated, plan.ID.String(), plan.OwnerID, plan.CompletionScore)
}

func (n *planNotifier) PlanDeleted(ctx context.Context, planID, ownerID string) error {
	return n.publish(ctx, types.EventDeleted, planID, ownerID, 0)
}

func (n *planNotifier) publish(ctx context.Context, typ types.EventType, planID, ownerID string, score int) error {
	if n == nil || n.bus == nil {
		return nil
	}
	ev := types.PlanEvent{
		Type:       typ,
		PlanID:     planID,
		OwnerID:    ownerID,
		Score:      score,
		OccurredAt: n.now(),
	}
	if td := ctxutil.GetTraceData(ctx); td != nil {
		ev.TraceID = td.TraceID
	}
	return n.bus.Publish(ctx, ev)
}
