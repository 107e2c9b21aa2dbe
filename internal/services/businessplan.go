package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/cemse-backend/internal/data/repos"
	types "github.com/yungbote/cemse-backend/internal/domain"
	bp "github.com/yungbote/cemse-backend/internal/modules/businessplan"
	"github.com/yungbote/cemse-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/cemse-backend/internal/pkg/errors"
	"github.com/yungbote/cemse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

const tracerName = "github.com/yungbote/cemse-backend/internal/services"

// BusinessPlanService validates, sanitizes and scores plans before they are
// stored. Callers never supply completionScore; it is derived on every write.
type BusinessPlanService interface {
	Create(ctx context.Context, in types.PlanInput) (*types.BusinessPlan, error)
	Update(ctx context.Context, id string, in types.PlanInput) (*types.BusinessPlan, error)
	Delete(ctx context.Context, id string) error
	// Get returns (nil, nil) when no plan has the id.
	Get(ctx context.Context, id string) (*types.BusinessPlan, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*types.BusinessPlan, error)
}

type businessPlanService struct {
	log       *logger.Logger
	repo      repos.BusinessPlanRepo
	sanitizer *bp.Sanitizer
	notifier  PlanNotifier
	tracer    trace.Tracer
}

func NewBusinessPlanService(log *logger.Logger, repo repos.BusinessPlanRepo, sanitizer *bp.Sanitizer, notifier PlanNotifier) BusinessPlanService {
	if sanitizer == nil {
		sanitizer = bp.NewSanitizer(bp.PolicyScriptStrip)
	}
	return &businessPlanService{
		log:       log.With("service", "BusinessPlanService"),
		repo:      repo,
		sanitizer: sanitizer,
		notifier:  notifier,
		tracer:    otel.Tracer(tracerName),
	}
}

func (s *businessPlanService) Create(ctx context.Context, in types.PlanInput) (*types.BusinessPlan, error) {
	ctx, span := s.tracer.Start(ctx, "businessplan.Create")
	defer span.End()

	if err := bp.ValidateForCreate(in); err != nil {
		return nil, s.fail(span, err)
	}
	rec, err := s.prepare(bp.FromInput(in))
	if err != nil {
		return nil, s.fail(span, err)
	}

	created, err := s.repo.Insert(dbctx.New(ctx), &rec)
	if err != nil {
		s.log.Error("Insert business plan failed", append(ctxutil.LogFields(ctx), "owner_id", rec.OwnerID, "error", err)...)
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.String("plan.id", created.ID.String()), attribute.Int("plan.completion_score", created.CompletionScore))
	s.log.Info("Business plan created", append(ctxutil.LogFields(ctx), "plan_id", created.ID, "owner_id", created.OwnerID, "completion_score", created.CompletionScore)...)

	s.notify(ctx, "created", func() error { return s.notifier.PlanCreated(ctx, created) })
	return created, nil
}

func (s *businessPlanService) Update(ctx context.Context, id string, in types.PlanInput) (*types.BusinessPlan, error) {
	ctx, span := s.tracer.Start(ctx, "businessplan.Update", trace.WithAttributes(attribute.String("plan.id", id)))
	defer span.End()

	planID, ok := parseID(id)
	if !ok {
		return nil, s.fail(span, apperr.NotFound("business plan", id))
	}
	dbc := dbctx.New(ctx)
	existing, err := s.repo.FindByID(dbc, planID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if existing == nil {
		return nil, s.fail(span, apperr.NotFound("business plan", id))
	}
	if err := bp.ValidateForUpdate(in); err != nil {
		return nil, s.fail(span, err)
	}

	rec, err := s.prepare(bp.Merge(*existing, in))
	if err != nil {
		return nil, s.fail(span, err)
	}
	updated, err := s.repo.Overwrite(dbc, planID, &rec)
	if err != nil {
		s.log.Error("Overwrite business plan failed", append(ctxutil.LogFields(ctx), "plan_id", id, "error", err)...)
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.Int("plan.completion_score", updated.CompletionScore))
	s.log.Info("Business plan updated", append(ctxutil.LogFields(ctx), "plan_id", updated.ID, "completion_score", updated.CompletionScore)...)

	s.notify(ctx, "updated", func() error { return s.notifier.PlanUpdated(ctx, updated) })
	return updated, nil
}

func (s *businessPlanService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "businessplan.Delete", trace.WithAttributes(attribute.String("plan.id", id)))
	defer span.End()

	planID, ok := parseID(id)
	if !ok {
		return s.fail(span, apperr.NotFound("business plan", id))
	}
	dbc := dbctx.New(ctx)
	// Looked up first so the deletion event can name the owner.
	existing, err := s.repo.FindByID(dbc, planID)
	if err != nil {
		return s.fail(span, err)
	}
	removed, err := s.repo.Remove(dbc, planID)
	if err != nil {
		s.log.Error("Remove business plan failed", append(ctxutil.LogFields(ctx), "plan_id", id, "error", err)...)
		return s.fail(span, err)
	}
	if !removed {
		return s.fail(span, apperr.NotFound("business plan", id))
	}
	s.log.Info("Business plan deleted", append(ctxutil.LogFields(ctx), "plan_id", id)...)

	ownerID := ""
	if existing != nil {
		ownerID = existing.OwnerID
	}
	s.notify(ctx, "deleted", func() error { return s.notifier.PlanDeleted(ctx, planID.String(), ownerID) })
	return nil
}

func (s *businessPlanService) Get(ctx context.Context, id string) (*types.BusinessPlan, error) {
	ctx, span := s.tracer.Start(ctx, "businessplan.Get", trace.WithAttributes(attribute.String("plan.id", id)))
	defer span.End()

	planID, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	plan, err := s.repo.FindByID(dbctx.New(ctx), planID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return plan, nil
}

func (s *businessPlanService) ListByOwner(ctx context.Context, ownerID string) ([]*types.BusinessPlan, error) {
	ctx, span := s.tracer.Start(ctx, "businessplan.ListByOwner")
	defer span.End()

	plans, err := s.repo.ListByOwner(dbctx.New(ctx), ownerID)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("list business plans: %w", err))
	}
	span.SetAttributes(attribute.Int("plan.count", len(plans)))
	return plans, nil
}

// prepare sanitizes rec, re-checks required text on the cleaned values and
// derives the completion score from them.
func (s *businessPlanService) prepare(rec types.BusinessPlan) (types.BusinessPlan, error) {
	out := s.sanitizer.Sanitize(rec)
	if err := bp.ValidateSanitized(out); err != nil {
		return types.BusinessPlan{}, err
	}
	out.CompletionScore = bp.Score(out)
	return out, nil
}

// notify never fails the request: the write has already committed.
func (s *businessPlanService) notify(ctx context.Context, what string, publish func() error) {
	if s.notifier == nil {
		return
	}
	if err := publish(); err != nil {
		s.log.Warn("Publish plan event failed", append(ctxutil.LogFields(ctx), "event", what, "error", err)...)
	}
}

func (s *businessPlanService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(apperr.KindOf(err)))
	return err
}

func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, false
	}
	return parsed, true
}
