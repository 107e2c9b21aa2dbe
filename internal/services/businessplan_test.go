package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/cemse-backend/internal/domain"
	bp "github.com/yungbote/cemse-backend/internal/modules/businessplan"
	"github.com/yungbote/cemse-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/cemse-backend/internal/pkg/errors"
	"github.com/yungbote/cemse-backend/internal/pkg/pointers"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

type fakePlanRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]types.BusinessPlan
	inserts int
	writes  int
	err     error
	clock   time.Time
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{rows: map[uuid.UUID]types.BusinessPlan{}, clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakePlanRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakePlanRepo) FindByID(_ dbctx.Context, id uuid.UUID) (*types.BusinessPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakePlanRepo) ListByOwner(_ dbctx.Context, ownerID string) ([]*types.BusinessPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*types.BusinessPlan{}
	for _, row := range f.rows {
		if row.OwnerID == ownerID {
			r := row
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakePlanRepo) Insert(_ dbctx.Context, rec *types.BusinessPlan) (*types.BusinessPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, row := range f.rows {
		if row.OwnerID == rec.OwnerID && row.Title == rec.Title {
			return nil, apperr.Conflict("insert business plan", errors.New("duplicate title"))
		}
	}
	row := *rec
	row.ID = uuid.New()
	row.CreatedAt = f.tick()
	row.UpdatedAt = row.CreatedAt
	f.rows[row.ID] = row
	f.inserts++
	return &row, nil
}

func (f *fakePlanRepo) Overwrite(_ dbctx.Context, id uuid.UUID, rec *types.BusinessPlan) (*types.BusinessPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	old, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("business plan", id.String())
	}
	row := *rec
	row.ID = id
	row.CreatedAt = old.CreatedAt
	row.UpdatedAt = f.tick()
	f.rows[id] = row
	f.writes++
	return &row, nil
}

func (f *fakePlanRepo) Remove(_ dbctx.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeBus struct {
	events []types.PlanEvent
	err    error
}

func (b *fakeBus) Publish(_ context.Context, ev types.PlanEvent) error {
	b.events = append(b.events, ev)
	return b.err
}

func newTestService(t *testing.T) (BusinessPlanService, *fakePlanRepo, *fakeBus) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := newFakePlanRepo()
	bus := &fakeBus{}
	svc := NewBusinessPlanService(log, repo, bp.NewSanitizer(bp.PolicyScriptStrip), NewPlanNotifier(bus))
	return svc, repo, bus
}

func createInput() types.PlanInput {
	stage := types.StageIdea
	return types.PlanInput{
		OwnerID:     pointers.String("u1"),
		Title:       pointers.String("Shop"),
		Description: pointers.String("d"),
		Industry:    pointers.String("Retail"),
		Stage:       &stage,
		FundingGoal: pointers.Float64(1000),
	}
}

func TestCreateScoresSanitizedRecord(t *testing.T) {
	svc, repo, bus := newTestService(t)
	ctx := context.Background()

	in := createInput()
	in.Title = pointers.String("Shop<script>alert(1)</script>")
	in.RevenueStreams = &[]string{"  a  ", "", "  ", "b"}

	got, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Title != "Shop" {
		t.Fatalf("title: want=%q got=%q", "Shop", got.Title)
	}
	if len(got.RevenueStreams) != 2 || got.RevenueStreams[0] != "a" || got.RevenueStreams[1] != "b" {
		t.Fatalf("revenueStreams: %v", got.RevenueStreams)
	}
	// title, description, industry, stage and revenueStreams out of 38.
	if got.CompletionScore != 13 {
		t.Fatalf("completionScore: want=13 got=%d", got.CompletionScore)
	}
	if got.ID == uuid.Nil || got.CreatedAt.IsZero() {
		t.Fatalf("identity not assigned: %+v", got)
	}
	if repo.inserts != 1 {
		t.Fatalf("inserts: want=1 got=%d", repo.inserts)
	}
	if len(bus.events) != 1 || bus.events[0].Type != types.EventCreated || bus.events[0].PlanID != got.ID.String() || bus.events[0].Score != 13 {
		t.Fatalf("events: %+v", bus.events)
	}
}

func TestCreateMinimalPlanScoresEleven(t *testing.T) {
	svc, _, _ := newTestService(t)
	got, err := svc.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.CompletionScore != 11 {
		t.Fatalf("completionScore: want=11 got=%d", got.CompletionScore)
	}
}

func TestCreateValidationFailureDoesNotPersist(t *testing.T) {
	svc, repo, bus := newTestService(t)
	in := createInput()
	in.Title = pointers.String("")

	_, err := svc.Create(context.Background(), in)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("want title ValidationError, got %v", err)
	}
	if repo.inserts != 0 || len(bus.events) != 0 {
		t.Fatalf("nothing should be persisted or published: inserts=%d events=%d", repo.inserts, len(bus.events))
	}
}

func TestScriptOnlyRequiredFieldIsRejected(t *testing.T) {
	svc, repo, bus := newTestService(t)
	ctx := context.Background()

	in := createInput()
	in.Title = pointers.String("<script>alert(1)</script>")
	_, err := svc.Create(ctx, in)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("create: want title ValidationError, got %v", err)
	}
	if repo.inserts != 0 {
		t.Fatalf("create: nothing should be inserted, got %d", repo.inserts)
	}

	created, err := svc.Create(ctx, createInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	events := len(bus.events)
	_, err = svc.Update(ctx, created.ID.String(), types.PlanInput{Description: pointers.String("<script>x</script>")})
	if !errors.As(err, &ve) || ve.Field != "description" {
		t.Fatalf("update: want description ValidationError, got %v", err)
	}
	if repo.writes != 0 || len(bus.events) != events {
		t.Fatalf("update: nothing should be written or published: writes=%d events=%d", repo.writes, len(bus.events)-events)
	}
	stored, _ := svc.Get(ctx, created.ID.String())
	if stored.Description != created.Description {
		t.Fatalf("stored description changed to %q", stored.Description)
	}
}

func TestCreateIgnoresCallerScore(t *testing.T) {
	svc, _, _ := newTestService(t)
	in := createInput()
	got, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.CompletionScore != bp.Score(*got) {
		t.Fatalf("stored score %d does not match recomputed %d", got.CompletionScore, bp.Score(*got))
	}
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, createInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, createInput())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestUpdateMergesNestedFields(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	in := createInput()
	in.ModelCanvas = &types.ModelCanvasInput{KeyPartners: pointers.String("X"), KeyActivities: pointers.String("Y")}
	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID.String(), types.PlanInput{
		ModelCanvas: &types.ModelCanvasInput{KeyPartners: pointers.String("Z")},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ModelCanvas.KeyPartners != "Z" || updated.ModelCanvas.KeyActivities != "Y" {
		t.Fatalf("modelCanvas: %+v", updated.ModelCanvas)
	}
	if updated.Title != "Shop" || updated.Stage != types.StageIdea {
		t.Fatalf("unsupplied fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("timestamps: created=%v/%v updated=%v/%v", created.CreatedAt, created.UpdatedAt, updated.CreatedAt, updated.UpdatedAt)
	}
	if len(bus.events) != 2 || bus.events[1].Type != types.EventUpdated {
		t.Fatalf("events: %+v", bus.events)
	}
}

func TestUpdateRecomputesScore(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, createInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := svc.Update(ctx, created.ID.String(), types.PlanInput{
		Solution:   pointers.String("<script>x()</script>ovens"),
		Financials: &types.FinancialsInput{StartupCosts: pointers.Float64(500)},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Solution != "ovens" {
		t.Fatalf("solution not sanitized: %q", updated.Solution)
	}
	// six of 38 fields filled.
	if updated.CompletionScore != 16 {
		t.Fatalf("completionScore: want=16 got=%d", updated.CompletionScore)
	}
}

func TestUpdateMissingOrInvalid(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Update(ctx, uuid.NewString(), types.PlanInput{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("absent id: want ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, "not-a-uuid", types.PlanInput{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("malformed id: want ErrNotFound, got %v", err)
	}

	created, err := svc.Create(ctx, createInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	bad := types.Stage("scaleup")
	_, err = svc.Update(ctx, created.ID.String(), types.PlanInput{Stage: &bad})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad stage: want validation, got %v", err)
	}
	if repo.writes != 0 {
		t.Fatalf("rejected update was persisted")
	}
}

func TestDelete(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, uuid.NewString()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("delete absent: want ErrNotFound, got %v", err)
	}

	created, err := svc.Create(ctx, createInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := svc.Get(ctx, created.ID.String())
	if err != nil || got != nil {
		t.Fatalf("Get after delete: want nil,nil got %+v,%v", got, err)
	}
	last := bus.events[len(bus.events)-1]
	if last.Type != types.EventDeleted || last.OwnerID != "u1" || last.Score != 0 {
		t.Fatalf("delete event: %+v", last)
	}
}

func TestGet(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{uuid.NewString(), "garbage", ""} {
		got, err := svc.Get(ctx, id)
		if err != nil || got != nil {
			t.Fatalf("Get(%q): want nil,nil got %+v,%v", id, got, err)
		}
	}

	created, err := svc.Create(ctx, createInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(ctx, created.ID.String())
	if err != nil || got == nil || got.ID != created.ID {
		t.Fatalf("Get: got %+v,%v", got, err)
	}
}

func TestListByOwner(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two"} {
		in := createInput()
		in.Title = pointers.String(title)
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}
	plans, err := svc.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(plans) != 2 || plans[0].Title != "two" {
		t.Fatalf("ListByOwner: %+v", plans)
	}
}

func TestRepositoryFailureKeepsKind(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.err = apperr.NewRepository("insert business plan", errors.New("connection reset"))

	_, err := svc.Create(context.Background(), createInput())
	if apperr.KindOf(err) != apperr.KindRepository {
		t.Fatalf("want repository kind, got %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.NewString()); apperr.KindOf(err) != apperr.KindRepository {
		t.Fatalf("Get: want repository kind, got %v", err)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	svc, repo, bus := newTestService(t)
	bus.err = errors.New("redis down")

	got, err := svc.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("Create should succeed despite publish failure: %v", err)
	}
	if got == nil || repo.inserts != 1 {
		t.Fatalf("plan not stored")
	}
}
