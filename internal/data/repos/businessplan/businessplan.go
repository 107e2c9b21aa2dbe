package businessplan

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/cemse-backend/internal/domain"
	"github.com/yungbote/cemse-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/cemse-backend/internal/pkg/errors"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

type PlanRepo interface {
	// FindByID returns (nil, nil) when no plan has the id.
	FindByID(dbc dbctx.Context, id uuid.UUID) (*types.BusinessPlan, error)
	ListByOwner(dbc dbctx.Context, ownerID string) ([]*types.BusinessPlan, error)
	Insert(dbc dbctx.Context, rec *types.BusinessPlan) (*types.BusinessPlan, error)
	Overwrite(dbc dbctx.Context, id uuid.UUID, rec *types.BusinessPlan) (*types.BusinessPlan, error)
	Remove(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type planRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo {
	repoLog := baseLog.With("repo", "PlanRepo")
	return &planRepo{db: db, log: repoLog, now: func() time.Time { return time.Now().UTC() }}
}

func (r *planRepo) tx(dbc dbctx.Context) *gorm.DB {
	// gorm stamps updated_at itself on Updates; share the repo clock with it.
	return dbc.Conn(r.db).Session(&gorm.Session{NowFunc: r.now})
}

func (r *planRepo) FindByID(dbc dbctx.Context, id uuid.UUID) (*types.BusinessPlan, error) {
	var out types.BusinessPlan
	err := r.tx(dbc).Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("find business plan", err)
	}
	return &out, nil
}

func (r *planRepo) ListByOwner(dbc dbctx.Context, ownerID string) ([]*types.BusinessPlan, error) {
	var out []*types.BusinessPlan
	if err := r.tx(dbc).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, translate("list business plans", err)
	}
	if out == nil {
		out = []*types.BusinessPlan{}
	}
	return out, nil
}

// Insert stores a copy of rec with a fresh id and timestamps; rec is left untouched.
func (r *planRepo) Insert(dbc dbctx.Context, rec *types.BusinessPlan) (*types.BusinessPlan, error) {
	if rec == nil {
		return nil, apperr.NewRepository("insert business plan", errors.New("nil record"))
	}
	row := *rec
	now := r.now()
	row.ID = uuid.New()
	row.CreatedAt = now
	row.UpdatedAt = now
	if err := r.tx(dbc).Create(&row).Error; err != nil {
		return nil, translate("insert business plan", err)
	}
	r.log.Debug("Business plan inserted", "plan_id", row.ID, "owner_id", row.OwnerID)
	return &row, nil
}

// Overwrite replaces every column except id and created_at, then reloads the row.
func (r *planRepo) Overwrite(dbc dbctx.Context, id uuid.UUID, rec *types.BusinessPlan) (*types.BusinessPlan, error) {
	if rec == nil {
		return nil, apperr.NewRepository("overwrite business plan", errors.New("nil record"))
	}
	row := *rec
	row.ID = id
	row.UpdatedAt = r.now()

	res := r.tx(dbc).
		Model(&types.BusinessPlan{}).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(&row)
	if res.Error != nil {
		return nil, translate("overwrite business plan", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("business plan", id.String())
	}

	out, err := r.FindByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperr.NotFound("business plan", id.String())
	}
	return out, nil
}

func (r *planRepo) Remove(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	res := r.tx(dbc).Where("id = ?", id).Delete(&types.BusinessPlan{})
	if res.Error != nil {
		return false, translate("remove business plan", res.Error)
	}
	return res.RowsAffected > 0, nil
}
