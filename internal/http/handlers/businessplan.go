package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/cemse-backend/internal/domain"
	"github.com/yungbote/cemse-backend/internal/http/response"
	bp "github.com/yungbote/cemse-backend/internal/modules/businessplan"
	"github.com/yungbote/cemse-backend/internal/platform/apierr"
	"github.com/yungbote/cemse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
	"github.com/yungbote/cemse-backend/internal/services"
)

type BusinessPlanHandler struct {
	log     *logger.Logger
	service services.BusinessPlanService
}

func NewBusinessPlanHandler(log *logger.Logger, service services.BusinessPlanService) *BusinessPlanHandler {
	return &BusinessPlanHandler{log: log.With("handler", "BusinessPlanHandler"), service: service}
}

type planResponse struct {
	BusinessPlan *types.BusinessPlan `json:"business_plan"`
	Completion   bp.CompletionReport `json:"completion"`
}

func newPlanResponse(p *types.BusinessPlan) planResponse {
	return planResponse{BusinessPlan: p, Completion: bp.Report(*p)}
}

// POST /api/business-plans
func (h *BusinessPlanHandler) Create(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	var in types.PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return
	}
	in.OwnerID = &owner

	plan, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	response.RespondCreated(c, newPlanResponse(plan))
}

// GET /api/business-plans
func (h *BusinessPlanHandler) List(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	plans, err := h.service.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	response.RespondOK(c, gin.H{"business_plans": plans})
}

// GET /api/business-plans/:id
func (h *BusinessPlanHandler) Get(c *gin.Context) {
	plan, ok := h.ownedPlan(c)
	if !ok {
		return
	}
	response.RespondOK(c, newPlanResponse(plan))
}

// PATCH /api/business-plans/:id
func (h *BusinessPlanHandler) Update(c *gin.Context) {
	plan, ok := h.ownedPlan(c)
	if !ok {
		return
	}
	var in types.PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondAPIError(c, apierr.BadRequest(err))
		return
	}
	// Ownership is fixed at creation.
	in.OwnerID = nil

	updated, err := h.service.Update(c.Request.Context(), plan.ID.String(), in)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	response.RespondOK(c, newPlanResponse(updated))
}

// DELETE /api/business-plans/:id
func (h *BusinessPlanHandler) Delete(c *gin.Context) {
	plan, ok := h.ownedPlan(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), plan.ID.String()); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BusinessPlanHandler) owner(c *gin.Context) (string, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		response.RespondAPIError(c, apierr.Unauthorized())
		return "", false
	}
	return rd.UserID, true
}

// ownedPlan loads :id and hides plans of other owners behind a 404.
func (h *BusinessPlanHandler) ownedPlan(c *gin.Context) (*types.BusinessPlan, bool) {
	owner, ok := h.owner(c)
	if !ok {
		return nil, false
	}
	plan, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return nil, false
	}
	if plan == nil || plan.OwnerID != owner {
		response.RespondAPIError(c, apierr.NotFound("business plan"))
		return nil, false
	}
	return plan, true
}

func (h *BusinessPlanHandler) fail(c *gin.Context, op string, err error) {
	apiErr := response.FromDomain(err)
	fields := append(ctxutil.LogFields(c.Request.Context()), "op", op, "status", apiErr.Status, "error", err)
	if apiErr.Status >= http.StatusInternalServerError {
		h.log.Error("Business plan request failed", fields...)
	} else {
		h.log.Debug("Business plan request rejected", fields...)
	}
	_ = c.Error(err)
	response.RespondAPIError(c, apiErr)
}
