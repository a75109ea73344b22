package plan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/myos14/gymAdmin/internal/api"
	"github.com/myos14/gymAdmin/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create a plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body plan.CreatePlanRequest true "Plan payload"
// @Success      201 {object} plan.Plan
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /plans [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		case errors.Is(err, ErrNameExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "A plan with that name already exists"})
		default:
			logger.Errorf("Failed to create plan: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to create plan"})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      List plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        active_only query bool false "Only active plans (default true)"
// @Param        skip query int false "Offset"
// @Param        limit query int false "Page size"
// @Success      200 {array} plan.Plan
// @Failure      500 {object} api.ErrorResponse
// @Router       /plans [get]
func (h *Handler) List(c *gin.Context) {
	activeOnly := true
	if raw := c.Query("active_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err == nil {
			activeOnly = parsed
		}
	}

	plans, err := h.service.List(c.Request.Context(), activeOnly, intQuery(c, "skip", 0), intQuery(c, "limit", 0))
	if err != nil {
		logger.Errorf("Failed to list plans: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to list plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// @Summary      Get a plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        planID path int true "Plan ID"
// @Success      200 {object} plan.Plan
// @Failure      404 {object} api.ErrorResponse
// @Router       /plans/{planID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "planID")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Plan not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// @Summary      Update a plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        planID path int true "Plan ID"
// @Param        request body plan.UpdatePlanRequest true "Fields to update"
// @Success      200 {object} plan.Plan
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /plans/{planID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "planID")
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Plan not found"})
		case errors.Is(err, ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		case errors.Is(err, ErrNameExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "A plan with that name already exists"})
		default:
			logger.Errorf("Failed to update plan %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to update plan"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// @Summary      Deactivate a plan
// @Description  Soft delete; historical subscriptions keep the plan reference
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        planID path int true "Plan ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /plans/{planID} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "planID")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Plan not found"})
			return
		}
		logger.Errorf("Failed to deactivate plan %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to deactivate plan"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Plan deactivated"})
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid " + name})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
