package subscription

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

// @Summary      Create a subscription
// @Description  Fails with 409 when the member already has an active subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body subscription.CreateSubscriptionRequest true "Subscription payload"
// @Success      201 {object} subscription.Subscription
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	sub, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create subscription")
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// @Summary      Renew a subscription
// @Description  Starts the day after the current end date, or today if already expired
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        subscriptionID path int true "Subscription ID"
// @Param        request body subscription.RenewSubscriptionRequest true "Renewal payload"
// @Success      201 {object} subscription.Subscription
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /subscriptions/{subscriptionID}/renew [post]
func (h *Handler) Renew(c *gin.Context) {
	id, ok := pathID(c, "subscriptionID")
	if !ok {
		return
	}

	var req RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	sub, err := h.service.Renew(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to renew subscription")
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// @Summary      List subscriptions
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "active, expired or cancelled"
// @Param        member_id query int false "Filter by member"
// @Param        search query string false "Member name substring"
// @Param        skip query int false "Offset"
// @Param        limit query int false "Page size"
// @Success      200 {array} subscription.SubscriptionWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /subscriptions [get]
func (h *Handler) List(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", string(StatusActive), string(StatusExpired), string(StatusCancelled):
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid status filter"})
		return
	}

	filter := ListFilter{
		Status:   status,
		MemberID: intQuery(c, "member_id", 0),
		Search:   c.Query("search"),
		Skip:     intQuery(c, "skip", 0),
		Limit:    intQuery(c, "limit", 0),
	}

	subs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		logger.Errorf("Failed to list subscriptions: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to list subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// @Summary      Get a subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        subscriptionID path int true "Subscription ID"
// @Success      200 {object} subscription.Subscription
// @Failure      404 {object} api.ErrorResponse
// @Router       /subscriptions/{subscriptionID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "subscriptionID")
	if !ok {
		return
	}

	sub, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch subscription")
		return
	}

	c.JSON(http.StatusOK, sub)
}

// @Summary      Member's active subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} subscription.Subscription
// @Failure      404 {object} api.ErrorResponse
// @Router       /subscriptions/member/{memberID}/active [get]
func (h *Handler) GetActiveByMember(c *gin.Context) {
	memberID, ok := pathID(c, "memberID")
	if !ok {
		return
	}

	sub, err := h.service.GetActiveByMember(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Member has no active subscription"})
			return
		}
		logger.Errorf("Failed to fetch active subscription for member %d: %v", memberID, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to fetch subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// @Summary      Update a subscription
// @Description  Payment fields and notes; cancel via {"status":"cancelled"}
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        subscriptionID path int true "Subscription ID"
// @Param        request body subscription.UpdateSubscriptionRequest true "Fields to update"
// @Success      200 {object} subscription.Subscription
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /subscriptions/{subscriptionID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "subscriptionID")
	if !ok {
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	sub, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to update subscription")
		return
	}

	c.JSON(http.StatusOK, sub)
}

// @Summary      Delete a subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        subscriptionID path int true "Subscription ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /subscriptions/{subscriptionID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "subscriptionID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Subscription not found"})
			return
		}
		logger.Errorf("Failed to delete subscription %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to delete subscription"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Subscription deleted"})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Subscription not found"})
	case errors.Is(err, ErrMemberNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Member not found"})
	case errors.Is(err, ErrPlanNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Plan not found"})
	case errors.Is(err, ErrActiveSubscriptionExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "Member already has an active subscription"})
	case errors.Is(err, ErrNotActive):
		c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "Subscription is not active"})
	case errors.Is(err, ErrPermanentRenewal):
		c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "Permanent subscriptions cannot be renewed"})
	case errors.Is(err, ErrPlanInactive),
		errors.Is(err, ErrInvalidStartDate),
		errors.Is(err, ErrStartDateInPast),
		errors.Is(err, ErrPaidAmountRequired),
		errors.Is(err, ErrInvalidStatusChange):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
	default:
		logger.Errorf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: fallback})
	}
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
