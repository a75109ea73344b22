package payment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// @Summary      Record a payment
// @Description  Updates the subscription's amount paid and payment status
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body payment.CreatePaymentRequest true "Payment payload"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /payments [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        member_id query int false "Filter by member"
// @Param        subscription_id query int false "Filter by subscription"
// @Param        payment_method query string false "cash, card or transfer"
// @Param        start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param        skip query int false "Offset"
// @Param        limit query int false "Page size"
// @Success      200 {array} payment.PaymentWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Router       /payments [get]
func (h *Handler) List(c *gin.Context) {
	startDate, ok := dateQuery(c, "start_date")
	if !ok {
		return
	}
	endDate, ok := dateQuery(c, "end_date")
	if !ok {
		return
	}

	filter := ListFilter{
		MemberID:       intQuery(c, "member_id", 0),
		SubscriptionID: intQuery(c, "subscription_id", 0),
		PaymentMethod:  c.Query("payment_method"),
		StartDate:      startDate,
		EndDate:        endDate,
		Skip:           intQuery(c, "skip", 0),
		Limit:          intQuery(c, "limit", 0),
	}

	payments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		logger.Errorf("Failed to list payments: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        paymentID path int true "Payment ID"
// @Success      200 {object} payment.PaymentWithDetails
// @Failure      404 {object} api.ErrorResponse
// @Router       /payments/{paymentID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "paymentID")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch payment")
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Payment not found"})
	case errors.Is(err, ErrMemberNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Member not found"})
	case errors.Is(err, ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Subscription not found"})
	case errors.Is(err, ErrSubscriptionMismatch),
		errors.Is(err, ErrInvalidPaymentDate):
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

func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid " + name + ", expected YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}
