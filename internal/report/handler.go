package report

import (
	"errors"
	"net/http"

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

// @Summary      Period report
// @Description  Income, member growth, attendance and retention for the period
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period query string true "week, month or year"
// @Success      200 {object} report.Summary
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /reports/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	period := Period(c.DefaultQuery("period", string(PeriodMonth)))

	summary, err := h.service.Summary(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
			return
		}
		logger.Errorf("Failed to build period report: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary      Monthly comparison
// @Description  Income, new members and visits per month for the last six months
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} report.MonthlyComparison
// @Failure      500 {object} api.ErrorResponse
// @Router       /reports/monthly-comparison [get]
func (h *Handler) MonthlyComparison(c *gin.Context) {
	comparison, err := h.service.MonthlyComparison(c.Request.Context())
	if err != nil {
		logger.Errorf("Failed to build monthly comparison: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, comparison)
}
