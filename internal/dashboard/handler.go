package dashboard

import (
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

// @Summary      Dashboard summary
// @Description  Gym activity, income and subscription snapshot for the admin dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        expiring_days query int false "Expiry window in days (default 7)"
// @Param        recent_limit query int false "Recent item count (default 5)"
// @Param        stats_days query int false "Activity window in days (default 7)"
// @Success      200 {object} dashboard.Summary
// @Failure      500 {object} api.ErrorResponse
// @Router       /dashboard/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(),
		intQuery(c, "expiring_days", 0),
		intQuery(c, "recent_limit", 0),
		intQuery(c, "stats_days", 0))
	if err != nil {
		logger.Errorf("Failed to build dashboard summary: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to build dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
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
