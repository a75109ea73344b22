package attendance

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

// @Summary      Check a member in
// @Description  Requires an active member with an active subscription and no open visit
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body attendance.CheckInRequest true "Check-in payload"
// @Success      201 {object} attendance.Attendance
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /attendance/check-in [post]
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	rec, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to check in")
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// @Summary      Check a member out
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        attendanceID path int true "Attendance ID"
// @Param        request body attendance.CheckOutRequest false "Optional notes"
// @Success      200 {object} attendance.Attendance
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /attendance/{attendanceID}/check-out [put]
func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := pathID(c, "attendanceID")
	if !ok {
		return
	}

	var req CheckOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
			return
		}
	}

	rec, err := h.service.CheckOut(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to check out")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// @Summary      List attendance records
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        member_id query int false "Filter by member"
// @Param        start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param        end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param        only_active query bool false "Open visits only"
// @Param        skip query int false "Offset"
// @Param        limit query int false "Page size"
// @Success      200 {array} attendance.Attendance
// @Failure      400 {object} api.ErrorResponse
// @Router       /attendance [get]
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
		MemberID:   intQuery(c, "member_id", 0),
		StartDate:  startDate,
		EndDate:    endDate,
		OnlyActive: c.Query("only_active") == "true",
		Skip:       intQuery(c, "skip", 0),
		Limit:      intQuery(c, "limit", 0),
	}

	recs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		logger.Errorf("Failed to list attendance: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to list attendance"})
		return
	}

	c.JSON(http.StatusOK, recs)
}

// @Summary      Members currently in the gym
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} attendance.AttendanceWithMember
// @Failure      500 {object} api.ErrorResponse
// @Router       /attendance/current/in-gym [get]
func (h *Handler) CurrentInGym(c *gin.Context) {
	recs, err := h.service.CurrentInGym(c.Request.Context())
	if err != nil {
		logger.Errorf("Failed to list members in gym: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to list members in gym"})
		return
	}

	c.JSON(http.StatusOK, recs)
}

// @Summary      Attendance history for a member
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        days query int false "Lookback window in days (default 30)"
// @Success      200 {array} attendance.Attendance
// @Failure      404 {object} api.ErrorResponse
// @Router       /attendance/member/{memberID} [get]
func (h *Handler) MemberHistory(c *gin.Context) {
	memberID, ok := pathID(c, "memberID")
	if !ok {
		return
	}

	recs, err := h.service.MemberHistory(c.Request.Context(), memberID, intQuery(c, "days", 0))
	if err != nil {
		h.respondError(c, err, "Failed to fetch attendance history")
		return
	}

	c.JSON(http.StatusOK, recs)
}

// @Summary      Daily attendance statistics
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        target_date query string false "Target date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} attendance.DailyStats
// @Failure      400 {object} api.ErrorResponse
// @Router       /attendance/stats/daily [get]
func (h *Handler) DailyStats(c *gin.Context) {
	targetDate, ok := dateQuery(c, "target_date")
	if !ok {
		return
	}

	stats, err := h.service.DailyStats(c.Request.Context(), targetDate)
	if err != nil {
		logger.Errorf("Failed to compute daily stats: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to compute daily stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary      Delete an attendance record
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        attendanceID path int true "Attendance ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /attendance/{attendanceID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "attendanceID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrAttendanceNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Attendance record not found"})
			return
		}
		logger.Errorf("Failed to delete attendance %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to delete attendance record"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Attendance record deleted"})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrAttendanceNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Attendance record not found"})
	case errors.Is(err, ErrMemberNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Member not found"})
	case errors.Is(err, ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "Member is already checked in"})
	case errors.Is(err, ErrAlreadyCheckedOut):
		c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "Attendance record is already closed"})
	case errors.Is(err, ErrMemberInactive),
		errors.Is(err, ErrNoActiveSubscription):
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
