package member

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

// @Summary      Register a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.CreateMemberRequest true "Member payload"
// @Success      201 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /members [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPhone), errors.Is(err, ErrInvalidDateOfBirth):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "Email already registered"})
		default:
			logger.Errorf("Failed to create member: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to create member"})
		}
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary      List members
// @Description  Paginated listing with case/accent-insensitive search
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Name, email or phone substring"
// @Param        is_active query bool false "Filter by active flag"
// @Param        skip query int false "Offset"
// @Param        limit query int false "Page size"
// @Success      200 {object} member.ListResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [get]
func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Search: c.Query("search"),
		Skip:   intQuery(c, "skip", 0),
		Limit:  intQuery(c, "limit", 0),
	}

	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid is_active value"})
			return
		}
		filter.ActiveOnly = &active
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		logger.Errorf("Failed to list members: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to list members"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} member.Member
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "memberID")
	if !ok {
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Member not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.UpdateMemberRequest true "Fields to update"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /members/{memberID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "memberID")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Member not found"})
		case errors.Is(err, ErrInvalidPhone), errors.Is(err, ErrInvalidDateOfBirth):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: err.Error()})
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Detail: "Email already registered"})
		default:
			logger.Errorf("Failed to update member %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to update member"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Toggle a member's active flag
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} member.Member
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID}/toggle-status [patch]
func (h *Handler) ToggleActive(c *gin.Context) {
	id, ok := pathID(c, "memberID")
	if !ok {
		return
	}

	m, err := h.service.ToggleActive(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Member not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Delete a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "memberID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Detail: "Member not found"})
			return
		}
		logger.Errorf("Failed to delete member %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "Failed to delete member"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deleted"})
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
