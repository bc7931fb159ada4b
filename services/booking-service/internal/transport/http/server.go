package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/correlation"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/service"
)

// UserHeader carries the authenticated user's id, set by the gateway after
// JWT validation.
const UserHeader = "x-user-id"

type Handler struct {
	svc *service.BookingSvc
	log *zap.Logger
}

func NewRouter(svc *service.BookingSvc, log *zap.Logger) *gin.Engine {
	h := &Handler{svc: svc, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), correlation.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "booking-service"})
	})

	r.POST("/bookings", h.create)
	r.GET("/bookings", h.list)
	r.GET("/bookings/pending", h.listPending)
	r.GET("/bookings/:id", h.get)
	r.PATCH("/bookings/:id/approve", h.approve)
	r.PATCH("/bookings/:id/reject", h.reject)

	return r
}

// POST /bookings
func (h *Handler) create(c *gin.Context) {
	var in struct {
		PropertyID int64 `json:"property_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tenantID := c.GetHeader(UserHeader)
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserHeader})
		return
	}

	b, err := h.svc.Create(c.Request.Context(), in.PropertyID, tenantID,
		correlation.FromContext(c.Request.Context()))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PATCH /bookings/:id/approve
func (h *Handler) approve(c *gin.Context) {
	adminID := c.GetHeader(UserHeader)
	if adminID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserHeader})
		return
	}

	b, err := h.svc.Approve(c.Request.Context(), c.Param("id"), adminID,
		correlation.FromContext(c.Request.Context()))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PATCH /bookings/:id/reject
func (h *Handler) reject(c *gin.Context) {
	var in struct {
		Reason string `json:"reason"`
	}
	// body is optional; a bare reject carries no reason
	_ = c.ShouldBindJSON(&in)

	b, err := h.svc.Reject(c.Request.Context(), c.Param("id"), in.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /bookings/:id
func (h *Handler) get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /bookings
func (h *Handler) list(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /bookings/pending
func (h *Handler) listPending(c *gin.Context) {
	out, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyDecided), errors.Is(err, service.ErrDecisionBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error("booking request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
