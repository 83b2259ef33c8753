package booking

import (
	"errors"
	"net/http"
	"strconv"

	"servicehub/internal/domain"
	"servicehub/internal/middleware"
	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected, provider *gin.RouterGroup) {
	protected.POST("/bookings", h.Create)
	protected.GET("/bookings", h.ListMine)
	protected.GET("/bookings/:id", h.Get)
	protected.PATCH("/bookings/:id/status", h.UpdateStatus)

	provider.GET("/provider/bookings", h.ListForProvider)
	provider.GET("/provider/earnings", h.Earnings)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	userID, _ := middleware.UserID(c)
	b, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid booking data")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "provider not found")
		case errors.Is(err, ErrProviderNotVerified):
			response.Error(c, http.StatusUnprocessableEntity, "PROVIDER_NOT_VERIFIED", "provider is not verified")
		case errors.Is(err, ErrNotAvailable):
			response.Error(c, http.StatusUnprocessableEntity, "NOT_AVAILABLE", "provider is not available at the requested time")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create booking")
		}
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid booking id")
		return
	}

	userID, _ := middleware.UserID(c)
	b, err := h.svc.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "not a participant in this booking")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load booking")
		}
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	items, err := h.svc.ListForCustomer(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListForProvider(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	items, err := h.svc.ListForProvider(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "no provider profile")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	userID, _ := middleware.UserID(c)
	b, err := h.svc.UpdateStatus(c.Request.Context(), id, userID, domain.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown booking status")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "you may not perform this transition")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "status transition not allowed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update booking")
		}
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Earnings(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	summary, err := h.svc.Earnings(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "no provider profile")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load earnings")
		return
	}
	response.Success(c, http.StatusOK, summary)
}
