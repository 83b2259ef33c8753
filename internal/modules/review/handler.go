package review

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/providers/:id/reviews", h.ListByProvider)

	protected.POST("/reviews", h.Create)
	protected.GET("/bookings/:id/review", h.GetByBooking)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	userID, _ := middleware.UserID(c)
	rv, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "rating must be between 1 and 5")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "only the booking's customer may review it")
		case errors.Is(err, ErrNotCompleted):
			response.Error(c, http.StatusConflict, "NOT_COMPLETED", "booking is not completed yet")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "this booking already has a review")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create review")
		}
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) GetByBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid booking id")
		return
	}

	userID, _ := middleware.UserID(c)
	rv, err := h.svc.GetByBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "not your booking")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load review")
		}
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) ListByProvider(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || providerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid provider id")
		return
	}

	reviews, err := h.svc.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list reviews")
		return
	}
	response.Success(c, http.StatusOK, reviews)
}
