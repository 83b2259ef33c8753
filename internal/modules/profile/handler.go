package profile

import (
	"errors"
	"net/http"

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
	protected.GET("/profile", h.Get)
	protected.PUT("/profile", h.Update)
	protected.GET("/profile/roles", h.Roles)

	provider.POST("/provider/online", h.SetOnline)
}

func (h *Handler) Get(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	p, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	userID, _ := middleware.UserID(c)
	p, err := h.svc.Update(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "full name is required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "profile not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update profile")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Roles(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	resp, err := h.svc.Roles(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to resolve roles")
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) SetOnline(c *gin.Context) {
	var req struct {
		Online bool `json:"online"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.svc.SetOnline(c.Request.Context(), userID, req.Online); err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "no provider profile")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"online": req.Online})
}
