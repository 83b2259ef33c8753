package directory

import (
	"errors"
	"net/http"
	"strconv"

	"servicehub/internal/pkg/response"
	"servicehub/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/providers", h.ListProviders)
	public.GET("/providers/:id", h.GetProvider)
	public.GET("/categories", h.ListCategories)
}

func (h *Handler) ListProviders(c *gin.Context) {
	var f repository.ListFilter
	if v := c.Query("category_id"); v != "" {
		f.CategoryID, _ = strconv.ParseInt(v, 10, 64)
	}
	f.Location = c.Query("location")
	if v := c.Query("min_rating"); v != "" {
		f.MinRating, _ = strconv.ParseFloat(v, 64)
	}
	f.OnlineOnly = c.Query("online_only") == "true"

	providers, err := h.svc.ListProviders(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list providers")
		return
	}
	response.Success(c, http.StatusOK, providers)
}

func (h *Handler) GetProvider(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid provider id")
		return
	}

	p, reviews, err := h.svc.GetProvider(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotVerified):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "provider not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load provider")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": p, "reviews": reviews})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}
