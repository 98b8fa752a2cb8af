package notice

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecowatch/notice-api/internal/handler"
	"github.com/ecowatch/notice-api/internal/model"
	noticeService "github.com/ecowatch/notice-api/internal/service/notice"
	"github.com/ecowatch/notice-api/internal/store"
	apperrors "github.com/ecowatch/notice-api/pkg/errors"
)

type Handler struct {
	service noticeService.Service
}

func NewHandler(service noticeService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notices := r.Group("/notices")
	{
		notices.GET("", h.ListNotices)
		notices.GET("/timeline", h.Timeline)
		notices.GET("/departments", h.Departments)
		notices.GET("/deadlines", h.Deadlines)
		notices.GET("/favorites", h.Favorites)
		notices.GET("/:id", h.GetNotice)
		notices.POST("/:id/favorite", h.ToggleFavorite)
		notices.PUT("/:id/notes", h.SetNote)
		notices.POST("/:id/tags", h.AddTag)
		notices.DELETE("/:id/tags/:tag", h.RemoveTag)
	}
}

type setNoteRequest struct {
	Notes string `json:"notes"`
}

type addTagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// CriteriaFromQuery maps the dashboard's filter controls onto engine
// criteria. Set-valued params arrive comma separated; absent params
// leave their criterion inactive.
func CriteriaFromQuery(c *gin.Context) model.FilterCriteria {
	criteria := model.FilterCriteria{
		SearchQuery: c.Query("q"),
		DateRange: model.DateRange{
			Start: c.Query("from"),
			End:   c.Query("to"),
		},
	}
	if depts := c.Query("departments"); depts != "" {
		criteria.SelectedDepartments = strings.Split(depts, ",")
	}
	if cats := c.Query("categories"); cats != "" {
		for _, cat := range strings.Split(cats, ",") {
			criteria.SelectedCategories = append(criteria.SelectedCategories, model.Category(cat))
		}
	}
	criteria.FavoritesOnly, _ = strconv.ParseBool(c.Query("favorites_only"))
	return criteria
}

func (h *Handler) ListNotices(c *gin.Context) {
	notices := h.service.List(CriteriaFromQuery(c))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"total":      len(notices),
		"lastUpdate": h.service.LastUpdate(),
		"notices":    notices,
	}))
}

func (h *Handler) GetNotice(c *gin.Context) {
	n, err := h.service.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) Timeline(c *gin.Context) {
	groups := h.service.Timeline(CriteriaFromQuery(c))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(groups))
}

func (h *Handler) Departments(c *gin.Context) {
	groups := h.service.Departments(CriteriaFromQuery(c))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(groups))
}

func (h *Handler) Deadlines(c *gin.Context) {
	window := 0
	if raw := c.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondError(c, apperrors.BadRequest("invalid deadline window", err))
			return
		}
		window = parsed
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.UpcomingDeadlines(window)))
}

func (h *Handler) Favorites(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Favorites()))
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	n, err := h.service.ToggleFavorite(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) SetNote(c *gin.Context) {
	var req setNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}
	n, err := h.service.SetNote(c.Param("id"), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) AddTag(c *gin.Context) {
	var req addTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.BadRequest("invalid request body", err))
		return
	}
	if strings.TrimSpace(req.Tag) == "" {
		h.respondError(c, apperrors.BadRequest("tag must not be blank", nil))
		return
	}
	n, err := h.service.AddTag(c.Param("id"), req.Tag)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) RemoveTag(c *gin.Context) {
	n, err := h.service.RemoveTag(c.Param("id"), c.Param("tag"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		err = apperrors.NotFound("notification", err)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	c.JSON(statusFor(appErr.Code), handler.NewErrorResponse(appErr.Message))
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrBadRequest, apperrors.ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
