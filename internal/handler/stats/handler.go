package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecowatch/notice-api/internal/handler"
	noticeHandler "github.com/ecowatch/notice-api/internal/handler/notice"
	noticeService "github.com/ecowatch/notice-api/internal/service/notice"
)

type Handler struct {
	service noticeService.Service
}

func NewHandler(service noticeService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("", h.Dashboard)
		stats.GET("/tags", h.Tags)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Stats()))
}

// Tags returns the tag frequency over the current filtered view; with
// no criteria it covers the whole collection.
func (h *Handler) Tags(c *gin.Context) {
	criteria := noticeHandler.CriteriaFromQuery(c)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.TagFrequency(criteria)))
}
