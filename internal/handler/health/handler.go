package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	noticeService "github.com/ecowatch/notice-api/internal/service/notice"
)

type Handler struct {
	service noticeService.Service
}

func NewHandler(service noticeService.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// ReadinessCheck reports DOWN until the feed has been loaded into the
// store; an empty collection means the dashboard has nothing to serve.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.service.Count() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"reason": "notice feed not loaded",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "UP",
		"notices":     h.service.Count(),
		"last_update": h.service.LastUpdate(),
	})
}
