package report

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecowatch/notice-api/internal/export"
	"github.com/ecowatch/notice-api/internal/handler"
	noticeHandler "github.com/ecowatch/notice-api/internal/handler/notice"
	noticeService "github.com/ecowatch/notice-api/internal/service/notice"
)

const (
	weeklyWindowDays  = 7
	monthlyWindowDays = 30
)

type Handler struct {
	service noticeService.Service
	now     func() time.Time
}

func NewHandler(service noticeService.Service, now func() time.Time) *Handler {
	return &Handler{service: service, now: now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("", h.Custom)
		reports.GET("/weekly", h.Weekly)
		reports.GET("/monthly", h.Monthly)
		reports.GET("/weekly/csv", h.WeeklyCSV)
		reports.GET("/monthly/csv", h.MonthlyCSV)
	}
	r.GET("/export/csv", h.ExportCSV)
}

func (h *Handler) Weekly(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Report(weeklyWindowDays)))
}

func (h *Handler) Monthly(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Report(monthlyWindowDays)))
}

// Custom builds a report over an arbitrary lookback window.
func (h *Handler) Custom(c *gin.Context) {
	window, err := strconv.Atoi(c.DefaultQuery("window", strconv.Itoa(weeklyWindowDays)))
	if err != nil || window < 0 {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid report window"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Report(window)))
}

func (h *Handler) WeeklyCSV(c *gin.Context) {
	h.reportCSV(c, weeklyWindowDays, "环保科技周报")
}

func (h *Handler) MonthlyCSV(c *gin.Context) {
	h.reportCSV(c, monthlyWindowDays, "环保科技月报")
}

// ExportCSV downloads the currently filtered view with the full column
// set; the filter criteria arrive as the usual query params.
func (h *Handler) ExportCSV(c *gin.Context) {
	notices := h.service.List(noticeHandler.CriteriaFromQuery(c))
	h.sendCSV(c, export.Filename("环保科技通知", h.now()))
	if err := export.WriteCSV(c.Writer, notices); err != nil {
		c.Error(err)
	}
}

func (h *Handler) reportCSV(c *gin.Context, windowDays int, prefix string) {
	r := h.service.Report(windowDays)
	h.sendCSV(c, export.Filename(prefix, h.now()))
	if err := export.WriteReportCSV(c.Writer, r.Notifications); err != nil {
		c.Error(err)
	}
}

func (h *Handler) sendCSV(c *gin.Context, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
}
