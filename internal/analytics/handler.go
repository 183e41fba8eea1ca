package analytics

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stayfinder/booking-platform/pkg/common"
	"github.com/stayfinder/booking-platform/pkg/logger"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the admin analytics surface
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetDashboard returns the admin dashboard payload
func (h *Handler) GetDashboard(c *gin.Context) {
	payload, err := h.service.GetDashboardData(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("dashboard aggregation failed", zap.Error(err))
		common.AbortWithError(c, common.NewInternalServerError("failed to load dashboard data"))
		return
	}

	common.SuccessResponse(c, payload)
}

// GetReport returns the report payload for on-screen preview
func (h *Handler) GetReport(c *gin.Context) {
	reportType, ok := parseReportType(c.Param("type"))
	if !ok {
		common.AbortWithError(c, common.NewBadRequestError("unknown report type", nil))
		return
	}

	q, err := parseRangeQuery(c)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	payload, err := h.service.BuildReport(c.Request.Context(), reportType, q)
	if err != nil {
		h.reportError(c, err)
		return
	}

	common.SuccessResponse(c, payload)
}

// ExportReport builds the report and streams the rendered document
func (h *Handler) ExportReport(c *gin.Context) {
	reportType, ok := parseReportType(c.Param("type"))
	if !ok {
		common.AbortWithError(c, common.NewBadRequestError("unknown report type", nil))
		return
	}

	q, err := parseRangeQuery(c)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	doc, err := h.service.ExportReport(c.Request.Context(), reportType, q)
	if err != nil {
		h.reportError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+string(reportType)+"-report.pdf")
	c.Data(http.StatusOK, "application/pdf", doc)
}

// RegisterRoutes registers analytics routes on the admin group
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.GetDashboard)
	admin.GET("/reports/:type", h.GetReport)
	admin.POST("/reports/:type/export", h.ExportReport)
}

func (h *Handler) reportError(c *gin.Context, err error) {
	var rangeErr *InvalidRangeError
	if errors.As(err, &rangeErr) {
		common.AbortWithError(c, common.NewBadRequestError(rangeErr.Error(), err))
		return
	}

	logger.WithContext(c.Request.Context()).Error("report generation failed", zap.Error(err))
	common.AbortWithError(c, common.NewInternalServerError("failed to generate report"))
}

func parseReportType(raw string) (ReportType, bool) {
	switch ReportType(raw) {
	case ReportFinancial, ReportBookings, ReportHosts, ReportListings:
		return ReportType(raw), true
	}
	return "", false
}

// parseRangeQuery reads ?range=<preset>&start=YYYY-MM-DD&end=YYYY-MM-DD.
// start and end are only consulted for the custom preset.
func parseRangeQuery(c *gin.Context) (RangeQuery, error) {
	preset := RangePreset(c.DefaultQuery("range", string(PresetLast30Days)))

	q := RangeQuery{Preset: preset}
	if preset != PresetCustom {
		return q, nil
	}

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return RangeQuery{}, common.NewBadRequestError("invalid start date, expected YYYY-MM-DD", err)
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		return RangeQuery{}, common.NewBadRequestError("invalid end date, expected YYYY-MM-DD", err)
	}

	q.Start = start
	q.End = end
	return q, nil
}
