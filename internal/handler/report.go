package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/report"
	"github.com/RanaNomiRana/backend-afa/internal/service"
)

type ReportHandler interface {
	GetComprehensiveReport(c *gin.Context)
	ExportComprehensiveReport(c *gin.Context)
	GetShortReport(c *gin.Context)
	SubmitShortReport(c *gin.Context)
	ListReports(c *gin.Context)
}

type reportHandler struct {
	deviceScope
	reports service.ReportService
}

func NewReportHandler(ingest service.IngestService, reports service.ReportService, stores StoreOpener, logger *zap.Logger) ReportHandler {
	return &reportHandler{
		deviceScope: deviceScope{ingest: ingest, stores: stores, logger: logger},
		reports:     reports,
	}
}

// GetComprehensiveReport handles GET /comprehensive-report
func (h *reportHandler) GetComprehensiveReport(c *gin.Context) {
	store, deviceName, ok := h.open(c)
	if !ok {
		return
	}
	r, err := h.reports.Comprehensive(c.Request.Context(), store, deviceName)
	if err != nil {
		h.logger.Error("Failed to generate comprehensive report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate comprehensive report"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// ExportComprehensiveReport handles GET /comprehensive-report/export
func (h *reportHandler) ExportComprehensiveReport(c *gin.Context) {
	store, deviceName, ok := h.open(c)
	if !ok {
		return
	}
	r, err := h.reports.Comprehensive(c.Request.Context(), store, deviceName)
	if err != nil {
		h.logger.Error("Failed to generate comprehensive report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate comprehensive report"})
		return
	}

	data, err := report.Workbook(r)
	if err != nil {
		h.logger.Error("Failed to render report workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export comprehensive report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename(deviceName, r.GeneratedAt)))
	c.Data(http.StatusOK, report.ContentType, data)
}

// GetShortReport handles GET /short-report
func (h *reportHandler) GetShortReport(c *gin.Context) {
	store, deviceName, ok := h.open(c)
	if !ok {
		return
	}
	r, err := h.reports.Short(c.Request.Context(), store, deviceName)
	if err != nil {
		h.logger.Error("Failed to generate short report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate short report"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// SubmitShortReport handles POST /short-report
func (h *reportHandler) SubmitShortReport(c *gin.Context) {
	var req service.ShortReportRequest
	if !bindBody(c, &req) {
		return
	}
	if badRequest(c, req.Validate()) {
		return
	}

	store, deviceName, ok := h.open(c)
	if !ok {
		return
	}
	saved, err := h.reports.SubmitShort(c.Request.Context(), store, deviceName, req, currentUser(c))
	if err != nil {
		if badRequest(c, err) {
			return
		}
		h.logger.Error("Failed to save short report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save short report"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ListReports handles GET /reports
func (h *reportHandler) ListReports(c *gin.Context) {
	store, _, ok := h.open(c)
	if !ok {
		return
	}
	reports, err := h.reports.List(c.Request.Context(), store)
	if err != nil {
		h.logger.Error("Failed to list reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}
