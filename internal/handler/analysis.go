package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/service"
)

type AnalysisHandler interface {
	GetTimeline(c *gin.Context)
	GetURLAnalysis(c *gin.Context)
	GetDataCorrelation(c *gin.Context)
}

type analysisHandler struct {
	deviceScope
	analysis service.AnalysisService
}

func NewAnalysisHandler(ingest service.IngestService, analysis service.AnalysisService, stores StoreOpener, logger *zap.Logger) AnalysisHandler {
	return &analysisHandler{
		deviceScope: deviceScope{ingest: ingest, stores: stores, logger: logger},
		analysis:    analysis,
	}
}

// GetTimeline handles GET /timeline-analysis[?details=true]
func (h *analysisHandler) GetTimeline(c *gin.Context) {
	details, err := strconv.ParseBool(c.DefaultQuery("details", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "details must be a boolean"})
		return
	}

	store, _, ok := h.open(c)
	if !ok {
		return
	}
	timeline, err := h.analysis.Timeline(c.Request.Context(), store, details)
	if err != nil {
		h.logger.Error("Failed to perform timeline analysis", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error performing timeline analysis"})
		return
	}
	c.JSON(http.StatusOK, timeline)
}

// GetURLAnalysis handles GET /url-analysis
func (h *analysisHandler) GetURLAnalysis(c *gin.Context) {
	store, _, ok := h.open(c)
	if !ok {
		return
	}
	result, err := h.analysis.URLAnalysis(c.Request.Context(), store)
	if err != nil {
		h.logger.Error("Failed to perform URL analysis", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error performing URL analysis"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDataCorrelation handles GET /data-correlation
func (h *analysisHandler) GetDataCorrelation(c *gin.Context) {
	store, _, ok := h.open(c)
	if !ok {
		return
	}
	results, err := h.analysis.Correlation(c.Request.Context(), store)
	if err != nil {
		h.logger.Error("Failed to perform data correlation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error performing data correlation"})
		return
	}
	c.JSON(http.StatusOK, results)
}
