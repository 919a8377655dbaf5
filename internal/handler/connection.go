package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/service"
)

type ConnectionHandler interface {
	ListConnectionDetails(c *gin.Context)
	RecordConnectionDetails(c *gin.Context)
}

type connectionHandler struct {
	ingest      service.IngestService
	connections service.ConnectionService
	logger      *zap.Logger
}

func NewConnectionHandler(ingest service.IngestService, connections service.ConnectionService, logger *zap.Logger) ConnectionHandler {
	return &connectionHandler{ingest: ingest, connections: connections, logger: logger}
}

// ListConnectionDetails handles GET /connection-details
func (h *connectionHandler) ListConnectionDetails(c *gin.Context) {
	details, err := h.connections.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list connection details", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving additional information"})
		return
	}
	c.JSON(http.StatusOK, details)
}

// RecordConnectionDetails handles POST /connection-details
func (h *connectionHandler) RecordConnectionDetails(c *gin.Context) {
	var req service.ConnectionRequest
	if !bindBody(c, &req) {
		return
	}
	if user := currentUser(c); user != nil {
		req.InvestigatorID = *user
	}
	if badRequest(c, req.Validate()) {
		return
	}

	deviceName, err := h.ingest.DeviceName(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching device name"})
		return
	}
	detail, err := h.connections.Record(c.Request.Context(), deviceName, req)
	if err != nil {
		if badRequest(c, err) {
			return
		}
		h.logger.Error("Failed to record connection details", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving additional information"})
		return
	}
	c.JSON(http.StatusCreated, detail)
}
