package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/middleware"
	"github.com/RanaNomiRana/backend-afa/internal/repository"
	"github.com/RanaNomiRana/backend-afa/internal/service"
)

// StoreOpener resolves the namespace of a device.
type StoreOpener interface {
	Open(ctx context.Context, deviceName string) (*repository.Store, error)
}

// deviceScope resolves the connected device and its store for a request.
type deviceScope struct {
	ingest service.IngestService
	stores StoreOpener
	logger *zap.Logger
}

// open writes a 500 response and returns ok=false when the device or its store is unavailable.
func (d deviceScope) open(c *gin.Context) (store *repository.Store, deviceName string, ok bool) {
	ctx := c.Request.Context()
	deviceName, err := d.ingest.DeviceName(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching device name"})
		return nil, "", false
	}
	store, err = d.stores.Open(ctx, deviceName)
	if err != nil {
		d.logger.Error("Failed to open device store", zap.String("device_name", deviceName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error connecting to device database"})
		return nil, "", false
	}
	return store, deviceName, true
}

// badRequest answers validation failures; it reports whether err was one.
func badRequest(c *gin.Context, err error) bool {
	if errors.Is(err, service.ErrMissingField) || errors.Is(err, service.ErrInvalidKeyword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return true
	}
	return false
}

// bindBody decodes a JSON body into dst. An empty body leaves dst zero so the
// caller's validation names the missing field.
func bindBody(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": typeErr.Field + " must be a " + typeErr.Type.String()})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
	return false
}

func currentUser(c *gin.Context) *string {
	if username := c.GetString(middleware.UsernameKey); username != "" {
		return &username
	}
	return nil
}

type DeviceHandler interface {
	GetDeviceName(c *gin.Context)
	GetSMS(c *gin.Context)
	GetCallLog(c *gin.Context)
	GetContacts(c *gin.Context)
	GetSMSStats(c *gin.Context)
	Search(c *gin.Context)
}

type deviceHandler struct {
	deviceScope
	analysis service.AnalysisService
}

func NewDeviceHandler(ingest service.IngestService, analysis service.AnalysisService, stores StoreOpener, logger *zap.Logger) DeviceHandler {
	return &deviceHandler{
		deviceScope: deviceScope{ingest: ingest, stores: stores, logger: logger},
		analysis:    analysis,
	}
}

// GetDeviceName handles GET /device-name
func (h *deviceHandler) GetDeviceName(c *gin.Context) {
	name, err := h.ingest.DeviceName(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching device name"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deviceName": name})
}

// GetSMS handles GET /sms
func (h *deviceHandler) GetSMS(c *gin.Context) {
	store, deviceName, ok := h.open(c)
	if !ok {
		return
	}
	messages, err := h.ingest.IngestMessages(c.Request.Context(), store, deviceName)
	if err != nil {
		h.logger.Error("Failed to ingest SMS", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying and saving SMS data"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetCallLog handles GET /call-log
func (h *deviceHandler) GetCallLog(c *gin.Context) {
	store, _, ok := h.open(c)
	if !ok {
		return
	}
	calls, err := h.ingest.IngestCallLog(c.Request.Context(), store)
	if err != nil {
		h.logger.Error("Failed to ingest call log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying and saving call log data"})
		return
	}
	c.JSON(http.StatusOK, calls)
}

// GetContacts handles GET /contacts
func (h *deviceHandler) GetContacts(c *gin.Context) {
	store, _, ok := h.open(c)
	if !ok {
		return
	}
	contacts, err := h.ingest.IngestContacts(c.Request.Context(), store)
	if err != nil {
		h.logger.Error("Failed to ingest contacts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying and saving contacts data"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// GetSMSStats handles GET /sms-stats
func (h *deviceHandler) GetSMSStats(c *gin.Context) {
	store, _, ok := h.open(c)
	if !ok {
		return
	}
	counts, err := h.analysis.AddressCounts(c.Request.Context(), store)
	if err != nil {
		h.logger.Error("Failed to aggregate SMS stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error aggregating SMS data"})
		return
	}
	c.JSON(http.StatusOK, counts)
}

// Search handles GET /search?keyword=
func (h *deviceHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if err := service.ValidateKeyword(keyword); badRequest(c, err) {
		return
	}

	store, _, ok := h.open(c)
	if !ok {
		return
	}
	result, err := h.analysis.Search(c.Request.Context(), store, keyword)
	if err != nil {
		if badRequest(c, err) {
			return
		}
		h.logger.Error("Failed to search device data", zap.String("keyword", keyword), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error searching data"})
		return
	}
	c.JSON(http.StatusOK, result)
}
