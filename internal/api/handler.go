package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vehicle-status-backend/internal/adapter"
	"vehicle-status-backend/internal/logging"
	"vehicle-status-backend/internal/notification"
	"vehicle-status-backend/internal/store"
)

// Readiness is implemented by adapters that may still be starting.
type Readiness interface {
	Ready() bool
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	adapter adapter.Adapter
	store   store.Store
	pool    *notification.WorkerPool
	webpush *webpush.Options
	log     *zap.Logger
}

// NewHandler creates a new API handler. pool may be nil when push
// notifications are disabled.
func NewHandler(a adapter.Adapter, s store.Store, pool *notification.WorkerPool, webpushOptions *webpush.Options, logger *zap.Logger) *Handler {
	if s == nil {
		s = store.Noop{}
	}
	return &Handler{
		adapter: a,
		store:   s,
		pool:    pool,
		webpush: webpushOptions,
		log:     logging.OrNop(logger).Named("api"),
	}
}

// abortWithError maps adapter errors onto HTTP status codes.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, adapter.ErrNotReady):
		status = http.StatusServiceUnavailable
	case errors.Is(err, adapter.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, adapter.ErrMalformedVehicle):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		h.log.Warn("request failed", zap.String("path", c.FullPath()), zap.String("vehicle", c.Param("id")), zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func vehicleNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "vehicle " + c.Param("id") + " not found"})
}

// respond writes a per-vehicle record, 404 for an unknown vehicle, or the
// mapped error.
func respond[T any](h *Handler, c *gin.Context, record *T, err error) {
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if record == nil {
		vehicleNotFound(c)
		return
	}
	c.JSON(http.StatusOK, record)
}

// resolveVIN returns the VIN of the vehicle id refers to, or "" when unknown.
func (h *Handler) resolveVIN(c *gin.Context, id string) (string, error) {
	info, err := h.adapter.GetVehicle(c.Request.Context(), id, adapter.DetailBasic)
	if err != nil || info == nil {
		return "", err
	}
	return info.VIN, nil
}
