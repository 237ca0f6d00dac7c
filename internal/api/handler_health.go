package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz reports that the process is serving.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports whether the vehicle backend has been initialised.
func (h *Handler) Readyz(c *gin.Context) {
	if r, ok := h.adapter.(Readiness); ok && !r.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
