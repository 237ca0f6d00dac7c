package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-status-backend/internal/parse"
)

// ListVehicles handles GET /api/vehicles.
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.adapter.ListVehicles(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// GetVehicle handles GET /api/vehicles/:id?details=basic|full|all.
func (h *Handler) GetVehicle(c *gin.Context) {
	level, err := parse.DetailLevel(c.Query("details"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	info, err := h.adapter.GetVehicle(c.Request.Context(), c.Param("id"), level)
	respond(h, c, info, err)
}

// GetPhysicalStatus handles GET /api/vehicles/:id/physical?components=doors,windows.
func (h *Handler) GetPhysicalStatus(c *gin.Context) {
	components, err := parse.Components(c.Query("components"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := h.adapter.GetPhysicalStatus(c.Request.Context(), c.Param("id"), components...)
	respond(h, c, status, err)
}

func (h *Handler) GetEnergyStatus(c *gin.Context) {
	status, err := h.adapter.GetEnergyStatus(c.Request.Context(), c.Param("id"))
	respond(h, c, status, err)
}

// GetClimateStatus answers 204 when the vehicle has no climate subsystems.
func (h *Handler) GetClimateStatus(c *gin.Context) {
	h.optional(c, func() (any, bool, error) {
		status, err := h.adapter.GetClimateStatus(c.Request.Context(), c.Param("id"))
		return status, status != nil, err
	})
}

func (h *Handler) GetMaintenanceInfo(c *gin.Context) {
	h.optional(c, func() (any, bool, error) {
		info, err := h.adapter.GetMaintenanceInfo(c.Request.Context(), c.Param("id"))
		return info, info != nil, err
	})
}

func (h *Handler) GetPosition(c *gin.Context) {
	h.optional(c, func() (any, bool, error) {
		pos, err := h.adapter.GetPosition(c.Request.Context(), c.Param("id"))
		return pos, pos != nil, err
	})
}

// optional serves categories where a nil record can mean either an unknown
// vehicle or a vehicle without that subsystem; the two are told apart by
// resolving the vehicle.
func (h *Handler) optional(c *gin.Context, read func() (any, bool, error)) {
	record, found, err := read()
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if found {
		c.JSON(http.StatusOK, record)
		return
	}

	vin, err := h.resolveVIN(c, c.Param("id"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if vin == "" {
		vehicleNotFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}
