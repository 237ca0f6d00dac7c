package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vehicle-status-backend/internal/adapter"
	"vehicle-status-backend/internal/model"
	"vehicle-status-backend/internal/notification"
	"vehicle-status-backend/internal/parse"
	"vehicle-status-backend/internal/store"
)

const maxJournalLimit = 500

var resultStatus = map[adapter.ResultCode]int{
	adapter.ResultOK:             http.StatusOK,
	adapter.ResultNotFound:       http.StatusNotFound,
	adapter.ResultUnknownCommand: http.StatusBadRequest,
	adapter.ResultInvalidParams:  http.StatusBadRequest,
	adapter.ResultUnsupported:    http.StatusUnprocessableEntity,
	adapter.ResultUpstreamError:  http.StatusBadGateway,
	adapter.ResultNotReady:       http.StatusServiceUnavailable,
}

// ExecuteCommand handles POST /api/vehicles/:id/commands/:command. The body,
// if any, is a JSON object of command parameters.
func (h *Handler) ExecuteCommand(c *gin.Context) {
	id := c.Param("id")
	name := adapter.CommandName(c.Param("command"))

	var params adapter.Params
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	// Resolve before executing: execution invalidates the cache.
	vin, err := h.resolveVIN(c, id)
	if err != nil {
		h.log.Debug("could not resolve vehicle before command", zap.String("vehicle", id), zap.Error(err))
	}

	result := h.adapter.Execute(c.Request.Context(), id, name, params)
	h.journal(c, id, vin, name, params, result)

	status, ok := resultStatus[result.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}

func (h *Handler) journal(c *gin.Context, id, vin string, name adapter.CommandName, params adapter.Params, result adapter.CommandResult) {
	if result.Code == adapter.ResultNotReady {
		return
	}

	rec := &model.CommandRecord{
		VIN:        vin,
		Identifier: id,
		Command:    string(name),
		Success:    result.Success,
		Code:       string(result.Code),
		Message:    result.Message,
		Error:      result.Error,
	}
	if len(params) > 0 {
		if raw, err := json.Marshal(params); err == nil {
			rec.Params = string(raw)
		}
	}

	if err := h.store.RecordCommand(c.Request.Context(), rec); err != nil {
		h.log.Error("failed to journal command", zap.String("vehicle", id), zap.String("command", string(name)), zap.Error(err))
	}
	if h.pool != nil && vin != "" {
		h.pool.Dispatch(notification.NoticeFor(rec))
	}
}

// ListCommands handles GET /api/vehicles/:id/commands?limit=N.
func (h *Handler) ListCommands(c *gin.Context) {
	limit, err := parse.Limit(c.Query("limit"), store.DefaultListLimit, maxJournalLimit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	records, err := h.store.ListCommands(c.Request.Context(), vin, limit)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vin": vin, "commands": records})
}

// ListCommandNames handles GET /api/commands.
func (h *Handler) ListCommandNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": adapter.CommandNames})
}
