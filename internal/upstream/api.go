package upstream

import "vehicle-status-backend/internal/carconnect"

// ApiResponse models the envelope of the vehicle list endpoint.
type ApiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Page     int                   `json:"page"`
		PageSize int                   `json:"pageSize"`
		Total    int                   `json:"total"`
		Items    []*carconnect.Vehicle `json:"items"`
	} `json:"data"`
}

// CommandResponse models the envelope of the command endpoint.
type CommandResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}
