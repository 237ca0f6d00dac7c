package model

import "time"

// CommandRecord is one entry of the command journal.
type CommandRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	VIN        string    `gorm:"size:32;index:idx_command_records_vin_created_at,priority:1" json:"vin"`
	Identifier string    `gorm:"size:128;not null" json:"identifier"` // as given by the caller
	Command    string    `gorm:"size:64;not null" json:"command"`
	Params     string    `gorm:"type:text" json:"params,omitempty"` // JSON object
	Success    bool      `gorm:"not null" json:"success"`
	Code       string    `gorm:"size:32;not null" json:"code"`
	Message    string    `gorm:"size:512" json:"message"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt  time.Time `gorm:"not null;index:idx_command_records_vin_created_at,priority:2,sort:desc" json:"created_at"`
}
