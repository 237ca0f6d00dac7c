package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Vehicles []*SubscribedVehicle `gorm:"many2many:subscription_vehicle_mapping;"`
}

// SubscribedVehicle is a vehicle at least one subscription asked to follow.
type SubscribedVehicle struct {
	VIN       string `gorm:"primaryKey;size:32"`
	CreatedAt time.Time
}
