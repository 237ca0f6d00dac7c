package store

import (
	"context"

	"gorm.io/gorm"

	"vehicle-status-backend/internal/model"
)

// Noop is used when no database is configured. Writes are dropped and reads
// come back empty.
type Noop struct{}

var _ Store = Noop{}

func (Noop) RecordCommand(context.Context, *model.CommandRecord) error { return nil }

func (Noop) ListCommands(context.Context, string, int) ([]model.CommandRecord, error) {
	return []model.CommandRecord{}, nil
}

func (Noop) SaveSubscription(context.Context, *model.PushSubscription, []string) error {
	return ErrDisabled
}

func (Noop) GetSubscription(context.Context, string) (*model.PushSubscription, error) {
	return nil, ErrDisabled
}

func (Noop) DeleteSubscription(context.Context, string) error { return ErrDisabled }

func (Noop) SubscriptionsForVehicle(context.Context, string) ([]model.PushSubscription, error) {
	return nil, nil
}

func (Noop) DB() *gorm.DB { return nil }
