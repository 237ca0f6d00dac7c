package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-status-backend/internal/model"
)

// DefaultListLimit bounds ListCommands when the caller passes no limit.
const DefaultListLimit = 50

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDisabled is returned by Noop for operations that need a database.
var ErrDisabled = errors.New("database not configured")

// Store defines the interface for all database operations.
type Store interface {
	RecordCommand(ctx context.Context, rec *model.CommandRecord) error
	ListCommands(ctx context.Context, vin string, limit int) ([]model.CommandRecord, error)

	SaveSubscription(ctx context.Context, sub *model.PushSubscription, vins []string) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForVehicle(ctx context.Context, vin string) ([]model.PushSubscription, error)

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db, now: time.Now}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// RecordCommand appends rec to the journal, assigning an ID and timestamp
// when they are missing.
func (s *gormStore) RecordCommand(ctx context.Context, rec *model.CommandRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to record command %s for %s: %w", rec.Command, rec.Identifier, err)
	}
	return nil
}

// ListCommands returns the newest journal entries for a VIN first.
func (s *gormStore) ListCommands(ctx context.Context, vin string, limit int) ([]model.CommandRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var records []model.CommandRecord
	err := s.db.WithContext(ctx).
		Where("vin = ?", vin).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list commands for %s: %w", vin, err)
	}
	return records, nil
}

// SaveSubscription creates or replaces a subscription and the set of vehicles
// it follows.
func (s *gormStore) SaveSubscription(ctx context.Context, sub *model.PushSubscription, vins []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(sub).Error; err != nil {
			return err
		}

		vehicles := make([]*model.SubscribedVehicle, 0, len(vins))
		for _, vin := range vins {
			vehicles = append(vehicles, &model.SubscribedVehicle{VIN: vin})
		}
		return tx.Model(sub).Association("Vehicles").Replace(vehicles)
	})
}

// GetSubscription loads a subscription with its vehicles.
func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).Preload("Vehicles").First(&sub, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteSubscription removes a subscription and its vehicle mappings.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := &model.PushSubscription{Endpoint: endpoint}
		if err := tx.Model(sub).Association("Vehicles").Clear(); err != nil {
			return err
		}
		return tx.Delete(sub).Error
	})
}

// SubscriptionsForVehicle returns every subscription following vin.
func (s *gormStore) SubscriptionsForVehicle(ctx context.Context, vin string) ([]model.PushSubscription, error) {
	var subscriptions []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_vehicle_mapping svm ON svm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("svm.subscribed_vehicle_vin = ?", vin).
		Find(&subscriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions for %s: %w", vin, err)
	}
	return subscriptions, nil
}
