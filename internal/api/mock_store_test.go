package api

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"vehicle-status-backend/internal/model"
	"vehicle-status-backend/internal/store"
)

// mockStore is a func-field implementation of store.Store. Unset funcs fall
// back to an in-memory journal so handlers can be exercised end to end.
type mockStore struct {
	mu      sync.Mutex
	records []model.CommandRecord

	SaveSubscriptionFunc   func(ctx context.Context, sub *model.PushSubscription, vins []string) error
	GetSubscriptionFunc    func(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscriptionFunc func(ctx context.Context, endpoint string) error
	ListCommandsFunc       func(ctx context.Context, vin string, limit int) ([]model.CommandRecord, error)
}

var _ store.Store = (*mockStore)(nil)

func (m *mockStore) RecordCommand(_ context.Context, rec *model.CommandRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockStore) Records() []model.CommandRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.CommandRecord(nil), m.records...)
}

func (m *mockStore) ListCommands(ctx context.Context, vin string, limit int) ([]model.CommandRecord, error) {
	if m.ListCommandsFunc != nil {
		return m.ListCommandsFunc(ctx, vin, limit)
	}
	var out []model.CommandRecord
	for _, r := range m.Records() {
		if r.VIN == vin && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) SaveSubscription(ctx context.Context, sub *model.PushSubscription, vins []string) error {
	if m.SaveSubscriptionFunc == nil {
		return nil
	}
	return m.SaveSubscriptionFunc(ctx, sub, vins)
}

func (m *mockStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	if m.GetSubscriptionFunc == nil {
		return nil, store.ErrNotFound
	}
	return m.GetSubscriptionFunc(ctx, endpoint)
}

func (m *mockStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if m.DeleteSubscriptionFunc == nil {
		return nil
	}
	return m.DeleteSubscriptionFunc(ctx, endpoint)
}

func (m *mockStore) SubscriptionsForVehicle(context.Context, string) ([]model.PushSubscription, error) {
	return nil, nil
}

func (m *mockStore) DB() *gorm.DB { return nil }
