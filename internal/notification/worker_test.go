package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vehicle-status-backend/internal/model"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// mockStore implements store.Store; only the subscription lookups are used here.
type mockStore struct {
	SubscriptionsForVehicleFunc func(ctx context.Context, vin string) ([]model.PushSubscription, error)
	DeleteSubscriptionFunc      func(ctx context.Context, endpoint string) error
}

func (m *mockStore) RecordCommand(context.Context, *model.CommandRecord) error { return nil }

func (m *mockStore) ListCommands(context.Context, string, int) ([]model.CommandRecord, error) {
	return nil, nil
}

func (m *mockStore) SaveSubscription(context.Context, *model.PushSubscription, []string) error {
	return nil
}

func (m *mockStore) GetSubscription(context.Context, string) (*model.PushSubscription, error) {
	return nil, nil
}

func (m *mockStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return m.DeleteSubscriptionFunc(ctx, endpoint)
}

func (m *mockStore) SubscriptionsForVehicle(ctx context.Context, vin string) ([]model.PushSubscription, error) {
	return m.SubscriptionsForVehicleFunc(ctx, vin)
}

func (m *mockStore) DB() *gorm.DB { return nil }

func response(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewBufferString(""))}
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, &mockStore{}, &webpush.Options{}, nil)

	assert.True(t, wp.Dispatch(Notice{VIN: "WVW1"}))

	select {
	case job := <-wp.Jobs():
		assert.Equal(t, "WVW1", job.VIN)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchDropsWhenFull(t *testing.T) {
	wp := NewWorkerPool(1, &mockStore{}, &webpush.Options{}, nil)
	for i := 0; i < cap(wp.jobs); i++ {
		require.True(t, wp.Dispatch(Notice{VIN: "WVW1"}))
	}
	assert.False(t, wp.Dispatch(Notice{VIN: "WVW1"}))
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	subscription := model.PushSubscription{
		Endpoint: "https://example.com/push",
		P256DH:   "test_p256dh",
		Auth:     "test_auth",
	}

	t.Run("sends notification for one subscription", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		st := &mockStore{
			SubscriptionsForVehicleFunc: func(ctx context.Context, vin string) ([]model.PushSubscription, error) {
				assert.Equal(t, "WVW1", vin)
				return []model.PushSubscription{subscription}, nil
			},
		}
		wp := NewWorkerPool(1, st, &webpush.Options{}, nil)
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				defer wg.Done()
				assert.Equal(t, "https://example.com/push", sub.Endpoint)
				assert.Equal(t, "test_p256dh", sub.Keys.P256dh)

				var body map[string]any
				require.NoError(t, json.Unmarshal(payload, &body))
				assert.Equal(t, "ID7: lock_vehicle", body["title"])
				assert.Equal(t, "Vehicle locked", body["body"])
				assert.Equal(t, "WVW1", body["vin"])
				return response(http.StatusCreated), nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		wp.Start(ctx)

		wp.Dispatch(NoticeFor(&model.CommandRecord{VIN: "WVW1", Identifier: "ID7", Command: "lock_vehicle", Success: true, Message: "Vehicle locked"}))
		wg.Wait()
	})

	t.Run("deletes expired subscription", func(t *testing.T) {
		deleted := make(chan string, 1)
		st := &mockStore{
			SubscriptionsForVehicleFunc: func(ctx context.Context, vin string) ([]model.PushSubscription, error) {
				return []model.PushSubscription{subscription}, nil
			},
			DeleteSubscriptionFunc: func(ctx context.Context, endpoint string) error {
				deleted <- endpoint
				return nil
			},
		}
		wp := NewWorkerPool(1, st, &webpush.Options{}, nil)
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				return response(http.StatusGone), nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		wp.Start(ctx)
		wp.Dispatch(Notice{VIN: "WVW1", Vehicle: "ID7", Command: "unlock_vehicle"})

		select {
		case endpoint := <-deleted:
			assert.Equal(t, subscription.Endpoint, endpoint)
		case <-time.After(time.Second):
			t.Fatal("expired subscription was not deleted")
		}
	})

	t.Run("skips notices without vin and lookup failures", func(t *testing.T) {
		lookups := make(chan string, 2)
		st := &mockStore{
			SubscriptionsForVehicleFunc: func(ctx context.Context, vin string) ([]model.PushSubscription, error) {
				lookups <- vin
				return nil, errors.New("connection reset")
			},
		}
		wp := NewWorkerPool(1, st, &webpush.Options{}, nil)
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				t.Error("no notification expected")
				return response(http.StatusCreated), nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		wp.Start(ctx)
		wp.Dispatch(Notice{Vehicle: "Polo", Command: "lock_vehicle"})
		wp.Dispatch(Notice{VIN: "WVW2", Vehicle: "T7", Command: "lock_vehicle"})

		select {
		case vin := <-lookups:
			assert.Equal(t, "WVW2", vin)
		case <-time.After(time.Second):
			t.Fatal("subscription lookup not attempted")
		}
	})
}

func TestNotice_FailedTitle(t *testing.T) {
	body, err := Notice{Vehicle: "T7", Command: "start_charging", Message: "not supported"}.payload()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"title":"T7: start_charging failed"`)
}
