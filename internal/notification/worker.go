package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"vehicle-status-backend/internal/logging"
	"vehicle-status-backend/internal/model"
	"vehicle-status-backend/internal/store"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Notice is the outcome of one command, pushed to every subscription that
// follows the vehicle.
type Notice struct {
	VIN     string `json:"vin"`
	Vehicle string `json:"vehicle"`
	Command string `json:"command"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NoticeFor builds the notice for a journaled command.
func NoticeFor(rec *model.CommandRecord) Notice {
	return Notice{
		VIN:     rec.VIN,
		Vehicle: rec.Identifier,
		Command: rec.Command,
		Success: rec.Success,
		Message: rec.Message,
	}
}

type payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Notice
}

func (n Notice) payload() ([]byte, error) {
	title := fmt.Sprintf("%s: %s", n.Vehicle, n.Command)
	if !n.Success {
		title += " failed"
	}
	return json.Marshal(payload{Title: title, Body: n.Message, Notice: n})
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Notice
	store   store.Store
	webpush *webpush.Options
	sender  NotificationSender
	log     *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options, logger *zap.Logger) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Notice, size*16), // Buffered channel
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
		log:     logging.OrNop(logger).Named("notification"),
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.log.Debug("worker started", zap.Int("worker", id))
	for {
		select {
		case notice := <-wp.jobs:
			wp.sendNotificationsForVehicle(ctx, notice)
		case <-ctx.Done():
			wp.log.Debug("worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch queues a notice. It never blocks the caller: when the queue is
// full the notice is dropped and false is returned.
func (wp *WorkerPool) Dispatch(n Notice) bool {
	select {
	case wp.jobs <- n:
		return true
	default:
		wp.log.Warn("notification queue full, dropping notice", zap.String("vin", n.VIN), zap.String("command", n.Command))
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Notice {
	return wp.jobs
}

// sendNotificationsForVehicle fetches subscriptions and notifies each of them.
func (wp *WorkerPool) sendNotificationsForVehicle(ctx context.Context, n Notice) {
	if n.VIN == "" {
		return
	}
	subscriptions, err := wp.store.SubscriptionsForVehicle(ctx, n.VIN)
	if err != nil {
		wp.log.Error("failed to fetch subscriptions", zap.String("vin", n.VIN), zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	body, err := n.payload()
	if err != nil {
		wp.log.Error("failed to encode notification", zap.String("vin", n.VIN), zap.Error(err))
		return
	}

	wp.log.Debug("sending notifications", zap.String("vin", n.VIN), zap.Int("subscriptions", len(subscriptions)))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, body)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	// Manually construct the webpush.Subscription object
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Warn("failed to send notification", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		wp.log.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			wp.log.Error("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
