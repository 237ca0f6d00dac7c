// Package adapter maps the vendor vehicle model onto flat, serialisable
// records and a fixed set of remote commands.
//
// Reads go through a short-lived Cache of the whole fleet; identifiers are
// resolved against the cached list by name, VIN or license plate; commands
// invalidate the cache so the next read sees their effect.
package adapter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vehicle-status-backend/internal/carconnect"
	"vehicle-status-backend/internal/logging"
)

//go:generate mockgen -destination=../mocks/mock_source.go -package=mocks vehicle-status-backend/internal/adapter Source

// Source is the vendor backend: a vehicle list and a command channel.
type Source interface {
	Fetcher
	CommandSender
}

// Adapter is the surface served to callers. Per-vehicle reads return a nil
// record and a nil error when the identifier matches no vehicle; errors are
// reserved for backend failures.
type Adapter interface {
	ListVehicles(ctx context.Context) ([]VehicleSummary, error)
	GetVehicle(ctx context.Context, id string, level DetailLevel) (*VehicleInfo, error)
	GetPhysicalStatus(ctx context.Context, id string, components ...Component) (*PhysicalStatus, error)
	GetEnergyStatus(ctx context.Context, id string) (*EnergyStatus, error)
	GetClimateStatus(ctx context.Context, id string) (*ClimateStatus, error)
	GetMaintenanceInfo(ctx context.Context, id string) (*MaintenanceInfo, error)
	GetPosition(ctx context.Context, id string) (*PositionInfo, error)
	Execute(ctx context.Context, id string, name CommandName, params Params) CommandResult
}

var _ Adapter = (*VehicleAdapter)(nil)

// VehicleAdapter implements Adapter on top of a Source.
type VehicleAdapter struct {
	cache      *Cache
	extractor  *Extractor
	dispatcher *Dispatcher
	log        *zap.Logger
}

type options struct {
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a VehicleAdapter.
type Option func(*options)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the clock used for remaining-time fields.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New wires the cache, extractor and dispatcher around source.
func New(source Source, opts ...Option) *VehicleAdapter {
	o := options{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.OrNop(o.logger)

	cache := NewCache(source, o.ttl, logger)
	return &VehicleAdapter{
		cache:      cache,
		extractor:  &Extractor{now: o.now},
		dispatcher: NewDispatcher(cache, source, logger),
		log:        logger.Named("adapter"),
	}
}

// Cache exposes the underlying cache, mainly for diagnostics.
func (a *VehicleAdapter) Cache() *Cache {
	return a.cache
}

func (a *VehicleAdapter) ListVehicles(ctx context.Context) ([]VehicleSummary, error) {
	return a.cache.Vehicles(ctx)
}

func (a *VehicleAdapter) GetVehicle(ctx context.Context, id string, level DetailLevel) (*VehicleInfo, error) {
	return withVehicle(ctx, a, id, func(v *carconnect.Vehicle) *VehicleInfo {
		return a.extractor.Info(v, level)
	})
}

// GetPhysicalStatus extracts the full physical record and then keeps only the
// requested components.
func (a *VehicleAdapter) GetPhysicalStatus(ctx context.Context, id string, components ...Component) (*PhysicalStatus, error) {
	return withVehicle(ctx, a, id, func(v *carconnect.Vehicle) *PhysicalStatus {
		return a.extractor.Physical(v).Filter(components)
	})
}

func (a *VehicleAdapter) GetEnergyStatus(ctx context.Context, id string) (*EnergyStatus, error) {
	return withVehicle(ctx, a, id, a.extractor.Energy)
}

func (a *VehicleAdapter) GetClimateStatus(ctx context.Context, id string) (*ClimateStatus, error) {
	return withVehicle(ctx, a, id, a.extractor.Climate)
}

func (a *VehicleAdapter) GetMaintenanceInfo(ctx context.Context, id string) (*MaintenanceInfo, error) {
	return withVehicle(ctx, a, id, a.extractor.Maintenance)
}

func (a *VehicleAdapter) GetPosition(ctx context.Context, id string) (*PositionInfo, error) {
	return withVehicle(ctx, a, id, a.extractor.Position)
}

// withVehicle resolves id against the cached fleet and runs extract on the
// match. A panic while reading a malformed vehicle becomes ErrMalformedVehicle.
func withVehicle[T any](ctx context.Context, a *VehicleAdapter, id string, extract func(*carconnect.Vehicle) *T) (out *T, err error) {
	snap, err := a.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	vehicle := Resolve(snap.Vehicles, id)
	if vehicle == nil {
		a.log.Debug("vehicle not found", zap.String("vehicle", id))
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			a.log.Error("failed to read vehicle", zap.String("vehicle", id), zap.String("vin", vehicle.VIN), zap.Any("panic", r))
			out, err = nil, fmt.Errorf("%w: %s: %v", ErrMalformedVehicle, vehicle.VIN, r)
		}
	}()
	return extract(vehicle), nil
}

func (a *VehicleAdapter) Execute(ctx context.Context, id string, name CommandName, params Params) CommandResult {
	return a.dispatcher.Execute(ctx, id, name, params)
}

func (a *VehicleAdapter) LockVehicle(ctx context.Context, id string) CommandResult {
	return a.Execute(ctx, id, CommandLock, nil)
}

func (a *VehicleAdapter) UnlockVehicle(ctx context.Context, id string) CommandResult {
	return a.Execute(ctx, id, CommandUnlock, nil)
}

// StartClimatization starts climatization, optionally at targetC degrees Celsius.
func (a *VehicleAdapter) StartClimatization(ctx context.Context, id string, targetC *float64) CommandResult {
	params := Params{}
	if targetC != nil {
		params[ParamTargetTemperature] = *targetC
	}
	return a.Execute(ctx, id, CommandStartClimatization, params)
}

func (a *VehicleAdapter) StopClimatization(ctx context.Context, id string) CommandResult {
	return a.Execute(ctx, id, CommandStopClimatization, nil)
}

func (a *VehicleAdapter) StartCharging(ctx context.Context, id string) CommandResult {
	return a.Execute(ctx, id, CommandStartCharging, nil)
}

func (a *VehicleAdapter) StopCharging(ctx context.Context, id string) CommandResult {
	return a.Execute(ctx, id, CommandStopCharging, nil)
}

func (a *VehicleAdapter) StartWindowHeating(ctx context.Context, id string) CommandResult {
	return a.Execute(ctx, id, CommandStartWindowHeating, nil)
}

func (a *VehicleAdapter) StopWindowHeating(ctx context.Context, id string) CommandResult {
	return a.Execute(ctx, id, CommandStopWindowHeating, nil)
}

// FlashLights flashes the lights, optionally for durationSeconds.
func (a *VehicleAdapter) FlashLights(ctx context.Context, id string, durationSeconds *int) CommandResult {
	return a.Execute(ctx, id, CommandFlashLights, durationParams(durationSeconds))
}

// HonkAndFlash honks and flashes, optionally for durationSeconds.
func (a *VehicleAdapter) HonkAndFlash(ctx context.Context, id string, durationSeconds *int) CommandResult {
	return a.Execute(ctx, id, CommandHonkAndFlash, durationParams(durationSeconds))
}

func durationParams(seconds *int) Params {
	if seconds == nil {
		return nil
	}
	return Params{ParamDurationSeconds: *seconds}
}
