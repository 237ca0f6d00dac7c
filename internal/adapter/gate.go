package adapter

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Gate lets the server accept requests before the backend is initialised.
// Until Open is called every read fails with ErrNotReady and every command
// returns a not_ready result.
type Gate struct {
	current atomic.Value // holds delegate
}

type delegate struct {
	Adapter
	ready bool
}

var _ Adapter = (*Gate)(nil)

// NewGate returns a closed gate.
func NewGate() *Gate {
	g := &Gate{}
	g.current.Store(delegate{Adapter: starting{err: ErrNotReady}})
	return g
}

// Open routes all further calls to a.
func (g *Gate) Open(a Adapter) {
	g.current.Store(delegate{Adapter: a, ready: true})
}

// Fail keeps the gate closed and reports cause on every call.
func (g *Gate) Fail(cause error) {
	g.current.Store(delegate{Adapter: starting{err: fmt.Errorf("%w: %w", ErrNotReady, cause)}})
}

// Ready reports whether Open has been called.
func (g *Gate) Ready() bool {
	return g.load().ready
}

func (g *Gate) load() delegate {
	return g.current.Load().(delegate)
}

func (g *Gate) ListVehicles(ctx context.Context) ([]VehicleSummary, error) {
	return g.load().ListVehicles(ctx)
}

func (g *Gate) GetVehicle(ctx context.Context, id string, level DetailLevel) (*VehicleInfo, error) {
	return g.load().GetVehicle(ctx, id, level)
}

func (g *Gate) GetPhysicalStatus(ctx context.Context, id string, components ...Component) (*PhysicalStatus, error) {
	return g.load().GetPhysicalStatus(ctx, id, components...)
}

func (g *Gate) GetEnergyStatus(ctx context.Context, id string) (*EnergyStatus, error) {
	return g.load().GetEnergyStatus(ctx, id)
}

func (g *Gate) GetClimateStatus(ctx context.Context, id string) (*ClimateStatus, error) {
	return g.load().GetClimateStatus(ctx, id)
}

func (g *Gate) GetMaintenanceInfo(ctx context.Context, id string) (*MaintenanceInfo, error) {
	return g.load().GetMaintenanceInfo(ctx, id)
}

func (g *Gate) GetPosition(ctx context.Context, id string) (*PositionInfo, error) {
	return g.load().GetPosition(ctx, id)
}

func (g *Gate) Execute(ctx context.Context, id string, name CommandName, params Params) CommandResult {
	return g.load().Execute(ctx, id, name, params)
}

// starting answers every call while the backend is not available yet.
type starting struct {
	err error
}

func (s starting) ListVehicles(context.Context) ([]VehicleSummary, error) { return nil, s.err }

func (s starting) GetVehicle(context.Context, string, DetailLevel) (*VehicleInfo, error) {
	return nil, s.err
}

func (s starting) GetPhysicalStatus(context.Context, string, ...Component) (*PhysicalStatus, error) {
	return nil, s.err
}

func (s starting) GetEnergyStatus(context.Context, string) (*EnergyStatus, error) { return nil, s.err }

func (s starting) GetClimateStatus(context.Context, string) (*ClimateStatus, error) { return nil, s.err }

func (s starting) GetMaintenanceInfo(context.Context, string) (*MaintenanceInfo, error) {
	return nil, s.err
}

func (s starting) GetPosition(context.Context, string) (*PositionInfo, error) { return nil, s.err }

func (s starting) Execute(context.Context, string, CommandName, Params) CommandResult {
	return failure(ResultNotReady, "Service is still starting, retry in a few seconds", s.err)
}
