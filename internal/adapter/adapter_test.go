package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-status-backend/internal/carconnect"
	"vehicle-status-backend/internal/demo"
)

func newDemoAdapter(t *testing.T) (*VehicleAdapter, *demo.Source) {
	t.Helper()
	source := demo.NewSource(testNow)
	return New(source, WithTTL(300*time.Second), WithClock(func() time.Time { return testNow })), source
}

func TestVehicleAdapter_ListVehicles(t *testing.T) {
	a, source := newDemoAdapter(t)

	first, err := a.ListVehicles(context.Background())
	require.NoError(t, err)
	second, err := a.ListVehicles(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.Fetches())

	vins := []string{first[0].VIN, first[1].VIN, first[2].VIN}
	assert.ElementsMatch(t, []string{demo.ElectricVIN, demo.CombustionVIN, demo.HybridVIN}, vins)
}

func TestVehicleAdapter_CommandForcesRefetch(t *testing.T) {
	a, source := newDemoAdapter(t)
	ctx := context.Background()

	physical, err := a.GetPhysicalStatus(ctx, "ID7", ComponentDoors)
	require.NoError(t, err)
	assert.Equal(t, ptr(true), physical.Doors.Locked)

	res := a.UnlockVehicle(ctx, "ID7")
	require.True(t, res.Success, res.Error)

	_, err = a.ListVehicles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.Fetches())

	physical, err = a.GetPhysicalStatus(ctx, "ID7", ComponentDoors)
	require.NoError(t, err)
	assert.Equal(t, ptr(false), physical.Doors.Locked)
	assert.Equal(t, 2, source.Fetches())
}

func TestVehicleAdapter_GetPhysicalStatus_Filtered(t *testing.T) {
	a, _ := newDemoAdapter(t)

	doorsOnly, err := a.GetPhysicalStatus(context.Background(), "ID7", ComponentDoors)
	require.NoError(t, err)
	require.NotNil(t, doorsOnly)
	assert.NotNil(t, doorsOnly.Doors)
	assert.Nil(t, doorsOnly.Windows)
	assert.Nil(t, doorsOnly.Tyres)
	assert.Nil(t, doorsOnly.Lights)

	full, err := a.GetPhysicalStatus(context.Background(), "ID7")
	require.NoError(t, err)
	assert.Equal(t, full.Doors, doorsOnly.Doors)
	assert.NotNil(t, full.Windows)
}

func TestVehicleAdapter_GetEnergyStatus_Combustion(t *testing.T) {
	a, _ := newDemoAdapter(t)

	energy, err := a.GetEnergyStatus(context.Background(), "T7")
	require.NoError(t, err)
	require.NotNil(t, energy)
	assert.Equal(t, VehicleTypeCombustion, energy.VehicleType)
	assert.NotNil(t, energy.Combustion)
	assert.Nil(t, energy.Charging)
	assert.Nil(t, energy.Electric)
}

func TestVehicleAdapter_NotFound(t *testing.T) {
	a, _ := newDemoAdapter(t)
	ctx := context.Background()

	info, err := a.GetVehicle(ctx, "Polo", DetailAll)
	assert.NoError(t, err)
	assert.Nil(t, info)

	physical, err := a.GetPhysicalStatus(ctx, "Polo")
	assert.NoError(t, err)
	assert.Nil(t, physical)

	energy, err := a.GetEnergyStatus(ctx, "Polo")
	assert.NoError(t, err)
	assert.Nil(t, energy)

	climate, err := a.GetClimateStatus(ctx, "Polo")
	assert.NoError(t, err)
	assert.Nil(t, climate)

	maintenance, err := a.GetMaintenanceInfo(ctx, "Polo")
	assert.NoError(t, err)
	assert.Nil(t, maintenance)

	position, err := a.GetPosition(ctx, "Polo")
	assert.NoError(t, err)
	assert.Nil(t, position)
}

func TestVehicleAdapter_IdentifiersAreInterchangeable(t *testing.T) {
	a, _ := newDemoAdapter(t)
	ctx := context.Background()

	byName, err := a.GetVehicle(ctx, "id7", DetailAll)
	require.NoError(t, err)
	byVIN, err := a.GetVehicle(ctx, demo.ElectricVIN, DetailAll)
	require.NoError(t, err)
	byPlate, err := a.GetVehicle(ctx, demo.ElectricPlate, DetailAll)
	require.NoError(t, err)

	require.NotNil(t, byName)
	assert.Equal(t, byName, byVIN)
	assert.Equal(t, byName, byPlate)
}

func TestVehicleAdapter_ReadsAfterCommands(t *testing.T) {
	a, _ := newDemoAdapter(t)
	ctx := context.Background()

	target := 19.5
	res := a.StartClimatization(ctx, "T7", &target)
	require.True(t, res.Success, res.Error)

	climate, err := a.GetClimateStatus(ctx, "T7")
	require.NoError(t, err)
	assert.Equal(t, ptr("heating"), climate.State)
	assert.Equal(t, ptr(true), climate.IsActive)
	assert.Equal(t, ptr(19.5), climate.TargetTemperatureC)

	res = a.StopCharging(ctx, "ID7")
	require.True(t, res.Success, res.Error)
	energy, err := a.GetEnergyStatus(ctx, "ID7")
	require.NoError(t, err)
	assert.Equal(t, ptr("ready"), energy.Charging.State)

	res = a.StartWindowHeating(ctx, "ID7")
	require.True(t, res.Success, res.Error)
	climate, err = a.GetClimateStatus(ctx, "ID7")
	require.NoError(t, err)
	assert.Equal(t, ptr("on"), climate.WindowHeating.Front)

	res = a.StopWindowHeating(ctx, "ID7")
	require.True(t, res.Success, res.Error)
	res = a.StopClimatization(ctx, "ID7")
	require.True(t, res.Success, res.Error)
	climate, err = a.GetClimateStatus(ctx, "ID7")
	require.NoError(t, err)
	assert.Equal(t, ptr("off"), climate.WindowHeating.Rear)
	assert.Equal(t, ptr(false), climate.IsActive)

	duration := 5
	assert.True(t, a.FlashLights(ctx, "ID7", &duration).Success)
	assert.True(t, a.HonkAndFlash(ctx, "ID7", nil).Success)
	assert.True(t, a.LockVehicle(ctx, "Tiguan").Success)
}

func TestVehicleAdapter_RecoversFromMalformedVehicle(t *testing.T) {
	a, _ := newDemoAdapter(t)

	out, err := withVehicle(context.Background(), a, "ID7", func(*carconnect.Vehicle) *PositionInfo {
		panic("unexpected shape")
	})
	assert.Nil(t, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedVehicle)
	assert.Contains(t, err.Error(), demo.ElectricVIN)
}

func TestVehicleAdapter_UpstreamUnavailable(t *testing.T) {
	f := &stubFetcher{FetchFunc: func(context.Context) ([]*carconnect.Vehicle, error) {
		return nil, context.DeadlineExceeded
	}}
	a := New(struct {
		Fetcher
		CommandSender
	}{Fetcher: f})

	_, err := a.ListVehicles(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	info, err := a.GetVehicle(context.Background(), "ID7", DetailBasic)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
