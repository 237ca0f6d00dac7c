package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"vehicle-status-backend/internal/carconnect"
	"vehicle-status-backend/internal/demo"
	"vehicle-status-backend/internal/mocks"
)

func newMockedAdapter(t *testing.T) (*VehicleAdapter, *mocks.MockSource) {
	t.Helper()
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	return New(source, WithTTL(time.Hour), WithClock(func() time.Time { return testNow })), source
}

// expectFleet makes every fetch return a fresh copy of the demo fleet.
func expectFleet(source *mocks.MockSource, times int) {
	fleet := demo.NewSource(testNow)
	source.EXPECT().FetchVehicles(gomock.Any()).DoAndReturn(fleet.FetchVehicles).Times(times)
}

func TestDispatcher_Execute_Success(t *testing.T) {
	tests := []struct {
		name    string
		vehicle string
		command CommandName
		params  Params
		want    carconnect.Command
		message string
	}{
		{
			name:    "lock by name",
			vehicle: "id7",
			command: CommandLock,
			want:    carconnect.Command{Subsystem: "doors", Name: "lock-unlock", Args: map[string]any{"command": "lock"}},
			message: "Vehicle locked",
		},
		{
			name:    "unlock by plate",
			vehicle: demo.CombustionPlate,
			command: CommandUnlock,
			want:    carconnect.Command{Subsystem: "doors", Name: "lock-unlock", Args: map[string]any{"command": "unlock"}},
			message: "Vehicle unlocked",
		},
		{
			name:    "climatization with target temperature",
			vehicle: demo.CombustionVIN,
			command: CommandStartClimatization,
			params:  Params{ParamTargetTemperature: "21.5"},
			want: carconnect.Command{Subsystem: "climatization", Name: "start-stop", Args: map[string]any{
				"command": "start", "target_temperature": 21.5, "target_temperature_unit": "C",
			}},
			message: "Climatization started",
		},
		{
			name:    "charging on hybrid",
			vehicle: demo.HybridName,
			command: CommandStopCharging,
			want:    carconnect.Command{Subsystem: "charging", Name: "start-stop", Args: map[string]any{"command": "stop"}},
			message: "Charging stopped",
		},
		{
			name:    "window heating",
			vehicle: "T7",
			command: CommandStartWindowHeating,
			want:    carconnect.Command{Subsystem: "window_heating", Name: "start-stop", Args: map[string]any{"command": "start"}},
			message: "Window heating started",
		},
		{
			name:    "honk with duration",
			vehicle: "ID7",
			command: CommandHonkAndFlash,
			params:  Params{ParamDurationSeconds: 10.0},
			want:    carconnect.Command{Subsystem: "controls", Name: "honk-and-flash", Args: map[string]any{"command": "honk-and-flash", "duration": 10}},
			message: "Honked and flashed lights",
		},
		{
			name:    "flash without duration",
			vehicle: "ID7",
			command: CommandFlashLights,
			want:    carconnect.Command{Subsystem: "controls", Name: "honk-and-flash", Args: map[string]any{"command": "flash"}},
			message: "Lights flashed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, source := newMockedAdapter(t)
			expectFleet(source, 1)
			vin := Resolve(mustFleet(t), tt.vehicle).VIN
			source.EXPECT().SendCommand(gomock.Any(), vin, tt.want).Return(nil)

			res := a.Execute(context.Background(), tt.vehicle, tt.command, tt.params)
			assert.True(t, res.Success)
			assert.Equal(t, ResultOK, res.Code)
			assert.Equal(t, tt.message, res.Message)
			assert.Empty(t, res.Error)
		})
	}
}

func mustFleet(t *testing.T) []*carconnect.Vehicle {
	t.Helper()
	vehicles, err := demo.NewSource(testNow).FetchVehicles(context.Background())
	require.NoError(t, err)
	return vehicles
}

func TestDispatcher_Execute_Failures(t *testing.T) {
	tests := []struct {
		name    string
		vehicle string
		command CommandName
		params  Params
		fetches int
		code    ResultCode
		message string
	}{
		{
			name: "charging on combustion vehicle", vehicle: "T7", command: CommandStartCharging,
			fetches: 1, code: ResultUnsupported, message: "combustion vehicle and does not support charging",
		},
		{
			name: "missing subsystem", vehicle: "Tiguan", command: CommandStartClimatization,
			fetches: 1, code: ResultUnsupported, message: "does not support climatization commands",
		},
		{
			name: "unknown vehicle", vehicle: "Polo", command: CommandLock,
			fetches: 1, code: ResultNotFound, message: "Vehicle Polo not found",
		},
		{
			name: "unknown command", vehicle: "ID7", command: "open_sunroof",
			code: ResultUnknownCommand, message: `Unknown command "open_sunroof"`,
		},
		{
			name: "invalid temperature", vehicle: "ID7", command: CommandStartClimatization,
			params: Params{ParamTargetTemperature: "warm"}, fetches: 1,
			code:   ResultInvalidParams, message: "Invalid parameters for start_climatization",
		},
		{
			name: "non-finite temperature", vehicle: "ID7", command: CommandStartClimatization,
			params: Params{ParamTargetTemperature: "NaN"}, fetches: 1,
			code:   ResultInvalidParams, message: "Invalid parameters for start_climatization",
		},
		{
			name: "fractional duration", vehicle: "ID7", command: CommandFlashLights,
			params: Params{ParamDurationSeconds: 2.5}, fetches: 1,
			code:   ResultInvalidParams, message: "Invalid parameters for flash_lights",
		},
		{
			name: "duration beyond int range", vehicle: "ID7", command: CommandFlashLights,
			params: Params{ParamDurationSeconds: 1e19}, fetches: 1,
			code:   ResultInvalidParams, message: "Invalid parameters for flash_lights",
		},
		{
			name: "unknown vehicle with invalid params", vehicle: "Polo", command: CommandFlashLights,
			params: Params{ParamDurationSeconds: "Inf"}, fetches: 1,
			code:   ResultNotFound, message: "Vehicle Polo not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, source := newMockedAdapter(t)
			expectFleet(source, tt.fetches)
			source.EXPECT().SendCommand(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			res := a.Execute(context.Background(), tt.vehicle, tt.command, tt.params)
			assert.False(t, res.Success)
			assert.Equal(t, tt.code, res.Code)
			assert.Contains(t, res.Message, tt.message)
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestDispatcher_Execute_UpstreamErrors(t *testing.T) {
	t.Run("command rejected", func(t *testing.T) {
		a, source := newMockedAdapter(t)
		expectFleet(source, 1)
		source.EXPECT().SendCommand(gomock.Any(), demo.ElectricVIN, gomock.Any()).Return(errors.New("vehicle offline"))

		res := a.LockVehicle(context.Background(), "ID7")
		assert.False(t, res.Success)
		assert.Equal(t, ResultUpstreamError, res.Code)
		assert.Equal(t, "vehicle offline", res.Error)
	})

	t.Run("vehicle list unavailable", func(t *testing.T) {
		a, source := newMockedAdapter(t)
		source.EXPECT().FetchVehicles(gomock.Any()).Return(nil, errors.New("timeout"))

		res := a.LockVehicle(context.Background(), "ID7")
		assert.False(t, res.Success)
		assert.Equal(t, ResultUpstreamError, res.Code)
		assert.Contains(t, res.Error, "timeout")
	})
}

func TestDispatcher_Execute_IgnoresPlugState(t *testing.T) {
	a, source := newMockedAdapter(t)
	fleet := demo.NewSource(testNow)
	source.EXPECT().FetchVehicles(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]*carconnect.Vehicle, error) {
		vehicles, err := fleet.FetchVehicles(ctx)
		for _, v := range vehicles {
			if v.VIN == demo.ElectricVIN {
				v.Charging.State = carconnect.Of("off")
				v.Charging.Connector.ConnectionState = carconnect.Of("disconnected")
			}
		}
		return vehicles, err
	})
	source.EXPECT().SendCommand(gomock.Any(), demo.ElectricVIN, gomock.Any()).Return(nil)

	energy, err := a.GetEnergyStatus(context.Background(), "ID7")
	require.NoError(t, err)
	assert.Equal(t, ptr(false), energy.Charging.IsPluggedIn)

	res := a.StartCharging(context.Background(), "ID7")
	assert.True(t, res.Success)
}

func TestDispatcher_Execute_InvalidatesCache(t *testing.T) {
	outcomes := []struct {
		name string
		run  func(a *VehicleAdapter) CommandResult
	}{
		{"success", func(a *VehicleAdapter) CommandResult { return a.LockVehicle(context.Background(), "ID7") }},
		{"unsupported", func(a *VehicleAdapter) CommandResult { return a.StartCharging(context.Background(), "T7") }},
		{"not found", func(a *VehicleAdapter) CommandResult { return a.LockVehicle(context.Background(), "Polo") }},
	}

	for _, tt := range outcomes {
		t.Run(tt.name, func(t *testing.T) {
			a, source := newMockedAdapter(t)
			expectFleet(source, 2)
			source.EXPECT().SendCommand(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			_, err := a.ListVehicles(context.Background())
			require.NoError(t, err)
			tt.run(a)
			assert.False(t, a.Cache().State().Fresh)

			_, err = a.ListVehicles(context.Background())
			require.NoError(t, err)
		})
	}
}
