package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-status-backend/internal/carconnect"
	"vehicle-status-backend/internal/demo"
)

func TestExtractor_Climate(t *testing.T) {
	e := testExtractor()

	t.Run("electric vehicle heating", func(t *testing.T) {
		c := e.Climate(demoVehicle(t, demo.ElectricVIN))
		require.NotNil(t, c)
		assert.Equal(t, ptr("heating"), c.State)
		assert.Equal(t, ptr(true), c.IsActive)
		assert.Equal(t, ptr(22.0), c.TargetTemperatureC)
		assert.Equal(t, ptr(12), c.EstimatedTimeRemainingMinutes)
		assert.Equal(t, ptr(true), c.WindowHeatingEnabled)
		assert.Equal(t, ptr(false), c.SeatHeatingEnabled)
		assert.Equal(t, ptr(true), c.WithoutExternalPower)
		require.NotNil(t, c.WindowHeating)
		assert.Equal(t, ptr("off"), c.WindowHeating.Front)
		assert.Equal(t, ptr("on"), c.WindowHeating.Rear)
	})

	t.Run("combustion vehicle off", func(t *testing.T) {
		c := e.Climate(demoVehicle(t, demo.CombustionVIN))
		require.NotNil(t, c)
		assert.Equal(t, ptr("off"), c.State)
		assert.Equal(t, ptr(false), c.IsActive)
		assert.Equal(t, ptr(21.0), c.TargetTemperatureC)
		assert.Nil(t, c.EstimatedTimeRemainingMinutes)
		assert.Nil(t, c.SeatHeatingEnabled)
	})

	t.Run("no climate subsystems", func(t *testing.T) {
		assert.Nil(t, e.Climate(demoVehicle(t, demo.HybridVIN)))
	})

	t.Run("window heating only", func(t *testing.T) {
		v := &carconnect.Vehicle{VIN: "X", WindowHeatings: &carconnect.WindowHeatings{
			Heatings: map[string]*carconnect.WindowHeating{carconnect.Front: {HeatingState: carconnect.Of("ON")}},
		}}
		c := e.Climate(v)
		require.NotNil(t, c)
		assert.Nil(t, c.State)
		assert.Nil(t, c.IsActive)
		assert.Equal(t, ptr("on"), c.WindowHeating.Front)
		assert.Nil(t, c.WindowHeating.Rear)
	})
}

func TestClimatizationState(t *testing.T) {
	tests := []struct {
		raw    string
		state  string
		active bool
	}{
		{"off", "off", false},
		{"heating", "heating", true},
		{"Cooling", "cooling", true},
		{"ventilation", "ventilation", true},
		{"invalid", "invalid", false},
		{"defrosting", "defrosting", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			state, active := climatizationState(tt.raw)
			assert.Equal(t, tt.state, state)
			assert.Equal(t, tt.active, active)
		})
	}
}

func TestExtractor_Maintenance(t *testing.T) {
	e := testExtractor()

	combustion := e.Maintenance(demoVehicle(t, demo.CombustionVIN))
	require.NotNil(t, combustion)
	assert.True(t, time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC).Equal(*combustion.InspectionDueDate))
	assert.Equal(t, ptr(12000), combustion.InspectionDueDistanceKm)
	assert.True(t, time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC).Equal(*combustion.OilServiceDueDate))
	assert.Equal(t, ptr(8000), combustion.OilServiceDueDistanceKm)

	electric := e.Maintenance(demoVehicle(t, demo.ElectricVIN))
	require.NotNil(t, electric)
	assert.Equal(t, ptr(8500), electric.InspectionDueDistanceKm)
	assert.Nil(t, electric.OilServiceDueDate)
	assert.Nil(t, electric.OilServiceDueDistanceKm)

	hybrid := e.Maintenance(demoVehicle(t, demo.HybridVIN))
	require.NotNil(t, hybrid)
	assert.Equal(t, ptr(5000), hybrid.OilServiceDueDistanceKm)

	assert.Nil(t, e.Maintenance(&carconnect.Vehicle{VIN: "X"}))
}

func TestExtractor_Position(t *testing.T) {
	e := testExtractor()

	p := e.Position(demoVehicle(t, demo.ElectricVIN))
	require.NotNil(t, p)
	assert.Equal(t, ptr(48.1351), p.Latitude)
	assert.Equal(t, ptr(11.5820), p.Longitude)
	assert.Equal(t, ptr(270.0), p.Heading)

	assert.Nil(t, e.Position(demoVehicle(t, demo.HybridVIN)))

	partial := e.Position(&carconnect.Vehicle{VIN: "X", Position: &carconnect.Position{Latitude: carconnect.Of(1.5)}})
	require.NotNil(t, partial)
	assert.Equal(t, ptr(1.5), partial.Latitude)
	assert.Nil(t, partial.Longitude)
}
