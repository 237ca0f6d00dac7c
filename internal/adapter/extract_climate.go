package adapter

import (
	"strings"

	"vehicle-status-backend/internal/carconnect"
)

// Climate extracts climatization and window heating. It returns nil when the
// vehicle has neither subsystem.
func (e *Extractor) Climate(v *carconnect.Vehicle) *ClimateStatus {
	c := v.GetClimatization()
	heatings := v.GetWindowHeatings()
	if c == nil && heatings == nil {
		return nil
	}

	status := &ClimateStatus{}
	if c != nil {
		if raw, ok := c.State.Get(); ok {
			state, active := climatizationState(raw)
			status.State = strPtr(state)
			status.IsActive = boolPtr(active)
		}
		status.EstimatedTimeRemainingMinutes = minutesUntil(c.EstimatedDateReached, e.now())

		if settings := c.GetSettings(); settings != nil {
			status.TargetTemperatureC = celsius(settings.TargetTemperature)
			status.WindowHeatingEnabled = settings.WindowHeating.Ptr()
			status.SeatHeatingEnabled = settings.SeatHeating.Ptr()
			status.ClimatizationAtUnlock = settings.ClimatizationAtUnlock.Ptr()
			status.WithoutExternalPower = settings.WithoutExternalPower.Ptr()
		}
	}

	if heatings != nil {
		status.WindowHeating = &WindowHeatingStatus{}
		if h := heatings.Heating(carconnect.Front); h != nil {
			status.WindowHeating.Front = lowerState(h.HeatingState)
		}
		if h := heatings.Heating(carconnect.Rear); h != nil {
			status.WindowHeating.Rear = lowerState(h.HeatingState)
		}
	}
	return status
}

func climatizationState(raw string) (string, bool) {
	switch s := strings.ToLower(raw); s {
	case "off":
		return s, false
	case "heating", "cooling":
		return s, true
	case "ventilation", "ventilating":
		return "ventilation", true
	default:
		return raw, s != "off" && s != "invalid" && s != "unknown"
	}
}

// Maintenance extracts service intervals, or nil when none are reported.
func (e *Extractor) Maintenance(v *carconnect.Vehicle) *MaintenanceInfo {
	m := v.GetMaintenance()
	if m == nil {
		return nil
	}

	info := &MaintenanceInfo{
		InspectionDueDate:       m.InspectionDueAt.Ptr(),
		InspectionDueDistanceKm: wholeKilometers(m.InspectionDueAfter),
	}
	if ClassifyVehicle(v).HasCombustion() {
		info.OilServiceDueDate = m.OilServiceDueAt.Ptr()
		info.OilServiceDueDistanceKm = wholeKilometers(m.OilServiceDueAfter)
	}
	return info
}

// Position extracts the parking position, or nil when the vehicle does not
// report one.
func (e *Extractor) Position(v *carconnect.Vehicle) *PositionInfo {
	p := v.GetPosition()
	if p == nil {
		return nil
	}
	return &PositionInfo{
		Latitude:  p.Latitude.Ptr(),
		Longitude: p.Longitude.Ptr(),
		Heading:   p.Heading.Ptr(),
	}
}
