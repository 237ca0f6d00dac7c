package adapter

import (
	"strings"

	"vehicle-status-backend/internal/carconnect"
)

// Energy extracts range, battery, fuel and charging data. Which sub-records
// exist depends on the vehicle type; within them, fields the backend did not
// report are nil.
func (e *Extractor) Energy(v *carconnect.Vehicle) *EnergyStatus {
	vt := ClassifyVehicle(v)
	drives := v.GetDrives()

	status := &EnergyStatus{VehicleType: vt}
	if drives != nil {
		status.Range.TotalKm = kilometers(drives.TotalRange)
	}

	if vt.HasElectric() {
		drive := drives.Electric()
		status.Electric = &ElectricStatus{
			BatteryLevelPercent: stateOfCharge(v),
		}
		if drive != nil {
			status.Electric.RangeKm = kilometers(drive.Range)
			if battery := drive.GetBattery(); battery != nil {
				status.Electric.BatteryTemperatureC = celsius(battery.Temperature)
			}
		}
		status.Range.ElectricKm = status.Electric.RangeKm
		status.Charging = e.charging(v)
	}

	if vt.HasCombustion() {
		status.Combustion = &CombustionStatus{}
		if drive := drives.Combustion(); drive != nil {
			status.Combustion.TankLevelPercent = drive.Level.Ptr()
			status.Combustion.RangeKm = kilometers(drive.Range)
			status.Combustion.AdBlueRangeKm = kilometers(drive.AdBlueRange)
			status.Combustion.AdBlueLevelPercent = drive.AdBlueLevel.Ptr()
			if fuel, ok := drive.FuelType.Get(); ok {
				status.Combustion.FuelType = strPtr(fuel)
			} else if drive.Type != "" {
				status.Combustion.FuelType = strPtr(drive.Type)
			}
		}
		status.Range.CombustionKm = status.Combustion.RangeKm
	}

	if status.Range.TotalKm == nil && vt != VehicleTypeHybrid {
		// Single drive vehicles: the drive range is the total range.
		if status.Range.ElectricKm != nil {
			status.Range.TotalKm = status.Range.ElectricKm
		} else if status.Range.CombustionKm != nil {
			status.Range.TotalKm = status.Range.CombustionKm
		}
	}
	return status
}

// stateOfCharge prefers the electric drive level and falls back to the
// vehicle-level battery reading; the backend fills them inconsistently.
func stateOfCharge(v *carconnect.Vehicle) *float64 {
	if drive := v.GetDrives().Electric(); drive != nil {
		if soc := drive.Level.Ptr(); soc != nil {
			return soc
		}
	}
	if battery := v.GetBattery(); battery != nil {
		return battery.Level.Ptr()
	}
	return nil
}

func (e *Extractor) charging(v *carconnect.Vehicle) *ChargingStatus {
	c := v.GetCharging()
	if c == nil {
		return nil
	}

	status := &ChargingStatus{
		PowerKW:              c.Power.Ptr(),
		RemainingTimeMinutes: minutesUntil(c.EstimatedDateReached, e.now()),
		CurrentSoCPercent:    stateOfCharge(v),
	}

	if raw, ok := c.State.Get(); ok {
		state, charging := chargingState(raw)
		status.State = strPtr(state)
		status.IsCharging = charging
	}

	if connector := c.GetConnector(); connector != nil {
		if cs, ok := connector.ConnectionState.Get(); ok {
			switch strings.ToLower(cs) {
			case "connected":
				status.IsPluggedIn = boolPtr(true)
			case "disconnected":
				status.IsPluggedIn = boolPtr(false)
			}
		}
	}

	if settings := c.GetSettings(); settings != nil {
		status.TargetSoCPercent = wholePercent(settings.TargetLevel)
	}
	return status
}

// chargingState normalises the backend charging state. Unknown states are
// passed through with an unknown charging flag.
func chargingState(raw string) (string, *bool) {
	switch strings.ToLower(raw) {
	case "charging":
		return "charging", boolPtr(true)
	case "ready", "readyforcharging", "ready_for_charging":
		return "ready", boolPtr(false)
	case "off", "notreadyforcharging":
		return "off", boolPtr(false)
	case "error":
		return "error", boolPtr(false)
	}
	return raw, nil
}
