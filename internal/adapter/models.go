package adapter

import (
	"slices"
	"time"
)

// VehicleType is derived once per vehicle from the drive trains it reports.
type VehicleType string

const (
	VehicleTypeElectric   VehicleType = "electric"
	VehicleTypeCombustion VehicleType = "combustion"
	VehicleTypeHybrid     VehicleType = "hybrid"
	VehicleTypeUnknown    VehicleType = "unknown"
)

// HasElectric reports whether the type has a battery drive.
func (t VehicleType) HasElectric() bool {
	return t == VehicleTypeElectric || t == VehicleTypeHybrid
}

// HasCombustion reports whether the type has an engine.
func (t VehicleType) HasCombustion() bool {
	return t == VehicleTypeCombustion || t == VehicleTypeHybrid
}

// VehicleSummary is one entry of the fleet listing.
type VehicleSummary struct {
	VIN          string  `json:"vin"`
	Name         *string `json:"name"`
	Model        *string `json:"model"`
	LicensePlate *string `json:"license_plate"`
}

// DetailLevel selects how much of a vehicle GetVehicle returns.
type DetailLevel string

const (
	DetailBasic DetailLevel = "basic"
	DetailFull  DetailLevel = "full"
	DetailAll   DetailLevel = "all"
)

// VehicleInfo describes one vehicle. Fields beyond the basic set are only
// filled for the detail levels that include them.
type VehicleInfo struct {
	VIN          string      `json:"vin"`
	Name         *string     `json:"name"`
	Model        *string     `json:"model"`
	Manufacturer *string     `json:"manufacturer"`
	Type         VehicleType `json:"type"`
	LicensePlate *string     `json:"license_plate"`

	OdometerKm      *float64 `json:"odometer_km,omitempty"`
	State           *string  `json:"state,omitempty"`
	ConnectionState *string  `json:"connection_state,omitempty"`
	SoftwareVersion *string  `json:"software_version,omitempty"`
	ModelYear       *int     `json:"model_year,omitempty"`

	Physical    *PhysicalStatus  `json:"physical,omitempty"`
	Energy      *EnergyStatus    `json:"energy,omitempty"`
	Climate     *ClimateStatus   `json:"climate,omitempty"`
	Maintenance *MaintenanceInfo `json:"maintenance,omitempty"`
	Position    *PositionInfo    `json:"position,omitempty"`
}

// Component names one part of PhysicalStatus.
type Component string

const (
	ComponentDoors   Component = "doors"
	ComponentWindows Component = "windows"
	ComponentTyres   Component = "tyres"
	ComponentLights  Component = "lights"
)

// AllComponents lists every physical component in output order.
var AllComponents = []Component{ComponentDoors, ComponentWindows, ComponentTyres, ComponentLights}

type PhysicalStatus struct {
	Doors   *DoorsStatus   `json:"doors"`
	Windows *WindowsStatus `json:"windows"`
	Tyres   *TyresStatus   `json:"tyres"`
	Lights  *LightsStatus  `json:"lights"`
}

// Filter returns a copy holding only the requested components.
// An empty list keeps everything.
func (p *PhysicalStatus) Filter(components []Component) *PhysicalStatus {
	if p == nil {
		return nil
	}
	if len(components) == 0 {
		out := *p
		return &out
	}
	out := &PhysicalStatus{}
	if slices.Contains(components, ComponentDoors) {
		out.Doors = p.Doors
	}
	if slices.Contains(components, ComponentWindows) {
		out.Windows = p.Windows
	}
	if slices.Contains(components, ComponentTyres) {
		out.Tyres = p.Tyres
	}
	if slices.Contains(components, ComponentLights) {
		out.Lights = p.Lights
	}
	return out
}

type DoorsStatus struct {
	Locked     *bool       `json:"locked"`
	Open       *bool       `json:"open"`
	FrontLeft  *DoorStatus `json:"front_left"`
	FrontRight *DoorStatus `json:"front_right"`
	RearLeft   *DoorStatus `json:"rear_left"`
	RearRight  *DoorStatus `json:"rear_right"`
	Trunk      *DoorStatus `json:"trunk"`
	Bonnet     *DoorStatus `json:"bonnet"`
}

type DoorStatus struct {
	Locked *bool `json:"locked"`
	Open   *bool `json:"open"`
}

type WindowsStatus struct {
	FrontLeft  *WindowStatus `json:"front_left"`
	FrontRight *WindowStatus `json:"front_right"`
	RearLeft   *WindowStatus `json:"rear_left"`
	RearRight  *WindowStatus `json:"rear_right"`
}

type WindowStatus struct {
	Open *bool `json:"open"`
}

// TyresStatus carries pressures in whatever unit the backend reports.
type TyresStatus struct {
	FrontLeft  *TyreStatus `json:"front_left"`
	FrontRight *TyreStatus `json:"front_right"`
	RearLeft   *TyreStatus `json:"rear_left"`
	RearRight  *TyreStatus `json:"rear_right"`
}

type TyreStatus struct {
	Pressure     *float64 `json:"pressure"`
	PressureUnit *string  `json:"pressure_unit"`
	TemperatureC *float64 `json:"temperature_celsius"`
}

type LightsStatus struct {
	Left  *LightStatus `json:"left"`
	Right *LightStatus `json:"right"`
}

type LightStatus struct {
	State *string `json:"state"`
}

// EnergyStatus is shaped by the vehicle type: Electric is nil for vehicles
// without a battery drive, Combustion is nil without an engine, and Charging
// is nil when the vehicle cannot charge.
type EnergyStatus struct {
	VehicleType VehicleType       `json:"vehicle_type"`
	Range       RangeInfo         `json:"range"`
	Electric    *ElectricStatus   `json:"electric"`
	Combustion  *CombustionStatus `json:"combustion"`
	Charging    *ChargingStatus   `json:"charging"`
}

type RangeInfo struct {
	TotalKm      *float64 `json:"total_km"`
	ElectricKm   *float64 `json:"electric_km"`
	CombustionKm *float64 `json:"combustion_km"`
}

type ElectricStatus struct {
	BatteryLevelPercent *float64 `json:"battery_level_percent"`
	RangeKm             *float64 `json:"range_km"`
	BatteryTemperatureC *float64 `json:"battery_temperature_celsius"`
}

type CombustionStatus struct {
	TankLevelPercent   *float64 `json:"tank_level_percent"`
	RangeKm            *float64 `json:"range_km"`
	FuelType           *string  `json:"fuel_type"`
	AdBlueRangeKm      *float64 `json:"adblue_range_km"`
	AdBlueLevelPercent *float64 `json:"adblue_level_percent"`
}

type ChargingStatus struct {
	IsCharging           *bool    `json:"is_charging"`
	IsPluggedIn          *bool    `json:"is_plugged_in"`
	State                *string  `json:"state"`
	PowerKW              *float64 `json:"power_kw"`
	RemainingTimeMinutes *int     `json:"remaining_time_minutes"`
	TargetSoCPercent     *int     `json:"target_soc_percent"`
	CurrentSoCPercent    *float64 `json:"current_soc_percent"`
}

type ClimateStatus struct {
	State                         *string              `json:"state"`
	IsActive                      *bool                `json:"is_active"`
	TargetTemperatureC            *float64             `json:"target_temperature_celsius"`
	EstimatedTimeRemainingMinutes *int                 `json:"estimated_time_remaining_minutes"`
	WindowHeatingEnabled          *bool                `json:"window_heating_enabled"`
	SeatHeatingEnabled            *bool                `json:"seat_heating_enabled"`
	ClimatizationAtUnlock         *bool                `json:"climatization_at_unlock"`
	WithoutExternalPower          *bool                `json:"without_external_power"`
	WindowHeating                 *WindowHeatingStatus `json:"window_heating"`
}

type WindowHeatingStatus struct {
	Front *string `json:"front"`
	Rear  *string `json:"rear"`
}

// MaintenanceInfo holds service intervals. Oil service fields stay nil for
// vehicles without an engine.
type MaintenanceInfo struct {
	InspectionDueDate       *time.Time `json:"inspection_due_date"`
	InspectionDueDistanceKm *int       `json:"inspection_due_distance_km"`
	OilServiceDueDate       *time.Time `json:"oil_service_due_date"`
	OilServiceDueDistanceKm *int       `json:"oil_service_due_distance_km"`
}

type PositionInfo struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Heading   *float64 `json:"heading"`
}

// ResultCode classifies a CommandResult.
type ResultCode string

const (
	ResultOK             ResultCode = "ok"
	ResultNotFound       ResultCode = "not_found"
	ResultUnsupported    ResultCode = "unsupported"
	ResultUnknownCommand ResultCode = "unknown_command"
	ResultInvalidParams  ResultCode = "invalid_params"
	ResultUpstreamError  ResultCode = "upstream_error"
	ResultNotReady       ResultCode = "not_ready"
)

// CommandResult reports whether the backend acknowledged a command. Success
// does not mean the vehicle carried it out.
type CommandResult struct {
	Success bool       `json:"success"`
	Code    ResultCode `json:"code"`
	Message string     `json:"message"`
	Error   string     `json:"error,omitempty"`
}

func failure(code ResultCode, message string, err error) CommandResult {
	res := CommandResult{Code: code, Message: message, Error: message}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
