package carconnect

import "time"

// Drive types reported in Drive.Type.
const (
	DriveTypeElectric = "electric"
	DriveTypeGasoline = "gasoline"
	DriveTypeDiesel   = "diesel"
	DriveTypeCNG      = "cng"
	DriveTypeLPG      = "lpg"
)

// Well-known keys of the per-part maps.
const (
	FrontLeft  = "frontLeft"
	FrontRight = "frontRight"
	RearLeft   = "rearLeft"
	RearRight  = "rearRight"
	Trunk      = "trunk"
	Bonnet     = "bonnet"
	Front      = "front"
	Rear       = "rear"
	Left       = "left"
	Right      = "right"

	PrimaryDrive   = "primary"
	SecondaryDrive = "secondary"
)

// Vehicle is one car as reported by the vendor backend.
type Vehicle struct {
	VIN             string              `json:"vin"`
	Name            *Attribute[string]  `json:"name,omitempty"`
	Model           *Attribute[string]  `json:"model,omitempty"`
	Manufacturer    *Attribute[string]  `json:"manufacturer,omitempty"`
	LicensePlate    *Attribute[string]  `json:"licensePlate,omitempty"`
	Type            *Attribute[string]  `json:"type,omitempty"`
	State           *Attribute[string]  `json:"state,omitempty"`
	ConnectionState *Attribute[string]  `json:"connectionState,omitempty"`
	Odometer        *Attribute[float64] `json:"odometer,omitempty"`
	ModelYear       *Attribute[int]     `json:"modelYear,omitempty"`
	Software        *Software           `json:"software,omitempty"`

	Doors          *Doors          `json:"doors,omitempty"`
	Windows        *Windows        `json:"windows,omitempty"`
	Tyres          *Tyres          `json:"tyres,omitempty"`
	Lights         *Lights         `json:"lights,omitempty"`
	Drives         *Drives         `json:"drives,omitempty"`
	Battery        *Battery        `json:"battery,omitempty"`
	Charging       *Charging       `json:"charging,omitempty"`
	Climatization  *Climatization  `json:"climatization,omitempty"`
	WindowHeatings *WindowHeatings `json:"windowHeating,omitempty"`
	Position       *Position       `json:"position,omitempty"`
	Maintenance    *Maintenance    `json:"maintenance,omitempty"`
	Controls       *Controls       `json:"controls,omitempty"`
}

func (v *Vehicle) GetDoors() *Doors {
	if v == nil {
		return nil
	}
	return v.Doors
}

func (v *Vehicle) GetWindows() *Windows {
	if v == nil {
		return nil
	}
	return v.Windows
}

func (v *Vehicle) GetTyres() *Tyres {
	if v == nil {
		return nil
	}
	return v.Tyres
}

func (v *Vehicle) GetLights() *Lights {
	if v == nil {
		return nil
	}
	return v.Lights
}

func (v *Vehicle) GetDrives() *Drives {
	if v == nil {
		return nil
	}
	return v.Drives
}

func (v *Vehicle) GetBattery() *Battery {
	if v == nil {
		return nil
	}
	return v.Battery
}

func (v *Vehicle) GetCharging() *Charging {
	if v == nil {
		return nil
	}
	return v.Charging
}

func (v *Vehicle) GetClimatization() *Climatization {
	if v == nil {
		return nil
	}
	return v.Climatization
}

func (v *Vehicle) GetWindowHeatings() *WindowHeatings {
	if v == nil {
		return nil
	}
	return v.WindowHeatings
}

func (v *Vehicle) GetPosition() *Position {
	if v == nil {
		return nil
	}
	return v.Position
}

func (v *Vehicle) GetMaintenance() *Maintenance {
	if v == nil {
		return nil
	}
	return v.Maintenance
}

func (v *Vehicle) GetControls() *Controls {
	if v == nil {
		return nil
	}
	return v.Controls
}

func (v *Vehicle) GetSoftware() *Software {
	if v == nil {
		return nil
	}
	return v.Software
}

// CommandsFor returns the commands accepted by the named subsystem and whether
// that subsystem exists on the vehicle at all.
func (v *Vehicle) CommandsFor(subsystem string) (Commands, bool) {
	switch subsystem {
	case SubsystemDoors:
		if d := v.GetDoors(); d != nil {
			return d.Commands, true
		}
	case SubsystemClimatization:
		if c := v.GetClimatization(); c != nil {
			return c.Commands, true
		}
	case SubsystemCharging:
		if c := v.GetCharging(); c != nil {
			return c.Commands, true
		}
	case SubsystemWindowHeating:
		if w := v.GetWindowHeatings(); w != nil {
			return w.Commands, true
		}
	case SubsystemControls:
		if c := v.GetControls(); c != nil {
			return c.Commands, true
		}
	}
	return nil, false
}

type Software struct {
	Version *Attribute[string] `json:"version,omitempty"`
}

// Doors holds the aggregate lock state and the individual doors.
type Doors struct {
	LockState *Attribute[string] `json:"lockState,omitempty"`
	OpenState *Attribute[string] `json:"openState,omitempty"`
	Doors     map[string]*Door   `json:"doors,omitempty"`
	Commands  Commands           `json:"commands,omitempty"`
}

// Door returns the door with the given key, or nil.
func (d *Doors) Door(key string) *Door {
	if d == nil {
		return nil
	}
	return d.Doors[key]
}

type Door struct {
	LockState *Attribute[string] `json:"lockState,omitempty"`
	OpenState *Attribute[string] `json:"openState,omitempty"`
}

type Windows struct {
	Windows map[string]*Window `json:"windows,omitempty"`
}

func (w *Windows) Window(key string) *Window {
	if w == nil {
		return nil
	}
	return w.Windows[key]
}

type Window struct {
	OpenState *Attribute[string] `json:"openState,omitempty"`
}

type Tyres struct {
	Tyres map[string]*Tyre `json:"tyres,omitempty"`
}

func (t *Tyres) Tyre(key string) *Tyre {
	if t == nil {
		return nil
	}
	return t.Tyres[key]
}

type Tyre struct {
	Pressure    *Attribute[float64] `json:"pressure,omitempty"`
	Temperature *Attribute[float64] `json:"temperature,omitempty"`
}

type Lights struct {
	Lights map[string]*Light `json:"lights,omitempty"`
}

func (l *Lights) Light(key string) *Light {
	if l == nil {
		return nil
	}
	return l.Lights[key]
}

type Light struct {
	LightState *Attribute[string] `json:"lightState,omitempty"`
}

// Drives holds up to two drive trains keyed by PrimaryDrive and SecondaryDrive.
type Drives struct {
	TotalRange *Attribute[float64] `json:"totalRange,omitempty"`
	Drives     map[string]*Drive   `json:"drives,omitempty"`
}

// Drive returns the drive with the given key, or nil.
func (d *Drives) Drive(key string) *Drive {
	if d == nil {
		return nil
	}
	return d.Drives[key]
}

// Electric returns the first electric drive, primary before secondary.
func (d *Drives) Electric() *Drive {
	for _, key := range []string{PrimaryDrive, SecondaryDrive} {
		if drive := d.Drive(key); drive.IsElectric() {
			return drive
		}
	}
	return nil
}

// Combustion returns the first combustion drive, primary before secondary.
func (d *Drives) Combustion() *Drive {
	for _, key := range []string{PrimaryDrive, SecondaryDrive} {
		if drive := d.Drive(key); drive.IsCombustion() {
			return drive
		}
	}
	return nil
}

// Drive is one drive train: an electric motor with its battery, or an engine
// with its tank.
type Drive struct {
	Type        string              `json:"type"`
	Range       *Attribute[float64] `json:"range,omitempty"`
	Level       *Attribute[float64] `json:"level,omitempty"`
	Battery     *DriveBattery       `json:"battery,omitempty"`
	FuelType    *Attribute[string]  `json:"fuelType,omitempty"`
	AdBlueRange *Attribute[float64] `json:"adBlueRange,omitempty"`
	AdBlueLevel *Attribute[float64] `json:"adBlueLevel,omitempty"`
}

func (d *Drive) IsElectric() bool {
	return d != nil && d.Type == DriveTypeElectric
}

func (d *Drive) IsCombustion() bool {
	if d == nil {
		return false
	}
	switch d.Type {
	case DriveTypeGasoline, DriveTypeDiesel, DriveTypeCNG, DriveTypeLPG, "combustion", "petrol":
		return true
	}
	return false
}

func (d *Drive) GetBattery() *DriveBattery {
	if d == nil {
		return nil
	}
	return d.Battery
}

type DriveBattery struct {
	Temperature *Attribute[float64] `json:"temperature,omitempty"`
}

// Battery is the vehicle-level high voltage battery reading.
type Battery struct {
	Level *Attribute[float64] `json:"level,omitempty"`
}

type Charging struct {
	State                *Attribute[string]    `json:"state,omitempty"`
	Power                *Attribute[float64]   `json:"power,omitempty"`
	EstimatedDateReached *Attribute[time.Time] `json:"estimatedDateReached,omitempty"`
	Connector            *ChargingConnector    `json:"connector,omitempty"`
	Settings             *ChargingSettings     `json:"settings,omitempty"`
	Commands             Commands              `json:"commands,omitempty"`
}

func (c *Charging) GetConnector() *ChargingConnector {
	if c == nil {
		return nil
	}
	return c.Connector
}

func (c *Charging) GetSettings() *ChargingSettings {
	if c == nil {
		return nil
	}
	return c.Settings
}

type ChargingConnector struct {
	ConnectionState *Attribute[string] `json:"connectionState,omitempty"`
}

type ChargingSettings struct {
	TargetLevel *Attribute[float64] `json:"targetLevel,omitempty"`
}

type Climatization struct {
	State                *Attribute[string]     `json:"state,omitempty"`
	EstimatedDateReached *Attribute[time.Time]  `json:"estimatedDateReached,omitempty"`
	Settings             *ClimatizationSettings `json:"settings,omitempty"`
	Commands             Commands               `json:"commands,omitempty"`
}

func (c *Climatization) GetSettings() *ClimatizationSettings {
	if c == nil {
		return nil
	}
	return c.Settings
}

type ClimatizationSettings struct {
	TargetTemperature     *Attribute[float64] `json:"targetTemperature,omitempty"`
	WindowHeating         *Attribute[bool]    `json:"windowHeating,omitempty"`
	SeatHeating           *Attribute[bool]    `json:"seatHeating,omitempty"`
	ClimatizationAtUnlock *Attribute[bool]    `json:"climatizationAtUnlock,omitempty"`
	WithoutExternalPower  *Attribute[bool]    `json:"withoutExternalPower,omitempty"`
}

type WindowHeatings struct {
	Heatings map[string]*WindowHeating `json:"windows,omitempty"`
	Commands Commands                  `json:"commands,omitempty"`
}

func (w *WindowHeatings) Heating(key string) *WindowHeating {
	if w == nil {
		return nil
	}
	return w.Heatings[key]
}

type WindowHeating struct {
	HeatingState *Attribute[string] `json:"heatingState,omitempty"`
}

type Position struct {
	Latitude  *Attribute[float64] `json:"latitude,omitempty"`
	Longitude *Attribute[float64] `json:"longitude,omitempty"`
	Heading   *Attribute[float64] `json:"heading,omitempty"`
}

type Maintenance struct {
	InspectionDueAt    *Attribute[time.Time] `json:"inspectionDueAt,omitempty"`
	InspectionDueAfter *Attribute[float64]   `json:"inspectionDueAfter,omitempty"`
	OilServiceDueAt    *Attribute[time.Time] `json:"oilServiceDueAt,omitempty"`
	OilServiceDueAfter *Attribute[float64]   `json:"oilServiceDueAfter,omitempty"`
}

type Controls struct {
	Commands Commands `json:"commands,omitempty"`
}
