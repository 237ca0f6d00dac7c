// Package demo provides an in-process vehicle backend with a fixed fleet. It
// backs the `demo` configuration and the tests.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"vehicle-status-backend/internal/carconnect"
)

// Identifiers of the demo fleet.
const (
	ElectricVIN   = "WVWZZZED4SE003938"
	ElectricName  = "ID7"
	ElectricPlate = "M-XY 5678"

	CombustionVIN   = "WV2ZZZSTZNH009136"
	CombustionName  = "T7"
	CombustionPlate = "M-AB 1234"

	HybridVIN  = "WVGZZZ5NZPW000321"
	HybridName = "Tiguan"
)

// Source is a mutable in-memory fleet. Commands change the stored state so a
// later fetch reflects them.
type Source struct {
	mu       sync.Mutex
	vehicles []*carconnect.Vehicle
	fetches  int
	commands []SentCommand
}

// SentCommand records a command received by the demo backend.
type SentCommand struct {
	VIN     string
	Command carconnect.Command
}

// NewSource returns the demo fleet with remaining-time fields relative to now.
func NewSource(now time.Time) *Source {
	return &Source{
		vehicles: []*carconnect.Vehicle{
			electricVehicle(now),
			combustionVehicle(),
			hybridVehicle(),
		},
	}
}

// FetchVehicles returns a deep copy of the fleet.
func (s *Source) FetchVehicles(ctx context.Context) ([]*carconnect.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetches++
	raw, err := json.Marshal(s.vehicles)
	if err != nil {
		return nil, fmt.Errorf("copy demo fleet: %w", err)
	}
	var out []*carconnect.Vehicle
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("copy demo fleet: %w", err)
	}
	return out, nil
}

// SendCommand applies cmd to the stored vehicle.
func (s *Source) SendCommand(ctx context.Context, vin string, cmd carconnect.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var vehicle *carconnect.Vehicle
	for _, v := range s.vehicles {
		if v.VIN == vin {
			vehicle = v
			break
		}
	}
	if vehicle == nil {
		return fmt.Errorf("unknown vehicle %s", vin)
	}
	commands, ok := vehicle.CommandsFor(cmd.Subsystem)
	if !ok || !commands.Contains(cmd.Name) {
		return fmt.Errorf("vehicle %s rejected %s/%s", vin, cmd.Subsystem, cmd.Name)
	}

	s.commands = append(s.commands, SentCommand{VIN: vin, Command: cmd})
	apply(vehicle, cmd)
	return nil
}

// Fetches returns how many times the fleet has been fetched.
func (s *Source) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// Commands returns the commands received so far.
func (s *Source) Commands() []SentCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentCommand(nil), s.commands...)
}

func apply(v *carconnect.Vehicle, cmd carconnect.Command) {
	action := cmd.Action()
	switch cmd.Subsystem {
	case carconnect.SubsystemDoors:
		state := "unlocked"
		if action == "lock" {
			state = "locked"
		}
		v.Doors.LockState = carconnect.Of(state)
		for _, door := range v.Doors.Doors {
			door.LockState = carconnect.Of(state)
		}
	case carconnect.SubsystemClimatization:
		state := "off"
		if action == "start" {
			state = "heating"
			if t, ok := cmd.Args["target_temperature"].(float64); ok && v.Climatization.Settings != nil {
				v.Climatization.Settings.TargetTemperature = carconnect.OfUnit(t, "°C")
			}
		}
		v.Climatization.State = carconnect.Of(state)
	case carconnect.SubsystemCharging:
		state := "readyForCharging"
		if action == "start" {
			state = "charging"
		}
		v.Charging.State = carconnect.Of(state)
	case carconnect.SubsystemWindowHeating:
		state := "off"
		if action == "start" {
			state = "on"
		}
		for _, h := range v.WindowHeatings.Heatings {
			h.HeatingState = carconnect.Of(state)
		}
	}
}

func day(year int, month time.Month, d int) *carconnect.Attribute[time.Time] {
	return carconnect.Of(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
}

func closedDoor() *carconnect.Door {
	return &carconnect.Door{LockState: carconnect.Of("locked"), OpenState: carconnect.Of("closed")}
}

func closedDoors(commands carconnect.Commands) *carconnect.Doors {
	return &carconnect.Doors{
		LockState: carconnect.Of("locked"),
		OpenState: carconnect.Of("closed"),
		Doors: map[string]*carconnect.Door{
			carconnect.FrontLeft:  closedDoor(),
			carconnect.FrontRight: closedDoor(),
			carconnect.RearLeft:   closedDoor(),
			carconnect.RearRight:  closedDoor(),
			carconnect.Trunk:      closedDoor(),
			carconnect.Bonnet:     {OpenState: carconnect.Of("closed")},
		},
		Commands: commands,
	}
}

func closedWindows() *carconnect.Windows {
	w := &carconnect.Windows{Windows: map[string]*carconnect.Window{}}
	for _, key := range []string{carconnect.FrontLeft, carconnect.FrontRight, carconnect.RearLeft, carconnect.RearRight} {
		w.Windows[key] = &carconnect.Window{OpenState: carconnect.Of("closed")}
	}
	return w
}

func tyres(pressure float64) *carconnect.Tyres {
	t := &carconnect.Tyres{Tyres: map[string]*carconnect.Tyre{}}
	for _, key := range []string{carconnect.FrontLeft, carconnect.FrontRight, carconnect.RearLeft, carconnect.RearRight} {
		t.Tyres[key] = &carconnect.Tyre{
			Pressure:    carconnect.OfUnit(pressure, "bar"),
			Temperature: carconnect.OfUnit(291.15, "K"),
		}
	}
	return t
}

func lightsOff() *carconnect.Lights {
	return &carconnect.Lights{Lights: map[string]*carconnect.Light{
		carconnect.Left:  {LightState: carconnect.Of("off")},
		carconnect.Right: {LightState: carconnect.Of("off")},
	}}
}

func windowHeating(front, rear string) *carconnect.WindowHeatings {
	return &carconnect.WindowHeatings{
		Heatings: map[string]*carconnect.WindowHeating{
			carconnect.Front: {HeatingState: carconnect.Of(front)},
			carconnect.Rear:  {HeatingState: carconnect.Of(rear)},
		},
		Commands: carconnect.Commands{carconnect.CommandStartStop},
	}
}

var (
	doorCommands    = carconnect.Commands{carconnect.CommandLockUnlock}
	startStop       = carconnect.Commands{carconnect.CommandStartStop}
	controlCommands = carconnect.Commands{carconnect.CommandHonkAndFlash}
)

func electricVehicle(now time.Time) *carconnect.Vehicle {
	return &carconnect.Vehicle{
		VIN:             ElectricVIN,
		Name:            carconnect.Of(ElectricName),
		Model:           carconnect.Of("ID.7 Tourer"),
		Manufacturer:    carconnect.Of("Volkswagen"),
		LicensePlate:    carconnect.Of(ElectricPlate),
		Type:            carconnect.Of("electric"),
		State:           carconnect.Of("parked"),
		ConnectionState: carconnect.Of("online"),
		Odometer:        carconnect.OfUnit(15234.0, "km"),
		ModelYear:       carconnect.Of(2024),
		Software:        &carconnect.Software{Version: carconnect.Of("ME3.2.1")},
		Doors:           closedDoors(doorCommands),
		Windows:         closedWindows(),
		Tyres:           tyres(2.6),
		Lights:          lightsOff(),
		Drives: &carconnect.Drives{
			TotalRange: carconnect.OfUnit(312.0, "km"),
			Drives: map[string]*carconnect.Drive{
				carconnect.PrimaryDrive: {
					Type:    carconnect.DriveTypeElectric,
					Range:   carconnect.OfUnit(312.0, "km"),
					Level:   carconnect.Of(77.0),
					Battery: &carconnect.DriveBattery{Temperature: carconnect.OfUnit(293.15, "K")},
				},
			},
		},
		Battery: &carconnect.Battery{Level: carconnect.Of(77.0)},
		Charging: &carconnect.Charging{
			State:                carconnect.Of("charging"),
			Power:                carconnect.OfUnit(11.0, "kW"),
			EstimatedDateReached: carconnect.Of(now.Add(95 * time.Minute)),
			Connector:            &carconnect.ChargingConnector{ConnectionState: carconnect.Of("connected")},
			Settings:             &carconnect.ChargingSettings{TargetLevel: carconnect.Of(80.0)},
			Commands:             startStop,
		},
		Climatization: &carconnect.Climatization{
			State:                carconnect.Of("heating"),
			EstimatedDateReached: carconnect.Of(now.Add(12 * time.Minute)),
			Settings: &carconnect.ClimatizationSettings{
				TargetTemperature:     carconnect.OfUnit(295.15, "K"),
				WindowHeating:         carconnect.Of(true),
				SeatHeating:           carconnect.Of(false),
				ClimatizationAtUnlock: carconnect.Of(false),
				WithoutExternalPower:  carconnect.Of(true),
			},
			Commands: startStop,
		},
		WindowHeatings: windowHeating("off", "on"),
		Position: &carconnect.Position{
			Latitude:  carconnect.Of(48.1351),
			Longitude: carconnect.Of(11.5820),
			Heading:   carconnect.Of(270.0),
		},
		Maintenance: &carconnect.Maintenance{
			InspectionDueAt:    day(2026, time.August, 15),
			InspectionDueAfter: carconnect.OfUnit(8500.0, "km"),
		},
		Controls: &carconnect.Controls{Commands: controlCommands},
	}
}

func combustionVehicle() *carconnect.Vehicle {
	return &carconnect.Vehicle{
		VIN:             CombustionVIN,
		Name:            carconnect.Of(CombustionName),
		Model:           carconnect.Of("Transporter 7"),
		Manufacturer:    carconnect.Of("Volkswagen"),
		LicensePlate:    carconnect.Of(CombustionPlate),
		Type:            carconnect.Of("combustion"),
		State:           carconnect.Of("parked"),
		ConnectionState: carconnect.Of("online"),
		Odometer:        carconnect.OfUnit(48211.0, "km"),
		ModelYear:       carconnect.Of(2022),
		Doors:           closedDoors(doorCommands),
		Windows:         closedWindows(),
		Tyres:           tyres(2.9),
		Lights:          lightsOff(),
		Drives: &carconnect.Drives{
			TotalRange: carconnect.OfUnit(650.0, "km"),
			Drives: map[string]*carconnect.Drive{
				carconnect.PrimaryDrive: {
					Type:        carconnect.DriveTypeDiesel,
					Range:       carconnect.OfUnit(650.0, "km"),
					Level:       carconnect.Of(68.0),
					FuelType:    carconnect.Of("diesel"),
					AdBlueRange: carconnect.OfUnit(4500.0, "km"),
					AdBlueLevel: carconnect.Of(70.0),
				},
			},
		},
		Climatization: &carconnect.Climatization{
			State: carconnect.Of("off"),
			Settings: &carconnect.ClimatizationSettings{
				TargetTemperature: carconnect.OfUnit(21.0, "°C"),
			},
			Commands: startStop,
		},
		WindowHeatings: windowHeating("off", "off"),
		Position: &carconnect.Position{
			Latitude:  carconnect.Of(52.5200),
			Longitude: carconnect.Of(13.4050),
			Heading:   carconnect.Of(90.0),
		},
		Maintenance: &carconnect.Maintenance{
			InspectionDueAt:    day(2026, time.May, 20),
			InspectionDueAfter: carconnect.OfUnit(12000.0, "km"),
			OilServiceDueAt:    day(2026, time.April, 10),
			OilServiceDueAfter: carconnect.OfUnit(8000.0, "km"),
		},
		Controls: &carconnect.Controls{Commands: controlCommands},
	}
}

// hybridVehicle has no plate (the backend often omits it) and reports its
// battery level only at vehicle level.
func hybridVehicle() *carconnect.Vehicle {
	return &carconnect.Vehicle{
		VIN:          HybridVIN,
		Name:         carconnect.Of(HybridName),
		Model:        carconnect.Of("Tiguan eHybrid"),
		Manufacturer: carconnect.Of("Volkswagen"),
		LicensePlate: &carconnect.Attribute[string]{},
		Doors:        closedDoors(doorCommands),
		Drives: &carconnect.Drives{
			TotalRange: carconnect.OfUnit(468.0, "km"),
			Drives: map[string]*carconnect.Drive{
				carconnect.PrimaryDrive: {
					Type:  carconnect.DriveTypeGasoline,
					Range: carconnect.OfUnit(420.0, "km"),
					Level: carconnect.Of(55.0),
				},
				carconnect.SecondaryDrive: {
					Type:  carconnect.DriveTypeElectric,
					Range: carconnect.OfUnit(48.0, "km"),
					Level: &carconnect.Attribute[float64]{},
				},
			},
		},
		Battery: &carconnect.Battery{Level: carconnect.Of(62.0)},
		Charging: &carconnect.Charging{
			State:     carconnect.Of("off"),
			Connector: &carconnect.ChargingConnector{ConnectionState: carconnect.Of("disconnected")},
			Commands:  startStop,
		},
		Maintenance: &carconnect.Maintenance{
			InspectionDueAt:    day(2027, time.January, 5),
			InspectionDueAfter: carconnect.OfUnit(20000.0, "km"),
			OilServiceDueAt:    day(2026, time.November, 1),
			OilServiceDueAfter: carconnect.OfUnit(5000.0, "km"),
		},
		Controls: &carconnect.Controls{Commands: controlCommands},
	}
}
