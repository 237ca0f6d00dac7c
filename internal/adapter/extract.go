package adapter

import (
	"strings"
	"time"

	"vehicle-status-backend/internal/carconnect"
)

// Extractor turns vendor vehicles into flat status records. Missing data at
// any level becomes a nil field; only the category itself being impossible
// for the vehicle yields a nil record.
type Extractor struct {
	now func() time.Time
}

// NewExtractor returns an Extractor using the wall clock.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// Summary builds the listing entry for a vehicle.
func (e *Extractor) Summary(v *carconnect.Vehicle) VehicleSummary {
	return VehicleSummary{
		VIN:          v.VIN,
		Name:         v.Name.Ptr(),
		Model:        v.Model.Ptr(),
		LicensePlate: v.LicensePlate.Ptr(),
	}
}

// Info describes a vehicle at the requested detail level.
func (e *Extractor) Info(v *carconnect.Vehicle, level DetailLevel) *VehicleInfo {
	info := &VehicleInfo{
		VIN:          v.VIN,
		Name:         v.Name.Ptr(),
		Model:        v.Model.Ptr(),
		Manufacturer: v.Manufacturer.Ptr(),
		Type:         ClassifyVehicle(v),
		LicensePlate: v.LicensePlate.Ptr(),
	}
	if level == DetailBasic || level == "" {
		return info
	}

	info.OdometerKm = kilometers(v.Odometer)
	info.State = v.State.Ptr()
	info.ConnectionState = v.ConnectionState.Ptr()
	if sw := v.GetSoftware(); sw != nil {
		info.SoftwareVersion = sw.Version.Ptr()
	}
	info.ModelYear = v.ModelYear.Ptr()
	if level != DetailAll {
		return info
	}

	info.Physical = e.Physical(v)
	info.Energy = e.Energy(v)
	info.Climate = e.Climate(v)
	info.Maintenance = e.Maintenance(v)
	info.Position = e.Position(v)
	return info
}

// Physical extracts doors, windows, tyres and lights.
func (e *Extractor) Physical(v *carconnect.Vehicle) *PhysicalStatus {
	return &PhysicalStatus{
		Doors:   doorsStatus(v.GetDoors()),
		Windows: windowsStatus(v.GetWindows()),
		Tyres:   tyresStatus(v.GetTyres()),
		Lights:  lightsStatus(v.GetLights()),
	}
}

func doorsStatus(d *carconnect.Doors) *DoorsStatus {
	if d == nil {
		return nil
	}
	return &DoorsStatus{
		Locked:     lockedState(d.LockState),
		Open:       openState(d.OpenState),
		FrontLeft:  doorStatus(d.Door(carconnect.FrontLeft)),
		FrontRight: doorStatus(d.Door(carconnect.FrontRight)),
		RearLeft:   doorStatus(d.Door(carconnect.RearLeft)),
		RearRight:  doorStatus(d.Door(carconnect.RearRight)),
		Trunk:      doorStatus(d.Door(carconnect.Trunk)),
		Bonnet:     doorStatus(d.Door(carconnect.Bonnet)),
	}
}

func doorStatus(d *carconnect.Door) *DoorStatus {
	if d == nil {
		return nil
	}
	return &DoorStatus{
		Locked: lockedState(d.LockState),
		Open:   openState(d.OpenState),
	}
}

func windowsStatus(w *carconnect.Windows) *WindowsStatus {
	if w == nil {
		return nil
	}
	return &WindowsStatus{
		FrontLeft:  windowStatus(w.Window(carconnect.FrontLeft)),
		FrontRight: windowStatus(w.Window(carconnect.FrontRight)),
		RearLeft:   windowStatus(w.Window(carconnect.RearLeft)),
		RearRight:  windowStatus(w.Window(carconnect.RearRight)),
	}
}

func windowStatus(w *carconnect.Window) *WindowStatus {
	if w == nil {
		return nil
	}
	return &WindowStatus{Open: openState(w.OpenState)}
}

func tyresStatus(t *carconnect.Tyres) *TyresStatus {
	if t == nil {
		return nil
	}
	return &TyresStatus{
		FrontLeft:  tyreStatus(t.Tyre(carconnect.FrontLeft)),
		FrontRight: tyreStatus(t.Tyre(carconnect.FrontRight)),
		RearLeft:   tyreStatus(t.Tyre(carconnect.RearLeft)),
		RearRight:  tyreStatus(t.Tyre(carconnect.RearRight)),
	}
}

func tyreStatus(t *carconnect.Tyre) *TyreStatus {
	if t == nil {
		return nil
	}
	status := &TyreStatus{
		Pressure:     t.Pressure.Ptr(),
		TemperatureC: celsius(t.Temperature),
	}
	if unit := t.Pressure.GetUnit(); unit != "" && status.Pressure != nil {
		status.PressureUnit = strPtr(unit)
	}
	return status
}

func lightsStatus(l *carconnect.Lights) *LightsStatus {
	if l == nil {
		return nil
	}
	return &LightsStatus{
		Left:  lightStatus(l.Light(carconnect.Left)),
		Right: lightStatus(l.Light(carconnect.Right)),
	}
}

func lightStatus(l *carconnect.Light) *LightStatus {
	if l == nil {
		return nil
	}
	return &LightStatus{State: lowerState(l.LightState)}
}

// lockedState maps "locked"/"unlocked"; anything else is unknown.
func lockedState(a *carconnect.Attribute[string]) *bool {
	s, ok := a.Get()
	if !ok {
		return nil
	}
	switch strings.ToLower(s) {
	case "locked":
		return boolPtr(true)
	case "unlocked":
		return boolPtr(false)
	}
	return nil
}

// openState maps "open"/"closed"; anything else is unknown.
func openState(a *carconnect.Attribute[string]) *bool {
	s, ok := a.Get()
	if !ok {
		return nil
	}
	switch strings.ToLower(s) {
	case "open", "opened":
		return boolPtr(true)
	case "closed":
		return boolPtr(false)
	}
	return nil
}

func lowerState(a *carconnect.Attribute[string]) *string {
	s, ok := a.Get()
	if !ok {
		return nil
	}
	return strPtr(strings.ToLower(s))
}
