// Package carconnect models the vehicle object graph reported by the vendor
// telematics backend. Every subsystem and every measured value may be missing,
// so all pointer types here come with accessors that are safe on nil receivers.
package carconnect

import (
	"slices"
	"time"
)

// Attribute is a single measured value. Value is nil when the backend knows the
// field but has not reported it.
type Attribute[T any] struct {
	Value       *T         `json:"value"`
	Unit        string     `json:"unit,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Of returns an attribute holding v.
func Of[T any](v T) *Attribute[T] {
	return &Attribute[T]{Value: &v}
}

// OfUnit returns an attribute holding v measured in unit.
func OfUnit[T any](v T, unit string) *Attribute[T] {
	return &Attribute[T]{Value: &v, Unit: unit}
}

// Get returns the value and whether it was reported.
func (a *Attribute[T]) Get() (T, bool) {
	var zero T
	if a == nil || a.Value == nil {
		return zero, false
	}
	return *a.Value, true
}

// Ptr returns a copy of the value, or nil when it was not reported.
func (a *Attribute[T]) Ptr() *T {
	if a == nil || a.Value == nil {
		return nil
	}
	v := *a.Value
	return &v
}

// GetUnit returns the reported unit, or "" when absent.
func (a *Attribute[T]) GetUnit() string {
	if a == nil {
		return ""
	}
	return a.Unit
}

// Set replaces the value.
func (a *Attribute[T]) Set(v T) {
	if a == nil {
		return
	}
	a.Value = &v
}

// Commands lists the command names a subsystem accepts.
type Commands []string

// Contains reports whether name is accepted.
func (c Commands) Contains(name string) bool {
	return slices.Contains(c, name)
}

// Command names understood by the vendor backend.
const (
	CommandLockUnlock   = "lock-unlock"
	CommandStartStop    = "start-stop"
	CommandHonkAndFlash = "honk-and-flash"
)

// Subsystems that accept commands.
const (
	SubsystemDoors         = "doors"
	SubsystemClimatization = "climatization"
	SubsystemCharging      = "charging"
	SubsystemWindowHeating = "window_heating"
	SubsystemControls      = "controls"
)

// Command is a request sent to one subsystem of a vehicle.
type Command struct {
	Subsystem string         `json:"-"`
	Name      string         `json:"-"`
	Args      map[string]any `json:"args"`
}

// Action returns the "command" argument, e.g. "lock" or "start".
func (c Command) Action() string {
	s, _ := c.Args["command"].(string)
	return s
}
