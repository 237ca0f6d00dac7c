package adapter

import (
	"math"
	"strings"
	"time"

	"vehicle-status-backend/internal/carconnect"
)

const kmPerMile = 1.609344

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// celsius reads a temperature and converts Kelvin or Fahrenheit readings.
func celsius(a *carconnect.Attribute[float64]) *float64 {
	v, ok := a.Get()
	if !ok {
		return nil
	}
	switch strings.TrimPrefix(strings.ToUpper(a.GetUnit()), "°") {
	case "K":
		v -= 273.15
	case "F":
		v = (v - 32) * 5 / 9
	}
	v = round2(v)
	return &v
}

// kilometers reads a distance and converts miles.
func kilometers(a *carconnect.Attribute[float64]) *float64 {
	v, ok := a.Get()
	if !ok {
		return nil
	}
	switch strings.ToLower(a.GetUnit()) {
	case "mi", "mile", "miles":
		v = round2(v * kmPerMile)
	}
	return &v
}

func wholeKilometers(a *carconnect.Attribute[float64]) *int {
	km := kilometers(a)
	if km == nil {
		return nil
	}
	n := int(math.Round(*km))
	return &n
}

func wholePercent(a *carconnect.Attribute[float64]) *int {
	v, ok := a.Get()
	if !ok {
		return nil
	}
	n := int(math.Round(v))
	return &n
}

// minutesUntil returns the whole minutes from now until the reported time,
// or nil when the time is missing or already passed.
func minutesUntil(a *carconnect.Attribute[time.Time], now time.Time) *int {
	at, ok := a.Get()
	if !ok || !at.After(now) {
		return nil
	}
	n := int(at.Sub(now).Minutes())
	return &n
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
