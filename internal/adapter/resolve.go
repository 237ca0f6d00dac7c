package adapter

import (
	"strings"

	"vehicle-status-backend/internal/carconnect"
)

// Resolve finds the vehicle an identifier refers to, or returns nil.
//
// Display names are tried first (ignoring case), then VINs (exact), then
// license plates (ignoring case). The first category with a match wins, so a
// name always shadows a colliding VIN or plate of another vehicle.
func Resolve(vehicles []*carconnect.Vehicle, identifier string) *carconnect.Vehicle {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return nil
	}

	for _, v := range vehicles {
		if v == nil {
			continue
		}
		if name, ok := v.Name.Get(); ok && strings.EqualFold(name, id) {
			return v
		}
	}
	for _, v := range vehicles {
		if v != nil && v.VIN != "" && v.VIN == id {
			return v
		}
	}
	for _, v := range vehicles {
		if v == nil {
			continue
		}
		if plate, ok := v.LicensePlate.Get(); ok && strings.EqualFold(plate, id) {
			return v
		}
	}
	return nil
}
