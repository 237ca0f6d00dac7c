package adapter

import (
	"strings"

	"vehicle-status-backend/internal/carconnect"
)

// ClassifyVehicle derives the vehicle type from the drive trains present on
// the vehicle. The type declared by the backend is only used when no drive
// data was reported at all.
func ClassifyVehicle(v *carconnect.Vehicle) VehicleType {
	drives := v.GetDrives()
	electric := drives.Electric() != nil
	combustion := drives.Combustion() != nil

	switch {
	case electric && combustion:
		return VehicleTypeHybrid
	case electric:
		return VehicleTypeElectric
	case combustion:
		return VehicleTypeCombustion
	}

	if v == nil {
		return VehicleTypeUnknown
	}
	declared, _ := v.Type.Get()
	switch strings.ToLower(declared) {
	case "electric", "bev":
		return VehicleTypeElectric
	case "hybrid", "phev", "plugin_hybrid":
		return VehicleTypeHybrid
	case "combustion", "gasoline", "diesel":
		return VehicleTypeCombustion
	}
	return VehicleTypeUnknown
}
