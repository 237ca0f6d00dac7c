package adapter

import "errors"

var (
	// ErrUpstreamUnavailable wraps failures to reach the vehicle backend.
	ErrUpstreamUnavailable = errors.New("vehicle backend unavailable")

	// ErrMalformedVehicle is returned when a vehicle object cannot be read at all.
	ErrMalformedVehicle = errors.New("malformed vehicle data")

	// ErrNotReady is returned while the backend is still being initialised.
	ErrNotReady = errors.New("service is still starting, retry in a few seconds")
)
