package model

// Vehicle is a registered vehicle. Registration happens once; a duplicate
// registration is rejected by the registry, never treated as an update.
//
// Fields:
//  ID            - unique vehicle identifier (e.g. a plate number).
//  PreferredZone - zone the driver usually requests.
//  Type          - free-form vehicle category, defaults to "Car".
type Vehicle struct {
	ID            string
	PreferredZone string
	Type          string
}

// NewVehicle creates a vehicle, defaulting the type to "Car".
func NewVehicle(id, preferredZone, vehicleType string) *Vehicle {
	if vehicleType == "" {
		vehicleType = "Car"
	}
	return &Vehicle{ID: id, PreferredZone: preferredZone, Type: vehicleType}
}
