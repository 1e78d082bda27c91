// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence.
package driverrepo

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// The current delivery request column doubles as the availability flag: a
// driver with a NULL current request is free for new offers.
type DriverDTO struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                     string
	LastKnownLatitude        *float64
	LastKnownLongitude       *float64
	CurrentDeliveryRequestID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:   aggregate.ID().Bytes(),
		Name: aggregate.Name(),
	}

	if location := aggregate.LastKnownLocation(); location != nil {
		latitude := location.Latitude()
		longitude := location.Longitude()
		dto.LastKnownLatitude = &latitude
		dto.LastKnownLongitude = &longitude
	}

	if requestID := aggregate.CurrentDeliveryRequest(); requestID != nil {
		raw := requestID.Bytes()
		dto.CurrentDeliveryRequestID = &raw
	}

	return dto
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lastKnownLocation *kernel.GeoPoint
	if dto.LastKnownLatitude != nil && dto.LastKnownLongitude != nil {
		location, locErr := kernel.NewGeoPoint(*dto.LastKnownLatitude, *dto.LastKnownLongitude)
		if locErr != nil {
			return nil, locErr
		}
		lastKnownLocation = &location
	}

	var currentRequestID *kernel.UUID
	if dto.CurrentDeliveryRequestID != nil {
		requestID, idErr := kernel.UUIDFromBytes(dto.CurrentDeliveryRequestID[:])
		if idErr != nil {
			return nil, idErr
		}
		currentRequestID = &requestID
	}

	return driver.RestoreDriver(id, dto.Name, lastKnownLocation, currentRequestID)
}
