// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and driver assignment. Orders are never
// hard-deleted; terminal rows stay as the audit trail.
type OrderDTO struct {
	ID                         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	VenueID                    uuid.UUID   `gorm:"type:uuid;index"`
	Venue                      GeoPointDTO `gorm:"embedded;embeddedPrefix:venue_"`
	DriverID                   *uuid.UUID  `gorm:"type:uuid;index"`
	Status                     int         `gorm:"index"`
	DeliveryStatus             int
	RejectionReason            int
	SearchRadiusKm             float64
	CreatedAt                  time.Time `gorm:"index"`
	StartedLookingForDriversAt *time.Time
	AcceptedAt                 *time.Time
	RejectedAt                 *time.Time
	OutForDeliveryAt           *time.Time
	DeliveredAt                *time.Time
	FailedAt                   *time.Time
	ReturnedAt                 *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents embedded geographic coordinates within a table.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:      aggregate.ID().Bytes(),
		VenueID: aggregate.VenueID().Bytes(),
		Venue: GeoPointDTO{
			Latitude:  aggregate.VenueLocation().Latitude(),
			Longitude: aggregate.VenueLocation().Longitude(),
		},
		DriverID:                   driverID,
		Status:                     int(aggregate.Status()),
		DeliveryStatus:             int(aggregate.DeliveryStatus()),
		RejectionReason:            int(aggregate.RejectionReason()),
		SearchRadiusKm:             aggregate.SearchRadiusKm(),
		CreatedAt:                  aggregate.CreatedAt(),
		StartedLookingForDriversAt: aggregate.StartedLookingForDriversAt(),
		AcceptedAt:                 aggregate.AcceptedAt(),
		RejectedAt:                 aggregate.RejectedAt(),
		OutForDeliveryAt:           aggregate.OutForDeliveryAt(),
		DeliveredAt:                aggregate.DeliveredAt(),
		FailedAt:                   aggregate.FailedAt(),
		ReturnedAt:                 aggregate.ReturnedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including statuses, driver assignment,
// and lifecycle timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	venueID, err := kernel.UUIDFromBytes(dto.VenueID[:])
	if err != nil {
		return nil, err
	}

	venueLocation, err := kernel.NewGeoPoint(dto.Venue.Latitude, dto.Venue.Longitude)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		restored, idErr := kernel.UUIDFromBytes(dto.DriverID[:])
		if idErr != nil {
			return nil, idErr
		}
		driverID = &restored
	}

	return order.RestoreOrder(
		id,
		venueID,
		venueLocation,
		order.Status(dto.Status),
		order.DeliveryStatus(dto.DeliveryStatus),
		order.RejectionReason(dto.RejectionReason),
		driverID,
		dto.SearchRadiusKm,
		order.Timestamps{
			CreatedAt:                  dto.CreatedAt,
			StartedLookingForDriversAt: dto.StartedLookingForDriversAt,
			AcceptedAt:                 dto.AcceptedAt,
			RejectedAt:                 dto.RejectedAt,
			OutForDeliveryAt:           dto.OutForDeliveryAt,
			DeliveredAt:                dto.DeliveredAt,
			FailedAt:                   dto.FailedAt,
			ReturnedAt:                 dto.ReturnedAt,
		},
	)
}
