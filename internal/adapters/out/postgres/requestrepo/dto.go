// Package requestrepo provides data transfer objects and mapping functions for
// delivery request persistence.
package requestrepo

import (
	"time"

	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryRequestDTO represents the database structure for persisting delivery
// request aggregates. The unique index over (driver_id, order_id) guarantees a
// driver is offered any given order at most once, regardless of how many times
// the dispatch pass runs.
type DeliveryRequestDTO struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_delivery_requests_driver_order"`
	DriverID   uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_delivery_requests_driver_order"`
	Driver     GeoPointDTO `gorm:"embedded;embeddedPrefix:driver_"`
	Status     int         `gorm:"index"`
	CreatedAt  time.Time   `gorm:"index"`
	AcceptedAt *time.Time
	RejectedAt *time.Time
}

// TableName specifies the database table name for delivery request entities.
func (DeliveryRequestDTO) TableName() string {
	return "delivery_requests"
}

// GeoPointDTO represents embedded geographic coordinates within a table.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts a delivery request domain aggregate to its database representation.
func fromDomain(aggregate *deliveryrequest.DeliveryRequest) DeliveryRequestDTO {
	return DeliveryRequestDTO{
		ID:       aggregate.ID().Bytes(),
		OrderID:  aggregate.OrderID().Bytes(),
		DriverID: aggregate.DriverID().Bytes(),
		Driver: GeoPointDTO{
			Latitude:  aggregate.DriverLocation().Latitude(),
			Longitude: aggregate.DriverLocation().Longitude(),
		},
		Status:     int(aggregate.Status()),
		CreatedAt:  aggregate.CreatedAt(),
		AcceptedAt: aggregate.AcceptedAt(),
		RejectedAt: aggregate.RejectedAt(),
	}
}

// toDomain converts a database DTO to a delivery request domain aggregate.
func toDomain(dto DeliveryRequestDTO) (*deliveryrequest.DeliveryRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	driverLocation, err := kernel.NewGeoPoint(dto.Driver.Latitude, dto.Driver.Longitude)
	if err != nil {
		return nil, err
	}

	return deliveryrequest.RestoreDeliveryRequest(
		id,
		orderID,
		driverID,
		driverLocation,
		deliveryrequest.Status(dto.Status),
		dto.CreatedAt,
		dto.AcceptedAt,
		dto.RejectedAt,
	)
}
