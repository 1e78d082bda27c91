package services

import (
	"sort"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// Candidate pairs a driver with the distance from the venue at evaluation time.
type Candidate struct {
	// Driver is the matched available driver
	Driver *driver.Driver
	// DistanceKm is the great-circle distance from the venue in kilometers
	DistanceKm float64
}

// ProximityFinder is a domain service that selects drivers eligible to receive
// a delivery request for an order, ranked by how close they are to the venue.
//
// Business rules:
//   - Only available drivers are considered (no current delivery request)
//   - Drivers who never reported a location are never matched
//   - Drivers beyond the search radius are excluded
//   - Results are ordered nearest first; equal distances break ties by
//     driver id ascending so repeated evaluations are deterministic
//
// An empty result is a normal outcome, not an error: the caller decides
// whether to widen the radius or give up on the order.
type ProximityFinder struct{}

// NewProximityFinder creates a new ProximityFinder instance.
func NewProximityFinder() ProximityFinder {
	return ProximityFinder{}
}

// FindAvailableDrivers filters and ranks the given drivers for an order at the
// given venue location.
//
// Parameters:
//   - venueLocation: The pickup point distances are measured from (must be valid)
//   - radiusKm: Maximum distance from the venue, in kilometers
//   - candidates: Drivers to consider; nil entries and invalid drivers are skipped
//
// Returns:
//   - []Candidate: Matching drivers nearest first, possibly empty
//   - error: Validation error if the venue location is invalid
func (f ProximityFinder) FindAvailableDrivers(
	venueLocation kernel.GeoPoint,
	radiusKm float64,
	candidates []*driver.Driver,
) ([]Candidate, error) {
	if err := venueLocation.Validate(); err != nil {
		return nil, err
	}

	matched := make([]Candidate, 0, len(candidates))
	for _, d := range candidates {
		if d == nil || d.Validate() != nil {
			continue
		}
		if !d.IsAvailable() {
			continue
		}
		location := d.LastKnownLocation()
		if location == nil {
			continue
		}

		distance, err := venueLocation.DistanceKm(*location)
		if err != nil {
			continue
		}
		if distance > radiusKm {
			continue
		}

		matched = append(matched, Candidate{Driver: d, DistanceKm: distance})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].DistanceKm != matched[j].DistanceKm {
			return matched[i].DistanceKm < matched[j].DistanceKm
		}
		return matched[i].Driver.ID().Less(matched[j].Driver.ID())
	})

	return matched, nil
}
