package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func driverAt(t *testing.T, name string, lat, lng float64) *driver.Driver {
	t.Helper()

	d, err := driver.NewDriver(kernel.NewUUID(), name)
	require.NoError(t, err)

	location, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	require.NoError(t, d.UpdateLocation(location))
	return d
}

func TestProximityFinder_FindAvailableDrivers(t *testing.T) {
	finder := services.NewProximityFinder()
	// Central London venue
	venue, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)

	t.Run("should order drivers nearest first", func(t *testing.T) {
		near := driverAt(t, "Near", 51.5080, -0.1280)   // a few hundred meters
		mid := driverAt(t, "Mid", 51.5300, -0.0900)     // a few kilometers
		far := driverAt(t, "Far", 51.7520, -1.2577)     // Oxford, ~80 km

		result, err := finder.FindAvailableDrivers(venue, 100, []*driver.Driver{far, mid, near})

		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.True(t, result[0].Driver.IsEqual(near))
		assert.True(t, result[1].Driver.IsEqual(mid))
		assert.True(t, result[2].Driver.IsEqual(far))
		assert.Less(t, result[0].DistanceKm, result[1].DistanceKm)
		assert.Less(t, result[1].DistanceKm, result[2].DistanceKm)
	})

	t.Run("should exclude drivers beyond the radius", func(t *testing.T) {
		near := driverAt(t, "Near", 51.5080, -0.1280)
		far := driverAt(t, "Far", 48.8566, 2.3522) // Paris, ~344 km

		result, err := finder.FindAvailableDrivers(venue, 10, []*driver.Driver{near, far})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.True(t, result[0].Driver.IsEqual(near))
	})

	t.Run("should exclude busy drivers", func(t *testing.T) {
		busy := driverAt(t, "Busy", 51.5080, -0.1280)
		require.NoError(t, busy.AssignCurrentRequest(kernel.NewUUID()))
		free := driverAt(t, "Free", 51.5100, -0.1300)

		result, err := finder.FindAvailableDrivers(venue, 10, []*driver.Driver{busy, free})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.True(t, result[0].Driver.IsEqual(free))
	})

	t.Run("should exclude drivers without a reported location", func(t *testing.T) {
		unlocated, err := driver.NewDriver(kernel.NewUUID(), "Unlocated")
		require.NoError(t, err)
		located := driverAt(t, "Located", 51.5080, -0.1280)

		result, err := finder.FindAvailableDrivers(venue, 10, []*driver.Driver{unlocated, located})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.True(t, result[0].Driver.IsEqual(located))
	})

	t.Run("should break distance ties by driver id", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(51.5080, -0.1280)
		require.NoError(t, err)

		first, err := driver.NewDriver(kernel.NewUUID(), "A")
		require.NoError(t, err)
		require.NoError(t, first.UpdateLocation(location))
		second, err := driver.NewDriver(kernel.NewUUID(), "B")
		require.NoError(t, err)
		require.NoError(t, second.UpdateLocation(location))

		result, err := finder.FindAvailableDrivers(venue, 10, []*driver.Driver{second, first})

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.True(t, result[0].Driver.ID().Less(result[1].Driver.ID()))
	})

	t.Run("should return empty result when nobody matches", func(t *testing.T) {
		far := driverAt(t, "Far", 48.8566, 2.3522)

		result, err := finder.FindAvailableDrivers(venue, 10, []*driver.Driver{far})

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("should skip nil and unconstructed drivers", func(t *testing.T) {
		located := driverAt(t, "Located", 51.5080, -0.1280)

		result, err := finder.FindAvailableDrivers(
			venue, 10, []*driver.Driver{nil, {}, located})

		require.NoError(t, err)
		require.Len(t, result, 1)
	})

	t.Run("should fail with invalid venue location", func(t *testing.T) {
		_, err := finder.FindAvailableDrivers(kernel.GeoPoint{}, 10, nil)

		require.Error(t, err)
	})
}
