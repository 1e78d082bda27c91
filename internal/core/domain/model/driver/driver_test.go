package driver_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	location, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return location
}

func TestNewDriver(t *testing.T) {
	t.Run("should create driver with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		d, err := driver.NewDriver(id, "Alice")

		require.NoError(t, err)
		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, "Alice", d.Name())
		assert.Nil(t, d.LastKnownLocation())
		assert.Nil(t, d.CurrentDeliveryRequest())
		assert.True(t, d.IsAvailable())
		assert.NoError(t, d.Validate())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := driver.NewDriver(kernel.NewUUID(), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, driver.ErrNameIsRequired)
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		_, err := driver.NewDriver(kernel.UUID{}, "Alice")

		require.Error(t, err)
	})
}

func TestDriver_Validate(t *testing.T) {
	t.Run("should fail for nil driver", func(t *testing.T) {
		var d *driver.Driver
		assert.ErrorIs(t, d.Validate(), driver.ErrDriverIsNotConstructed)
	})

	t.Run("should fail for zero value driver", func(t *testing.T) {
		var d driver.Driver
		assert.ErrorIs(t, d.Validate(), driver.ErrDriverIsNotConstructed)
	})
}

func TestDriver_UpdateLocation(t *testing.T) {
	t.Run("should record latest reported position", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		first := mustLocation(t, 51.5074, -0.1278)
		require.NoError(t, d.UpdateLocation(first))
		require.NotNil(t, d.LastKnownLocation())

		second := mustLocation(t, 48.8566, 2.3522)
		require.NoError(t, d.UpdateLocation(second))

		equal, err := d.LastKnownLocation().IsEqual(second)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should reject an unconstructed location", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		err = d.UpdateLocation(kernel.GeoPoint{})

		require.Error(t, err)
		assert.Nil(t, d.LastKnownLocation())
	})
}

func TestDriver_AssignCurrentRequest(t *testing.T) {
	t.Run("should assign request to available driver", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Alice")
		require.NoError(t, err)
		requestID := kernel.NewUUID()

		err = d.AssignCurrentRequest(requestID)

		require.NoError(t, err)
		require.NotNil(t, d.CurrentDeliveryRequest())
		assert.True(t, d.CurrentDeliveryRequest().IsEqual(requestID))
		assert.False(t, d.IsAvailable())
	})

	t.Run("should fail when driver is already busy", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Alice")
		require.NoError(t, err)
		firstRequest := kernel.NewUUID()
		require.NoError(t, d.AssignCurrentRequest(firstRequest))

		err = d.AssignCurrentRequest(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, driver.ErrDriverIsBusy)
		assert.True(t, d.CurrentDeliveryRequest().IsEqual(firstRequest))
	})

	t.Run("should fail with invalid request id", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		err = d.AssignCurrentRequest(kernel.UUID{})

		require.Error(t, err)
		assert.True(t, d.IsAvailable())
	})
}

func TestDriver_ClearCurrentRequest(t *testing.T) {
	t.Run("should free a busy driver", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Alice")
		require.NoError(t, err)
		require.NoError(t, d.AssignCurrentRequest(kernel.NewUUID()))

		err = d.ClearCurrentRequest()

		require.NoError(t, err)
		assert.True(t, d.IsAvailable())
		assert.Nil(t, d.CurrentDeliveryRequest())
	})

	t.Run("should fail when driver has no current request", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		err = d.ClearCurrentRequest()

		require.Error(t, err)
		assert.ErrorIs(t, err, driver.ErrDriverHasNoCurrentRequest)
	})
}

func TestRestoreDriver(t *testing.T) {
	t.Run("should restore driver with location and current request", func(t *testing.T) {
		id := kernel.NewUUID()
		requestID := kernel.NewUUID()
		location := mustLocation(t, 40.7128, -74.006)

		d, err := driver.RestoreDriver(id, "Bob", &location, &requestID)

		require.NoError(t, err)
		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, "Bob", d.Name())
		require.NotNil(t, d.LastKnownLocation())
		equal, err := d.LastKnownLocation().IsEqual(location)
		require.NoError(t, err)
		assert.True(t, equal)
		require.NotNil(t, d.CurrentDeliveryRequest())
		assert.True(t, d.CurrentDeliveryRequest().IsEqual(requestID))
		assert.False(t, d.IsAvailable())
	})

	t.Run("should restore driver without optional fields", func(t *testing.T) {
		d, err := driver.RestoreDriver(kernel.NewUUID(), "Bob", nil, nil)

		require.NoError(t, err)
		assert.Nil(t, d.LastKnownLocation())
		assert.True(t, d.IsAvailable())
	})

	t.Run("should fail with invalid location", func(t *testing.T) {
		invalid := kernel.GeoPoint{}

		_, err := driver.RestoreDriver(kernel.NewUUID(), "Bob", &invalid, nil)

		require.Error(t, err)
	})

	t.Run("should fail with invalid current request id", func(t *testing.T) {
		invalid := kernel.UUID{}

		_, err := driver.RestoreDriver(kernel.NewUUID(), "Bob", nil, &invalid)

		require.Error(t, err)
	})
}

func TestDriver_IsEqual(t *testing.T) {
	t.Run("should compare drivers by id", func(t *testing.T) {
		id := kernel.NewUUID()
		first, err := driver.NewDriver(id, "Alice")
		require.NoError(t, err)
		second, err := driver.NewDriver(id, "Bob")
		require.NoError(t, err)
		third, err := driver.NewDriver(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
		assert.False(t, first.IsEqual(third))
		assert.False(t, first.IsEqual(nil))
	})
}
