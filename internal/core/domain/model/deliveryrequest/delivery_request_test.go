package deliveryrequest_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingRequest(t *testing.T) *deliveryrequest.DeliveryRequest {
	t.Helper()

	location, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)

	request, err := deliveryrequest.NewDeliveryRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		location,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return request
}

func TestNewDeliveryRequest(t *testing.T) {
	t.Run("should create pending request with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		driverID := kernel.NewUUID()
		location, err := kernel.NewGeoPoint(40.7128, -74.006)
		require.NoError(t, err)
		createdAt := time.Now().UTC()

		request, err := deliveryrequest.NewDeliveryRequest(id, orderID, driverID, location, createdAt)

		require.NoError(t, err)
		assert.True(t, request.ID().IsEqual(id))
		assert.True(t, request.OrderID().IsEqual(orderID))
		assert.True(t, request.DriverID().IsEqual(driverID))
		assert.Equal(t, deliveryrequest.StatusPending, request.Status())
		assert.Equal(t, createdAt, request.CreatedAt())
		assert.Nil(t, request.AcceptedAt())
		assert.Nil(t, request.RejectedAt())
		assert.NoError(t, request.Validate())

		equal, err := request.DriverLocation().IsEqual(location)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(40.7128, -74.006)
		require.NoError(t, err)

		_, err = deliveryrequest.NewDeliveryRequest(
			kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), location, time.Now())

		require.Error(t, err)
	})

	t.Run("should fail with invalid driver location", func(t *testing.T) {
		_, err := deliveryrequest.NewDeliveryRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.GeoPoint{}, time.Now())

		require.Error(t, err)
	})

	t.Run("should fail with zero creation time", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(40.7128, -74.006)
		require.NoError(t, err)

		_, err = deliveryrequest.NewDeliveryRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), location, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, deliveryrequest.ErrCreatedAtIsRequired)
	})
}

func TestDeliveryRequest_Validate(t *testing.T) {
	t.Run("should fail for nil request", func(t *testing.T) {
		var request *deliveryrequest.DeliveryRequest
		assert.ErrorIs(t, request.Validate(), deliveryrequest.ErrDeliveryRequestIsNotConstructed)
	})

	t.Run("should fail for zero value request", func(t *testing.T) {
		var request deliveryrequest.DeliveryRequest
		assert.ErrorIs(t, request.Validate(), deliveryrequest.ErrDeliveryRequestIsNotConstructed)
	})
}

func TestDeliveryRequest_Accept(t *testing.T) {
	t.Run("should accept pending request", func(t *testing.T) {
		request := newPendingRequest(t)
		at := time.Now().UTC()

		err := request.Accept(at)

		require.NoError(t, err)
		assert.Equal(t, deliveryrequest.StatusAccepted, request.Status())
		require.NotNil(t, request.AcceptedAt())
		assert.Equal(t, at, *request.AcceptedAt())
	})

	t.Run("should fail for already resolved request", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Accept(time.Now()))

		err := request.Accept(time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "only pending delivery requests can be accepted or rejected")
	})
}

func TestDeliveryRequest_Reject(t *testing.T) {
	t.Run("should reject pending request", func(t *testing.T) {
		request := newPendingRequest(t)
		at := time.Now().UTC()

		err := request.Reject(at)

		require.NoError(t, err)
		assert.Equal(t, deliveryrequest.StatusRejected, request.Status())
		require.NotNil(t, request.RejectedAt())
		assert.Equal(t, at, *request.RejectedAt())
		assert.Nil(t, request.AcceptedAt())
	})

	t.Run("should fail for missed request", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Miss())

		err := request.Reject(time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "only pending delivery requests can be accepted or rejected")
	})
}

func TestDeliveryRequest_Miss(t *testing.T) {
	t.Run("should miss pending request", func(t *testing.T) {
		request := newPendingRequest(t)

		err := request.Miss()

		require.NoError(t, err)
		assert.Equal(t, deliveryrequest.StatusMissed, request.Status())
	})

	t.Run("should fail for accepted request", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Accept(time.Now()))

		require.Error(t, request.Miss())
	})
}

func TestDeliveryRequest_Expire(t *testing.T) {
	t.Run("should expire pending request", func(t *testing.T) {
		request := newPendingRequest(t)

		err := request.Expire()

		require.NoError(t, err)
		assert.Equal(t, deliveryrequest.StatusExpired, request.Status())
	})

	t.Run("should fail for rejected request", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Reject(time.Now()))

		require.Error(t, request.Expire())
	})
}

func TestDeliveryRequest_IsAddressedTo(t *testing.T) {
	request := newPendingRequest(t)

	assert.True(t, request.IsAddressedTo(request.DriverID()))
	assert.False(t, request.IsAddressedTo(kernel.NewUUID()))
}

func TestRestoreDeliveryRequest(t *testing.T) {
	t.Run("should restore resolved request", func(t *testing.T) {
		id := kernel.NewUUID()
		location, err := kernel.NewGeoPoint(48.8566, 2.3522)
		require.NoError(t, err)
		createdAt := time.Now().UTC().Add(-time.Hour)
		acceptedAt := time.Now().UTC()

		request, err := deliveryrequest.RestoreDeliveryRequest(
			id, kernel.NewUUID(), kernel.NewUUID(), location,
			deliveryrequest.StatusAccepted, createdAt, &acceptedAt, nil)

		require.NoError(t, err)
		assert.Equal(t, deliveryrequest.StatusAccepted, request.Status())
		require.NotNil(t, request.AcceptedAt())
		assert.Equal(t, acceptedAt, *request.AcceptedAt())
		assert.Nil(t, request.RejectedAt())
	})

	t.Run("should fail with invalid status", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(48.8566, 2.3522)
		require.NoError(t, err)

		_, err = deliveryrequest.RestoreDeliveryRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), location,
			deliveryrequest.StatusUnknown, time.Now(), nil, nil)

		require.Error(t, err)
	})
}

func TestStatus(t *testing.T) {
	t.Run("should parse all wire values", func(t *testing.T) {
		cases := map[string]deliveryrequest.Status{
			"pending":  deliveryrequest.StatusPending,
			"accepted": deliveryrequest.StatusAccepted,
			"rejected": deliveryrequest.StatusRejected,
			"missed":   deliveryrequest.StatusMissed,
			"expired":  deliveryrequest.StatusExpired,
		}

		for str, expected := range cases {
			parsed, err := deliveryrequest.StatusFromString(str)
			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
			assert.Equal(t, str, parsed.String())
		}
	})

	t.Run("should reject unknown wire values", func(t *testing.T) {
		_, err := deliveryrequest.StatusFromString("cancelled")
		require.Error(t, err)
	})

	t.Run("should report pending", func(t *testing.T) {
		assert.True(t, deliveryrequest.StatusPending.IsPending())
		assert.False(t, deliveryrequest.StatusAccepted.IsPending())
		assert.False(t, deliveryrequest.StatusMissed.IsPending())
	})

	t.Run("should fail validation for unknown status", func(t *testing.T) {
		require.Error(t, deliveryrequest.StatusUnknown.Validate())
		require.Error(t, deliveryrequest.Status(42).Validate())
	})
}
