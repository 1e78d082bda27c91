package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AcceptIfLookingForDriver(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllLookingForDriver(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailableExcluding(
	ctx context.Context, orderID kernel.UUID,
) ([]*driver.Driver, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockDeliveryRequestRepository struct{ mock.Mock }

func (m *MockDeliveryRequestRepository) Add(ctx context.Context, r *deliveryrequest.DeliveryRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRequestRepository) Update(ctx context.Context, r *deliveryrequest.DeliveryRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRequestRepository) Get(
	ctx context.Context, id kernel.UUID,
) (*deliveryrequest.DeliveryRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deliveryrequest.DeliveryRequest), args.Error(1)
}

func (m *MockDeliveryRequestRepository) GetAllPendingByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*deliveryrequest.DeliveryRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*deliveryrequest.DeliveryRequest), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) DeliveryRequestRepository() ports.DeliveryRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRequestRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockOrderDriverUoWFactory struct{ mock.Mock }

func (m *MockOrderDriverUoWFactory) Create() commands.OrderDriverUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderDriverUoW)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) NotifyDriversOfNewRequest(ctx context.Context, driverIDs []kernel.UUID) error {
	args := m.Called(ctx, driverIDs)
	return args.Error(0)
}

func (m *MockNotificationService) NotifyCustomerOfStatusChange(
	ctx context.Context, orderID kernel.UUID, status order.Status,
) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) Refund(ctx context.Context, orderID kernel.UUID) (ports.RefundConfirmation, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.RefundConfirmation), args.Error(1)
}

type MockOrderDispatcher struct{ mock.Mock }

func (m *MockOrderDispatcher) Handle(ctx context.Context, command commands.DispatchOrderCommand) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

// Test fixtures shared across handler tests.

func testVenueLocation(t *testing.T) kernel.GeoPoint {
	t.Helper()
	location, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)
	return location
}

// pendingOrder builds a freshly placed order that was never promoted.
func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testVenueLocation(t), time.Now().UTC())
	require.NoError(t, err)
	return o
}

// searchingOrder builds an order already in looking_for_driver status.
func searchingOrder(t *testing.T, radiusKm float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testVenueLocation(t), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, o.StartDriverSearch(radiusKm, time.Now().UTC()))
	return o
}

// availableDriverNearVenue builds a free driver a few hundred meters from the venue.
func availableDriverNearVenue(t *testing.T, name string) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name)
	require.NoError(t, err)
	location, err := kernel.NewGeoPoint(51.5080, -0.1280)
	require.NoError(t, err)
	require.NoError(t, d.UpdateLocation(location))
	return d
}

// pendingRequestFor builds a pending delivery request offering the order to the driver.
func pendingRequestFor(t *testing.T, o *order.Order, d *driver.Driver) *deliveryrequest.DeliveryRequest {
	t.Helper()
	request, err := deliveryrequest.NewDeliveryRequest(
		kernel.NewUUID(), o.ID(), d.ID(), *d.LastKnownLocation(), time.Now().UTC())
	require.NoError(t, err)
	return request
}
