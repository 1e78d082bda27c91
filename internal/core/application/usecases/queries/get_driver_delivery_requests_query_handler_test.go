package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/requestrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetDriverDeliveryRequestsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetDriverDeliveryRequestsQueryHandler
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &requestrepo.DeliveryRequestDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetDriverDeliveryRequestsQueryHandler(db)
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, delivery_requests").Error
	suite.Require().NoError(err)
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetDriverDeliveryRequestsQuery(kernel.NewUUID(), nil, nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) TestHandle_ReturnsOnlyDriversRequestsOldestFirst() {
	now := time.Now().UTC()
	driverID := kernel.NewUUID()
	otherDriverID := kernel.NewUUID()

	olderOrder := suite.seedOrder(now)
	newerOrder := suite.seedOrder(now)

	older := suite.seedRequest(driverID, olderOrder, now.Add(-10*time.Minute))
	newer := suite.seedRequest(driverID, newerOrder, now.Add(-1*time.Minute))
	suite.seedRequest(otherDriverID, olderOrder, now.Add(-5*time.Minute))

	query, err := queries.NewGetDriverDeliveryRequestsQuery(driverID, nil, nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2, "Only the driver's own requests should be returned")

	suite.Equal(older.ID(), result[0].ID)
	suite.Equal(olderOrder.ID(), result[0].OrderID)
	suite.Equal(deliveryrequest.StatusPending, result[0].Status)
	suite.Equal(olderOrder.VenueLocation(), result[0].VenueLocation)
	suite.WithinDuration(older.CreatedAt(), result[0].CreatedAt, time.Second)

	suite.Equal(newer.ID(), result[1].ID)
	suite.Equal(newerOrder.ID(), result[1].OrderID)
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) TestHandle_StatusFilter_ReturnsMatchingOnly() {
	now := time.Now().UTC()
	driverID := kernel.NewUUID()

	pendingOrder := suite.seedOrder(now)
	rejectedOrder := suite.seedOrder(now)

	pending := suite.seedRequest(driverID, pendingOrder, now.Add(-2*time.Minute))

	rejected := suite.seedRequest(driverID, rejectedOrder, now.Add(-3*time.Minute))
	err := rejected.Reject(now)
	suite.Require().NoError(err)
	repo := requestrepo.NewGormDeliveryRequestRepository(suite.db, &mockAggregateTracker{})
	err = repo.Update(context.Background(), rejected)
	suite.Require().NoError(err)

	query, err := queries.NewGetDriverDeliveryRequestsQuery(
		driverID, []deliveryrequest.Status{deliveryrequest.StatusPending}, nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].ID)
	suite.Equal(deliveryrequest.StatusPending, result[0].Status)
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) TestHandle_Cursor_SkipsOrdersUpToLastRejected() {
	now := time.Now().UTC()
	driverID := kernel.NewUUID()

	firstOrder := suite.seedOrder(now)
	secondOrder := suite.seedOrder(now)

	// The cursor comparison follows order id ordering
	lowOrder, highOrder := firstOrder, secondOrder
	if highOrder.ID().Less(lowOrder.ID()) {
		lowOrder, highOrder = highOrder, lowOrder
	}

	suite.seedRequest(driverID, lowOrder, now.Add(-2*time.Minute))
	kept := suite.seedRequest(driverID, highOrder, now.Add(-1*time.Minute))

	cursor := lowOrder.ID()
	query, err := queries.NewGetDriverDeliveryRequestsQuery(driverID, nil, &cursor)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1, "Orders up to and including the cursor should be skipped")
	suite.Equal(kept.ID(), result[0].ID)
	suite.Equal(highOrder.ID(), result[0].OrderID)
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDriverDeliveryRequestsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetDriverDeliveryRequestsQuery constructor")
}

func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	query, err := queries.NewGetDriverDeliveryRequestsQuery(kernel.NewUUID(), nil, nil)
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

// seedOrder persists a pending order placed at the given time and returns it.
func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) seedOrder(createdAt time.Time) *order.Order {
	venueLocation, err := kernel.NewGeoPoint(51.5074, -0.1278)
	suite.Require().NoError(err)

	seeded, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), venueLocation, createdAt)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	err = repo.Add(context.Background(), seeded)
	suite.Require().NoError(err)

	return seeded
}

// seedRequest persists a pending delivery request for the driver and order.
func (suite *GetDriverDeliveryRequestsQueryHandlerTestSuite) seedRequest(
	driverID kernel.UUID,
	forOrder *order.Order,
	createdAt time.Time,
) *deliveryrequest.DeliveryRequest {
	driverLocation, err := kernel.NewGeoPoint(51.5080, -0.1280)
	suite.Require().NoError(err)

	request, err := deliveryrequest.NewDeliveryRequest(
		kernel.NewUUID(), forOrder.ID(), driverID, driverLocation, createdAt)
	suite.Require().NoError(err)

	repo := requestrepo.NewGormDeliveryRequestRepository(suite.db, &mockAggregateTracker{})
	err = repo.Add(context.Background(), request)
	suite.Require().NoError(err)

	return request
}

func TestGetDriverDeliveryRequestsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDriverDeliveryRequestsQueryHandlerTestSuite))
}

// mockAggregateTracker is a no-op tracker for seeding query tests through the
// write-side repositories.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
	// No-op for query tests
}
