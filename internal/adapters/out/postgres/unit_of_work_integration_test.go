package postgres_test

import (
	"context"
	"testing"
	"time"

	"hatod/internal/adapters/out/postgres"
	"hatod/internal/adapters/out/postgres/cartrepo"
	"hatod/internal/adapters/out/postgres/orderrepo"
	"hatod/internal/adapters/out/postgres/riderrepo"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration tests for
// GormUnitOfWork transaction behavior using PostgreSQL containers.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.OrderEventDTO{},
		&riderrepo.RiderDTO{},
		&riderrepo.AssignmentDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartLineDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE order_lines, order_events, orders, assignments, riders, cart_lines, carts").Error)

	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()

	aggregate := suite.createReadyOrder()
	candidate := suite.createAvailableRider()

	dispatcher, err := order.NewActor(order.RoleDispatcher, kernel.NewUUID())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.RiderRepository().Add(ctx, candidate))

	suite.Require().NoError(aggregate.AssignRider(candidate.ID(), dispatcher, time.Now().UTC()))
	suite.Require().NoError(uow.OrderRepository().AssignRider(ctx, aggregate))

	observed := candidate.Availability()
	suite.Require().NoError(candidate.MarkBusy(time.Now().UTC()))
	suite.Require().NoError(uow.RiderRepository().UpdateAvailability(ctx, candidate, observed))

	assignment, err := rider.NewAssignment(kernel.NewUUID(), aggregate.ID(), candidate.ID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, assignment))

	suite.Require().NoError(uow.Commit(ctx))

	// All three writes land once the transaction commits.
	verify := suite.factory.Create()
	storedOrder, err := verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(storedOrder.RiderID())
	suite.True(storedOrder.RiderID().IsEqual(candidate.ID()))

	storedRider, err := verify.RiderRepository().Get(ctx, candidate.ID())
	suite.Require().NoError(err)
	suite.Equal(rider.AvailabilityBusy, storedRider.Availability())

	storedAssignment, err := verify.AssignmentRepository().GetActiveByOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(storedAssignment.RiderID().IsEqual(candidate.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()

	aggregate := suite.createReadyOrder()
	candidate := suite.createAvailableRider()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.RiderRepository().Add(ctx, candidate))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertRowCount(&orderrepo.OrderDTO{}, 0)
	suite.assertRowCount(&orderrepo.OrderEventDTO{}, 0)
	suite.assertRowCount(&riderrepo.RiderDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	err := uow.Commit(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	err := uow.Rollback(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createReadyOrder()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertRowCount(&orderrepo.OrderDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_UseBareConnection() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createReadyOrder()))

	suite.assertRowCount(&orderrepo.OrderDTO{}, 1)
}

// createReadyOrder builds an order walked to ReadyForPickup by a merchant.
func (suite *UnitOfWorkIntegrationTestSuite) createReadyOrder() *order.Order {
	now := time.Now().UTC()

	line, err := order.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), "Adobo rice bowl", 1, kernel.NewMoney(18000), nil)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewOrderNumber(now),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Line{line},
		kernel.NewMoney(4900),
		kernel.NewMoney(1000),
		now,
	)
	suite.Require().NoError(err)

	merchant, err := order.NewActor(order.RoleMerchant, aggregate.MerchantID())
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.ChangeStatus(order.Confirmed, merchant, now))
	suite.Require().NoError(aggregate.ChangeStatus(order.Preparing, merchant, now))
	suite.Require().NoError(aggregate.ChangeStatus(order.ReadyForPickup, merchant, now))

	return aggregate
}

// createAvailableRider builds an on-shift rider.
func (suite *UnitOfWorkIntegrationTestSuite) createAvailableRider() *rider.Rider {
	candidate, err := rider.NewRider(kernel.NewUUID(), "Paolo Reyes", "+639171234567")
	suite.Require().NoError(err)
	suite.Require().NoError(candidate.MarkAvailable())

	return candidate
}

func (suite *UnitOfWorkIntegrationTestSuite) assertRowCount(model any, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
