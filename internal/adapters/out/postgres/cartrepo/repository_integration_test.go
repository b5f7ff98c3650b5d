package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"hatod/internal/adapters/out/postgres/cartrepo"
	"hatod/internal/core/domain/model/cart"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CartRepositoryIntegrationTestSuite provides integration tests for
// CartRepository using PostgreSQL containers.
type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *cartrepo.GormCartRepository
	tracker    *MockAggregateTracker
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&cartrepo.CartDTO{},
		&cartrepo.CartLineDTO{},
	))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE cart_lines, carts").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = cartrepo.NewGormCartRepository(suite.db, suite.tracker)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) TestGet_UnknownCustomer_ReturnsEmptyDraft() {
	draft, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.True(draft.IsEmpty())
}

func (suite *CartRepositoryIntegrationTestSuite) TestSaveAndGet_RoundTripsDraft() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	merchantID := kernel.NewUUID()
	draft := suite.createDraft(customerID, merchantID)

	suite.Require().NoError(suite.repository.Save(ctx, draft))

	retrieved, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)

	suite.True(retrieved.CustomerID().IsEqual(customerID))
	suite.Require().Len(retrieved.Lines(), 2)
	suite.Equal(draft.Subtotal().Centavos(), retrieved.Subtotal().Centavos())

	gotMerchant, err := retrieved.MerchantID()
	suite.Require().NoError(err)
	suite.True(gotMerchant.IsEqual(merchantID))

	// The normalized option key survives the round trip, so merging keeps
	// working on a reloaded draft.
	byName := map[string]*cart.Line{}
	for _, line := range retrieved.Lines() {
		byName[line.Name()] = line
	}
	suite.Require().NotNil(byName["Cheeseburger"])
	suite.Equal("Size=Large", byName["Cheeseburger"].OptionKey())
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_ReplacesStoredLines() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	merchantID := kernel.NewUUID()
	draft := suite.createDraft(customerID, merchantID)
	suite.Require().NoError(suite.repository.Save(ctx, draft))

	// Drop one line and save again.
	lineID := draft.Lines()[0].ID()
	suite.Require().NoError(draft.RemoveLine(lineID, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Save(ctx, draft))

	retrieved, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.Len(retrieved.Lines(), 1)

	var count int64
	suite.Require().NoError(suite.db.Model(&cartrepo.CartLineDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CartRepositoryIntegrationTestSuite) TestClear_RemovesLines() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	draft := suite.createDraft(customerID, kernel.NewUUID())
	suite.Require().NoError(suite.repository.Save(ctx, draft))

	suite.Require().NoError(suite.repository.Clear(ctx, customerID))

	retrieved, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.True(retrieved.IsEmpty())
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_IsolatesCustomers() {
	ctx := context.Background()

	first := suite.createDraft(kernel.NewUUID(), kernel.NewUUID())
	second := suite.createDraft(kernel.NewUUID(), kernel.NewUUID())

	suite.Require().NoError(suite.repository.Save(ctx, first))
	suite.Require().NoError(suite.repository.Save(ctx, second))

	suite.Require().NoError(suite.repository.Clear(ctx, first.CustomerID()))

	remaining, err := suite.repository.Get(ctx, second.CustomerID())
	suite.Require().NoError(err)
	suite.Len(remaining.Lines(), 2)
}

// createDraft builds a draft with a burger (Large) and an iced tea.
func (suite *CartRepositoryIntegrationTestSuite) createDraft(
	customerID kernel.UUID,
	merchantID kernel.UUID,
) *cart.Draft {
	now := time.Now().UTC()
	draft, err := cart.NewDraft(customerID, now)
	suite.Require().NoError(err)

	options := []product.ChosenOption{{Group: "Size", Choice: "Large", Surcharge: 5000}}
	burger, err := cart.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), merchantID, "Cheeseburger", 2, kernel.NewMoney(15000), options)
	suite.Require().NoError(err)
	suite.Require().NoError(draft.AddLine(burger, now))

	tea, err := cart.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), merchantID, "Iced tea", 1, kernel.NewMoney(5000), nil)
	suite.Require().NoError(err)
	suite.Require().NoError(draft.AddLine(tea, now))

	return draft
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
