package cmd

import (
	"log/slog"

	"hatod/internal/adapters/out/eventbus"
	"hatod/internal/adapters/out/postgres"
	"hatod/internal/adapters/out/postgres/catalogrepo"
	"hatod/internal/adapters/out/postgres/georepo"
	"hatod/internal/adapters/out/postgres/orderrepo"
	"hatod/internal/core/application/usecases/commands"
	"hatod/internal/core/application/usecases/queries"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/services"
	"hatod/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into the use-case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	eventBus   *eventbus.Bus
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		eventBus:   eventbus.NewBus(logger),
	}
}

// EventBus exposes the in-process bus so consumers can subscribe before the
// relay job starts.
func (c *CompositionRoot) EventBus() *eventbus.Bus {
	return c.eventBus
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogGateway() ports.CatalogGateway {
	return catalogrepo.NewGormCatalogGateway(c.gormDB)
}

func (c *CompositionRoot) geoGateway() ports.GeoGateway {
	return georepo.NewGormGeoGateway(c.gormDB)
}

func (c *CompositionRoot) CreateAddCartLineCommandHandler() commands.AddCartLineCommandHandler {
	return commands.NewAddCartLineCommandHandler(
		c.cartUoWFactory(), c.catalogGateway(), services.NewPricingEngine())
}

func (c *CompositionRoot) CreateUpdateCartLineQuantityCommandHandler() commands.UpdateCartLineQuantityCommandHandler {
	return commands.NewUpdateCartLineQuantityCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCartLineCommandHandler() commands.RemoveCartLineCommandHandler {
	return commands.NewRemoveCartLineCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(
		c.checkoutUoWFactory(),
		c.geoGateway(),
		services.NewPricingEngine(),
		c.config.FeeTable(),
		kernel.NewMoney(c.config.PlatformFee),
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateAutoDispatchCommandHandler() commands.AutoDispatchCommandHandler {
	return commands.NewAutoDispatchCommandHandler(
		c.dispatchUoWFactory(), c.geoGateway(), services.NewDispatchCoordinator())
}

func (c *CompositionRoot) CreateCreateRiderCommandHandler() commands.CreateRiderCommandHandler {
	return commands.NewCreateRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() commands.SetRiderAvailabilityCommandHandler {
	return commands.NewSetRiderAvailabilityCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateReportRiderLocationCommandHandler() commands.ReportRiderLocationCommandHandler {
	return commands.NewReportRiderLocationCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateRelayOrderEventsCommandHandler() commands.RelayOrderEventsCommandHandler {
	// The relay reads and acknowledges outbox rows outside any unit of work.
	orderRepo := orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{})
	return commands.NewRelayOrderEventsCommandHandler(orderRepo, c.eventBus)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDispatchCandidatesQueryHandler() queries.ListDispatchCandidatesQueryHandler {
	return queries.NewListDispatchCandidatesQueryHandler(c.gormDB, services.NewDispatchCoordinator())
}

// noopTracker satisfies the repository tracker when no unit of work owns the
// aggregate.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}
