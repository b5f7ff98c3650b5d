package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"hatod/cmd"
	hatodhttp "hatod/internal/adapters/in/http"
	"hatod/internal/adapters/out/postgres/cartrepo"
	"hatod/internal/adapters/out/postgres/catalogrepo"
	"hatod/internal/adapters/out/postgres/georepo"
	"hatod/internal/adapters/out/postgres/orderrepo"
	"hatod/internal/adapters/out/postgres/riderrepo"
	"hatod/internal/core/ports"
	"hatod/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	app.EventBus().SubscribeAll(func(ctx context.Context, event ports.PublishedEvent) error {
		logger.InfoContext(ctx, "Order event",
			"event", event.Name,
			"orderId", event.OrderID.String(),
			"eventId", event.EventID)
		return nil
	})

	jobManager := jobs.NewJobManager(
		app.CreateAutoDispatchCommandHandler(),
		app.CreateRelayOrderEventsCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envString("HTTP_PORT"),
		DBHost:     envString("DB_HOST"),
		DBPort:     envString("DB_PORT"),
		DBUser:     envString("DB_USER"),
		DBPassword: envString("DB_PASSWORD"),
		DBName:     envString("DB_NAME"),
		DBSslMode:  envString("DB_SSLMODE"),

		DeliveryBaseFee:  envCentavos("DELIVERY_BASE_FEE"),
		DeliveryPerKmFee: envCentavos("DELIVERY_PER_KM_FEE"),
		DeliveryMinFee:   envCentavos("DELIVERY_MIN_FEE"),
		DeliveryMaxFee:   envCentavos("DELIVERY_MAX_FEE"),
		DeliveryFlatFee:  envCentavos("DELIVERY_FLAT_FEE"),
		PlatformFee:      envCentavos("PLATFORM_FEE"),
	}
}

func envString(key string) string {
	return os.Getenv(key)
}

func envCentavos(key string) int64 {
	raw := os.Getenv(key)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, raw, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.OrderEventDTO{},
		&riderrepo.RiderDTO{},
		&riderrepo.AssignmentDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartLineDTO{},
		&catalogrepo.MenuItemDTO{},
		&georepo.MerchantLocationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := hatodhttp.NewServer(
		app.CreateAddCartLineCommandHandler(),
		app.CreateUpdateCartLineQuantityCommandHandler(),
		app.CreateRemoveCartLineCommandHandler(),
		app.CreateClearCartCommandHandler(),
		app.CreateCheckoutCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateAssignRiderCommandHandler(),
		app.CreateClaimOrderCommandHandler(),
		app.CreateCreateRiderCommandHandler(),
		app.CreateSetRiderAvailabilityCommandHandler(),
		app.CreateReportRiderLocationCommandHandler(),
		app.CreateGetCartQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
		app.CreateListDispatchCandidatesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
