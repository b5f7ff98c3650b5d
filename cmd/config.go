package cmd

import (
	"fmt"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/services"
)

// Config carries everything the process needs from the environment.
// Monetary amounts are integer centavos.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DeliveryBaseFee  int64
	DeliveryPerKmFee int64
	DeliveryMinFee   int64
	DeliveryMaxFee   int64
	DeliveryFlatFee  int64
	PlatformFee      int64
}

// DSN builds the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// FeeTable builds the delivery fee table from the configured amounts.
func (c Config) FeeTable() services.FeeTable {
	return services.FeeTable{
		BaseFee:     kernel.NewMoney(c.DeliveryBaseFee),
		PerKm:       kernel.NewMoney(c.DeliveryPerKmFee),
		MinFee:      kernel.NewMoney(c.DeliveryMinFee),
		MaxFee:      kernel.NewMoney(c.DeliveryMaxFee),
		FlatDefault: kernel.NewMoney(c.DeliveryFlatFee),
	}
}
