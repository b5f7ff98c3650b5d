// Package georepo provides the geocoding gateway.
// Merchant pickup points come from the merchant_locations table; delivery
// addresses are resolved from embedded coordinates when present. Unknown
// coordinates are a nil point, not an error: pricing and dispatch both
// degrade gracefully without them.
package georepo

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"hatod/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MerchantLocationDTO represents one merchant's stored pickup coordinates.
type MerchantLocationDTO struct {
	MerchantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude   float64
	Longitude  float64
}

// TableName specifies the database table name for merchant locations.
func (MerchantLocationDTO) TableName() string {
	return "merchant_locations"
}

// GormGeoGateway implements ports.GeoGateway.
type GormGeoGateway struct {
	db *gorm.DB
}

// NewGormGeoGateway creates a geo gateway backed by GORM.
func NewGormGeoGateway(db *gorm.DB) *GormGeoGateway {
	return &GormGeoGateway{db: db}
}

// MerchantLocation resolves the merchant's pickup coordinates, or nil when
// the merchant has none stored.
func (g *GormGeoGateway) MerchantLocation(ctx context.Context, merchantID kernel.UUID) (*kernel.GeoPoint, error) {
	if err := merchantID.Validate(); err != nil {
		return nil, err
	}

	var dto MerchantLocationDTO
	err := g.db.WithContext(ctx).First(&dto, "merchant_id = ?", merchantID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return &point, nil
}

// AddressLocation resolves a delivery address's coordinates.
// Addresses carrying embedded "lat,lng" coordinates (the form mobile apps
// submit after a map pin drop) resolve directly; free-form addresses resolve
// to nil and checkout falls back to the flat delivery fee.
func (g *GormGeoGateway) AddressLocation(_ context.Context, address string) (*kernel.GeoPoint, error) {
	latitude, longitude, ok := splitCoordinates(address)
	if !ok {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return nil, nil
	}

	return &point, nil
}

// splitCoordinates parses "lat,lng" out of an address string.
func splitCoordinates(address string) (float64, float64, bool) {
	parts := strings.Split(strings.TrimSpace(address), ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}

	return latitude, longitude, true
}
