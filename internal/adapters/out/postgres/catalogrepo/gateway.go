package catalogrepo

import (
	"context"
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"
	"hatod/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogGateway implements ports.CatalogGateway against the menu_items
// table.
type GormCatalogGateway struct {
	db *gorm.DB
}

// NewGormCatalogGateway creates a catalog gateway backed by GORM.
func NewGormCatalogGateway(db *gorm.DB) *GormCatalogGateway {
	return &GormCatalogGateway{db: db}
}

// GetMenuItem retrieves a priced menu item snapshot by ID.
func (g *GormCatalogGateway) GetMenuItem(ctx context.Context, itemID kernel.UUID) (product.MenuItem, error) {
	if err := itemID.Validate(); err != nil {
		return product.MenuItem{}, err
	}

	var dto MenuItemDTO
	if err := g.db.WithContext(ctx).First(&dto, "id = ?", itemID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.MenuItem{}, errs.NewObjectNotFoundError("menuItem", itemID.String())
		}
		return product.MenuItem{}, err
	}

	return toDomain(dto)
}
