// Package cartrepo provides data transfer objects and mapping functions for
// cart draft persistence. A draft is keyed by its customer; the stored lines
// are replaced wholesale on every save.
package cartrepo

import (
	"encoding/json"
	"time"

	"hatod/internal/core/domain/model/cart"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for a customer's draft.
type CartDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UpdatedAt  time.Time

	Lines []CartLineDTO `gorm:"foreignKey:CustomerID;references:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for cart drafts.
func (CartDTO) TableName() string {
	return "carts"
}

// CartLineDTO represents one draft line. OptionKey is the normalized option
// selection used to merge repeated additions of the same item and options.
type CartLineDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	CatalogItemID uuid.UUID `gorm:"type:uuid"`
	MerchantID    uuid.UUID `gorm:"type:uuid"`
	Name          string
	Quantity      int
	UnitPrice     int64
	Options       []byte `gorm:"type:jsonb"`
	OptionKey     string
}

// TableName specifies the database table name for cart lines.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

// fromDomain converts a cart draft to its database representation.
func fromDomain(draft *cart.Draft) (CartDTO, error) {
	lines := make([]CartLineDTO, 0, len(draft.Lines()))
	for _, line := range draft.Lines() {
		options, err := json.Marshal(line.Options())
		if err != nil {
			return CartDTO{}, err
		}

		lines = append(lines, CartLineDTO{
			ID:            line.ID().Bytes(),
			CustomerID:    draft.CustomerID().Bytes(),
			CatalogItemID: line.CatalogItemID().Bytes(),
			MerchantID:    line.MerchantID().Bytes(),
			Name:          line.Name(),
			Quantity:      line.Quantity(),
			UnitPrice:     line.UnitPrice().Centavos(),
			Options:       options,
			OptionKey:     line.OptionKey(),
		})
	}

	return CartDTO{
		CustomerID: draft.CustomerID().Bytes(),
		UpdatedAt:  draft.UpdatedAt(),
		Lines:      lines,
	}, nil
}

// toDomain converts a database DTO to a cart draft.
func toDomain(dto CartDTO) (*cart.Draft, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*cart.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreDraft(customerID, lines, dto.UpdatedAt)
}

func lineToDomain(dto CartLineDTO) (*cart.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	catalogItemID, err := kernel.UUIDFromBytes(dto.CatalogItemID[:])
	if err != nil {
		return nil, err
	}
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var options []product.ChosenOption
	if len(dto.Options) > 0 {
		if err = json.Unmarshal(dto.Options, &options); err != nil {
			return nil, err
		}
	}

	return cart.NewLine(id, catalogItemID, merchantID, dto.Name, dto.Quantity, kernel.NewMoney(dto.UnitPrice), options)
}
