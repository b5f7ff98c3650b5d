package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler retrieves a customer's draft cart from the database.
// Line totals include option surcharges, matching the pricing the checkout
// will apply.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart queries.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the query for one customer's draft.
func (h GetCartQueryHandler) Handle(
	ctx context.Context,
	query GetCartQuery,
) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	response := GetCartQueryResponse{
		CustomerID: query.CustomerID(),
		Lines:      make([]GetCartQueryLineResponse, 0),
	}

	var updatedAt time.Time
	err := h.db.WithContext(ctx).Raw(`
		SELECT updated_at
		FROM carts
		WHERE customer_id = ?
	`, query.CustomerID().Bytes()).Row().Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return response, nil
	}
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	response.UpdatedAt = &updatedAt

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			catalog_item_id,
			merchant_id,
			name,
			quantity,
			unit_price,
			options
		FROM cart_lines
		WHERE customer_id = ?
		ORDER BY name
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, catalogItemID, merchantID uuid.UUID
		var name string
		var quantity int
		var unitPrice int64
		var optionsDoc []byte

		err = rows.Scan(&id, &catalogItemID, &merchantID, &name, &quantity, &unitPrice, &optionsDoc)
		if err != nil {
			return GetCartQueryResponse{}, err
		}

		line := GetCartQueryLineResponse{
			Name:      name,
			Quantity:  quantity,
			UnitPrice: kernel.NewMoney(unitPrice),
		}

		line.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return GetCartQueryResponse{}, err
		}
		line.CatalogItemID, err = kernel.UUIDFromBytes(catalogItemID[:])
		if err != nil {
			return GetCartQueryResponse{}, err
		}
		line.MerchantID, err = kernel.UUIDFromBytes(merchantID[:])
		if err != nil {
			return GetCartQueryResponse{}, err
		}

		if len(optionsDoc) > 0 {
			if err = json.Unmarshal(optionsDoc, &line.Options); err != nil {
				return GetCartQueryResponse{}, err
			}
		}

		perUnit := line.UnitPrice
		for _, option := range line.Options {
			perUnit = perUnit.Add(option.Surcharge)
		}
		line.LineTotal = perUnit.MulInt(quantity)
		response.Subtotal = response.Subtotal.Add(line.LineTotal)

		response.Lines = append(response.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}
