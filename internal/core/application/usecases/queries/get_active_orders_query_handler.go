package queries

import (
	"context"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves in-flight orders from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern; the
// write-side aggregate is never loaded.
//
// Example:
//
//	handler := NewGetActiveOrdersQueryHandler(db)
//	query := NewGetActiveOrdersQuery()
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active orders: %v", err)
//	    return err
//	}
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all in-flight orders.
// Excludes DELIVERED and CANCELLED orders. Results are sorted oldest first
// so the dispatch view surfaces the orders waiting longest.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			merchant_id,
			rider_id,
			status,
			total,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, int(order.Delivered), int(order.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id, customerID, merchantID uuid.UUID
		var riderID *uuid.UUID
		var status int
		var total int64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.Number,
			&customerID,
			&merchantID,
			&riderID,
			&status,
			&total,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return nil, err
		}
		resp.MerchantID, err = kernel.UUIDFromBytes(merchantID[:])
		if err != nil {
			return nil, err
		}

		if riderID != nil {
			rID, rErr := kernel.UUIDFromBytes((*riderID)[:])
			if rErr != nil {
				return nil, rErr
			}
			resp.RiderID = &rID
		}

		resp.Status = order.Status(status).String()
		resp.Total = kernel.NewMoney(total)
		resp.CreatedAt = createdAt

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
