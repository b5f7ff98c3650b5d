package http

import "time"

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ActorRequest identifies the party attempting an order operation.
type ActorRequest struct {
	Role string `json:"role"`
	ID   string `json:"id"`
}

// AddCartLineRequest adds one item to the customer's draft.
// Options maps option group names to chosen choice names.
type AddCartLineRequest struct {
	CatalogItemID string              `json:"catalogItemId"`
	Quantity      int                 `json:"quantity"`
	Options       map[string][]string `json:"options,omitempty"`
}

// UpdateCartLineQuantityRequest sets a draft line's quantity.
// A quantity of zero or less removes the line.
type UpdateCartLineQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest turns the customer's draft into a pending order.
type CheckoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
}

// CheckoutResponse reports the created order.
type CheckoutResponse struct {
	OrderID string `json:"orderId"`
}

// ChangeOrderStatusRequest advances an order along one lifecycle edge.
type ChangeOrderStatusRequest struct {
	Status string       `json:"status"`
	Actor  ActorRequest `json:"actor"`
}

// CancelOrderRequest cancels a live order with a reason.
type CancelOrderRequest struct {
	Reason string       `json:"reason"`
	Actor  ActorRequest `json:"actor"`
}

// AssignRiderRequest binds a specific rider to a ready order.
type AssignRiderRequest struct {
	RiderID string       `json:"riderId"`
	Actor   ActorRequest `json:"actor"`
}

// ClaimOrderRequest is a rider's self-claim for a ready order.
type ClaimOrderRequest struct {
	RiderID string `json:"riderId"`
}

// CreateRiderRequest registers a new rider.
type CreateRiderRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateRiderResponse reports the registered rider.
type CreateRiderResponse struct {
	RiderID string `json:"riderId"`
}

// SetRiderAvailabilityRequest toggles a rider on or off shift.
type SetRiderAvailabilityRequest struct {
	Availability string `json:"availability"`
}

// ReportRiderLocationRequest records a rider's current position.
type ReportRiderLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CartLineResponse is one draft line in the cart view.
type CartLineResponse struct {
	ID            string               `json:"id"`
	CatalogItemID string               `json:"catalogItemId"`
	MerchantID    string               `json:"merchantId"`
	Name          string               `json:"name"`
	Quantity      int                  `json:"quantity"`
	UnitPrice     int64                `json:"unitPrice"`
	Options       []CartOptionResponse `json:"options,omitempty"`
	LineTotal     int64                `json:"lineTotal"`
}

// CartOptionResponse is one chosen option on a cart line.
type CartOptionResponse struct {
	Group     string `json:"group"`
	Choice    string `json:"choice"`
	Surcharge int64  `json:"surcharge"`
}

// CartResponse is the customer's draft cart. Monetary amounts are integer
// centavos.
type CartResponse struct {
	CustomerID string             `json:"customerId"`
	Lines      []CartLineResponse `json:"lines"`
	Subtotal   int64              `json:"subtotal"`
	UpdatedAt  *time.Time         `json:"updatedAt,omitempty"`
}

// ActiveOrderResponse is one in-flight order in the dashboard listing.
type ActiveOrderResponse struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	CustomerID string    `json:"customerId"`
	MerchantID string    `json:"merchantId"`
	RiderID    *string   `json:"riderId,omitempty"`
	Status     string    `json:"status"`
	Total      int64     `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DispatchCandidateResponse is one ranked rider in the dispatch preview.
type DispatchCandidateResponse struct {
	RiderID        string     `json:"riderId"`
	Name           string     `json:"name"`
	DistanceKm     *float64   `json:"distanceKm,omitempty"`
	LastAssignedAt *time.Time `json:"lastAssignedAt,omitempty"`
}
