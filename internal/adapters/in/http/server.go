// Package http exposes the marketplace operations over an echo REST API.
// Handlers bind plain JSON DTOs, translate them into commands and queries,
// and map domain errors onto HTTP statuses.
package http

import (
	"errors"
	"net/http"

	"hatod/internal/core/application/usecases/commands"
	"hatod/internal/core/application/usecases/queries"
	"hatod/internal/core/domain/model/cart"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/core/domain/services"
	"hatod/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addCartLineHandler            commands.AddCartLineCommandHandler
	updateCartLineQuantityHandler commands.UpdateCartLineQuantityCommandHandler
	removeCartLineHandler         commands.RemoveCartLineCommandHandler
	clearCartHandler              commands.ClearCartCommandHandler
	checkoutHandler               commands.CheckoutCommandHandler
	changeOrderStatusHandler      commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler            commands.CancelOrderCommandHandler
	assignRiderHandler            commands.AssignRiderCommandHandler
	claimOrderHandler             commands.ClaimOrderCommandHandler
	createRiderHandler            commands.CreateRiderCommandHandler
	setRiderAvailabilityHandler   commands.SetRiderAvailabilityCommandHandler
	reportRiderLocationHandler    commands.ReportRiderLocationCommandHandler

	// Query handlers
	getCartHandler                queries.GetCartQueryHandler
	getActiveOrdersHandler        queries.GetActiveOrdersQueryHandler
	listDispatchCandidatesHandler queries.ListDispatchCandidatesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	addCartLineHandler commands.AddCartLineCommandHandler,
	updateCartLineQuantityHandler commands.UpdateCartLineQuantityCommandHandler,
	removeCartLineHandler commands.RemoveCartLineCommandHandler,
	clearCartHandler commands.ClearCartCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	createRiderHandler commands.CreateRiderCommandHandler,
	setRiderAvailabilityHandler commands.SetRiderAvailabilityCommandHandler,
	reportRiderLocationHandler commands.ReportRiderLocationCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	listDispatchCandidatesHandler queries.ListDispatchCandidatesQueryHandler,
) *Server {
	return &Server{
		addCartLineHandler:            addCartLineHandler,
		updateCartLineQuantityHandler: updateCartLineQuantityHandler,
		removeCartLineHandler:         removeCartLineHandler,
		clearCartHandler:              clearCartHandler,
		checkoutHandler:               checkoutHandler,
		changeOrderStatusHandler:      changeOrderStatusHandler,
		cancelOrderHandler:            cancelOrderHandler,
		assignRiderHandler:            assignRiderHandler,
		claimOrderHandler:             claimOrderHandler,
		createRiderHandler:            createRiderHandler,
		setRiderAvailabilityHandler:   setRiderAvailabilityHandler,
		reportRiderLocationHandler:    reportRiderLocationHandler,
		getCartHandler:                getCartHandler,
		getActiveOrdersHandler:        getActiveOrdersHandler,
		listDispatchCandidatesHandler: listDispatchCandidatesHandler,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/customers/:customerId/cart", s.GetCart)
	api.POST("/customers/:customerId/cart/lines", s.AddCartLine)
	api.PUT("/customers/:customerId/cart/lines/:lineId", s.UpdateCartLineQuantity)
	api.DELETE("/customers/:customerId/cart/lines/:lineId", s.RemoveCartLine)
	api.DELETE("/customers/:customerId/cart", s.ClearCart)
	api.POST("/customers/:customerId/checkout", s.Checkout)

	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/orders/:orderId/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/assign", s.AssignRider)
	api.POST("/orders/:orderId/claim", s.ClaimOrder)
	api.GET("/orders/:orderId/candidates", s.ListDispatchCandidates)

	api.POST("/riders", s.CreateRider)
	api.PUT("/riders/:riderId/availability", s.SetRiderAvailability)
	api.PUT("/riders/:riderId/location", s.ReportRiderLocation)
}

// GetCart handles GET /api/v1/customers/:customerId/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return domainError(ctx, err)
	}

	result, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := CartResponse{
		CustomerID: result.CustomerID.String(),
		Lines:      make([]CartLineResponse, len(result.Lines)),
		Subtotal:   result.Subtotal.Centavos(),
		UpdatedAt:  result.UpdatedAt,
	}
	for i, line := range result.Lines {
		options := make([]CartOptionResponse, len(line.Options))
		for j, option := range line.Options {
			options[j] = CartOptionResponse{
				Group:     option.Group,
				Choice:    option.Choice,
				Surcharge: option.Surcharge.Centavos(),
			}
		}

		response.Lines[i] = CartLineResponse{
			ID:            line.ID.String(),
			CatalogItemID: line.CatalogItemID.String(),
			MerchantID:    line.MerchantID.String(),
			Name:          line.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice.Centavos(),
			Options:       options,
			LineTotal:     line.LineTotal.Centavos(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddCartLine handles POST /api/v1/customers/:customerId/cart/lines.
func (s *Server) AddCartLine(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	var request AddCartLineRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	itemID, err := kernel.UUIDFromString(request.CatalogItemID)
	if err != nil {
		return badRequest(ctx, "Invalid catalog item id")
	}

	cmd, err := commands.NewAddCartLineCommand(customerID, itemID, request.Quantity, request.Options)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.addCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCartLineQuantity handles PUT /api/v1/customers/:customerId/cart/lines/:lineId.
func (s *Server) UpdateCartLineQuantity(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}
	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "Invalid line id")
	}

	var request UpdateCartLineQuantityRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCartLineQuantityCommand(customerID, lineID, request.Quantity)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.updateCartLineQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartLine handles DELETE /api/v1/customers/:customerId/cart/lines/:lineId.
func (s *Server) RemoveCartLine(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}
	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "Invalid line id")
	}

	cmd, err := commands.NewRemoveCartLineCommand(customerID, lineID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.removeCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/customers/:customerId/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	cmd, err := commands.NewClearCartCommand(customerID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.clearCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/customers/:customerId/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	var request CheckoutRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, customerID, request.DeliveryAddress)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{OrderID: orderID.String()})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, o := range orders {
		var riderID *string
		if o.RiderID != nil {
			id := o.RiderID.String()
			riderID = &id
		}

		response[i] = ActiveOrderResponse{
			ID:         o.ID.String(),
			Number:     o.Number,
			CustomerID: o.CustomerID.String(),
			MerchantID: o.MerchantID.String(),
			RiderID:    riderID,
			Status:     o.Status,
			Total:      o.Total.Centavos(),
			CreatedAt:  o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderId/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ChangeOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	actor, err := parseActor(request.Actor)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actor)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := parseActor(request.Actor)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason, actor)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignRider handles POST /api/v1/orders/:orderId/assign.
func (s *Server) AssignRider(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request AssignRiderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return badRequest(ctx, "Invalid rider id")
	}

	actor, err := parseActor(request.Actor)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewAssignRiderCommand(orderID, riderID, actor)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimOrder handles POST /api/v1/orders/:orderId/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ClaimOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return badRequest(ctx, "Invalid rider id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, riderID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListDispatchCandidates handles GET /api/v1/orders/:orderId/candidates.
func (s *Server) ListDispatchCandidates(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewListDispatchCandidatesQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	candidates, err := s.listDispatchCandidatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]DispatchCandidateResponse, len(candidates))
	for i, candidate := range candidates {
		response[i] = DispatchCandidateResponse{
			RiderID:        candidate.RiderID.String(),
			Name:           candidate.Name,
			DistanceKm:     candidate.DistanceKm,
			LastAssignedAt: candidate.LastAssignedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateRider handles POST /api/v1/riders.
func (s *Server) CreateRider(ctx echo.Context) error {
	var request CreateRiderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewCreateRiderCommand(riderID, request.Name, request.Phone)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.createRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateRiderResponse{RiderID: riderID.String()})
}

// SetRiderAvailability handles PUT /api/v1/riders/:riderId/availability.
func (s *Server) SetRiderAvailability(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("riderId"))
	if err != nil {
		return badRequest(ctx, "Invalid rider id")
	}

	var request SetRiderAvailabilityRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := rider.AvailabilityFromString(request.Availability)
	if err != nil {
		return badRequest(ctx, "Invalid availability: "+request.Availability)
	}

	cmd, err := commands.NewSetRiderAvailabilityCommand(riderID, target)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.setRiderAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportRiderLocation handles PUT /api/v1/riders/:riderId/location.
func (s *Server) ReportRiderLocation(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("riderId"))
	if err != nil {
		return badRequest(ctx, "Invalid rider id")
	}

	var request ReportRiderLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportRiderLocationCommand(riderID, request.Latitude, request.Longitude)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.reportRiderLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// parseActor resolves the acting party from its request representation.
func parseActor(request ActorRequest) (order.Actor, error) {
	role, err := order.RoleFromString(request.Role)
	if err != nil {
		return order.Actor{}, err
	}

	id, err := kernel.UUIDFromString(request.ID)
	if err != nil {
		return order.Actor{}, errs.NewValueIsInvalidErrorWithCause("actor.id", err)
	}

	return order.NewActor(role, id)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps a use-case error onto an HTTP status.
// Conflicts report what the client should tell the user: the order moved on
// or someone else got there first.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrAssignmentConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Order is no longer available",
		})
	case errors.Is(err, order.ErrIllegalTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Action is no longer valid for this order's status",
		})
	case errors.Is(err, rider.ErrRiderIsBusy):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Rider has an active order",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidSelection),
		errors.Is(err, cart.ErrDraftIsEmpty),
		errors.Is(err, cart.ErrDraftHasMultipleMerchants),
		errors.Is(err, commands.ErrQuantityIsInvalid),
		errors.Is(err, commands.ErrCancelReasonIsRequired),
		errors.Is(err, commands.ErrDeliveryAddressIsRequired),
		errors.Is(err, commands.ErrRiderNameIsRequired),
		errors.Is(err, commands.ErrRiderPhoneIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}
