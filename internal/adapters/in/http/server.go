// Package http is the service's REST API.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"printshop/internal/core/application/quoting"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/pricing"

	"github.com/labstack/echo/v4"
)

// ActorHeader names the user changing an order.
const ActorHeader = "X-Actor-ID"

type PricingCalculator interface {
	Handle(ctx context.Context, query queries.CalculatePricingQuery) (pricing.Result, error)
}

type OrderReader interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
}

type OrderStatusChanger interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
}

type QuoteSessions interface {
	Session(id string) (*quoting.Session, error)
	Lookup(id string) (*quoting.Session, error)
}

type PricingHealth interface {
	Current(ctx context.Context) quoting.Health
}

// Handlers are the use cases the API exposes.
type Handlers struct {
	Pricing       PricingCalculator
	Sessions      QuoteSessions
	Health        PricingHealth
	Orders        OrderReader
	StatusChanges OrderStatusChanger
}

// Server translates HTTP requests into queries and commands.
type Server struct {
	handlers     Handlers
	defaultActor kernel.ActorID
	logger       *slog.Logger
}

// NewServer creates the API server. defaultActor is used for status changes
// that carry no actor header; when empty such changes are rejected.
func NewServer(handlers Handlers, defaultActor string, logger *slog.Logger) (*Server, error) {
	s := &Server{handlers: handlers, logger: logger.With("component", "http_server")}
	if strings.TrimSpace(defaultActor) != "" {
		actor, err := kernel.NewActorID(defaultActor)
		if err != nil {
			return nil, err
		}
		s.defaultActor = actor
	}
	return s, nil
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CalculatePricing godoc
//
//	@Summary	Quote a decoration request
//	@Tags		pricing
//	@Accept		json
//	@Produce	json
//	@Param		request	body		QuoteRequest	true	"Decoration request"
//	@Success	200		{object}	pricing.Result	"null when quantity is not positive"
//	@Failure	400		{object}	ErrorResponse
//	@Router		/pricing/calculate [post]
func (s *Server) CalculatePricing(c echo.Context) error {
	var req QuoteRequest
	if err := s.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusOK, nil)
	}

	request, err := decoration.NewRequest(req.params())
	if err != nil {
		return s.fail(c, err, nil)
	}
	query, err := queries.NewCalculatePricingQuery(request)
	if err != nil {
		return s.fail(c, err, nil)
	}

	result, err := s.handlers.Pricing.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, nil)
	}
	return c.JSON(http.StatusOK, result)
}

// PricingHealth godoc
//
//	@Summary	Pricing service health
//	@Tags		pricing
//	@Produce	json
//	@Success	200	{object}	PricingHealthResponse
//	@Router		/pricing/health [get]
func (s *Server) PricingHealth(c echo.Context) error {
	h := s.handlers.Health.Current(c.Request().Context())
	return c.JSON(http.StatusOK, PricingHealthResponse{
		Healthy:       h.Healthy,
		UsingFallback: h.UsingFallback(),
		CheckedAt:     h.CheckedAt,
		Error:         h.Error,
	})
}

func (s *Server) ListMethods(c echo.Context) error {
	return c.JSON(http.StatusOK, decoration.Methods())
}

func (s *Server) ListLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, decoration.Locations())
}

// SubmitQuote godoc
//
//	@Summary	Submit a debounced quote request
//	@Tags		pricing
//	@Accept		json
//	@Produce	json
//	@Param		sessionId	path		string			true	"Client session UUID"
//	@Param		request		body		QuoteRequest	true	"Decoration request"
//	@Success	202			{object}	SubmitQuoteResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/pricing/sessions/{sessionId} [post]
func (s *Server) SubmitQuote(c echo.Context) error {
	session, err := s.handlers.Sessions.Session(c.Param("sessionId"))
	if err != nil {
		return s.fail(c, err, nil)
	}

	var req QuoteRequest
	if err = s.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	seq, err := session.Submit(c.Request().Context(), req.params())
	if err != nil {
		return s.fail(c, err, nil)
	}
	return c.JSON(http.StatusAccepted, SubmitQuoteResponse{SessionID: c.Param("sessionId"), Seq: seq})
}

// LatestQuote godoc
//
//	@Summary	Latest applied quote of a session
//	@Tags		pricing
//	@Produce	json
//	@Param		sessionId	path		string	true	"Client session UUID"
//	@Success	200			{object}	SnapshotResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/pricing/sessions/{sessionId} [get]
func (s *Server) LatestQuote(c echo.Context) error {
	session, err := s.handlers.Sessions.Lookup(c.Param("sessionId"))
	if err != nil {
		return s.fail(c, err, nil)
	}
	return c.JSON(http.StatusOK, toSnapshotResponse(session.Latest()))
}

// ListStatuses godoc
//
//	@Summary	Workflow statuses grouped by phase
//	@Tags		workflow
//	@Produce	json
//	@Success	200	{array}	order.PhaseGroup
//	@Router		/workflow/statuses [get]
func (s *Server) ListStatuses(c echo.Context) error {
	return c.JSON(http.StatusOK, order.Catalog())
}

// GetOrder godoc
//
//	@Summary	Order with normalized status, history and line items
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderQuery(c.Param("id"))
	if err != nil {
		return s.fail(c, err, nil)
	}

	o, err := s.handlers.Orders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err, nil)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// ChangeOrderStatus godoc
//
//	@Summary	Move an order to another workflow status
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string				true	"Order ID"
//	@Param		X-Actor-ID	header		string				false	"User making the change"
//	@Param		request		body		ChangeStatusRequest	true	"New status"
//	@Success	200			{object}	OrderResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	401			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	502			{object}	ErrorResponse	"order holds the unchanged order"
//	@Router		/orders/{id}/status [post]
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	var req ChangeStatusRequest
	if err := s.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(c.Param("id"), req.Status, actor)
	if err != nil {
		return s.fail(c, err, nil)
	}

	o, err := s.handlers.StatusChanges.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err, o)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (s *Server) actor(c echo.Context) (kernel.ActorID, error) {
	if h := c.Request().Header.Get(ActorHeader); h != "" {
		actor, err := kernel.NewActorID(h)
		if err != nil {
			return kernel.ActorID{}, fmt.Errorf("%s header is invalid: %w", ActorHeader, err)
		}
		return actor, nil
	}
	if s.defaultActor.Validate() == nil {
		return s.defaultActor, nil
	}
	return kernel.ActorID{}, errors.New(ActorHeader + " header is required")
}

func (s *Server) bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
