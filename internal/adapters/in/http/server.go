// Package http exposes the order workflow over a REST API. All lifecycle
// operations go through a single transitions endpoint so the closed set of
// transitions stays closed at the edge too.
package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	respondHandler       commands.RespondCommandHandler
	startWorkHandler     commands.StartWorkCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	rateExecutorHandler  commands.RateExecutorCommandHandler
	withdrawHandler      commands.WithdrawCommandHandler

	// Query handlers
	getOrderHandler             queries.GetOrderQueryHandler
	getParticipantRatingHandler queries.GetParticipantRatingQueryHandler
	getFinancesHandler          queries.GetFinancesQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	respondHandler commands.RespondCommandHandler,
	startWorkHandler commands.StartWorkCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	rateExecutorHandler commands.RateExecutorCommandHandler,
	withdrawHandler commands.WithdrawCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getParticipantRatingHandler queries.GetParticipantRatingQueryHandler,
	getFinancesHandler queries.GetFinancesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		respondHandler:              respondHandler,
		startWorkHandler:            startWorkHandler,
		completeOrderHandler:        completeOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		rateExecutorHandler:         rateExecutorHandler,
		withdrawHandler:             withdrawHandler,
		getOrderHandler:             getOrderHandler,
		getParticipantRatingHandler: getParticipantRatingHandler,
		getFinancesHandler:          getFinancesHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/transitions", s.ApplyTransition)
	api.GET("/participants/:participantID/rating", s.GetParticipantRating)
	api.GET("/participants/:participantID/finances", s.GetFinances)
	api.POST("/participants/:participantID/withdraw", s.Withdraw)

	e.GET("/health", s.Health)
}

// Error is the problem body returned for every failed request.
type Error struct {
	Code         int      `json:"code"`
	Kind         string   `json:"kind"`
	Message      string   `json:"message"`
	AppliedSteps []string `json:"appliedSteps,omitempty"`
	FailedSteps  []string `json:"failedSteps,omitempty"`
}

// NewOrderRequest is the body of POST /orders. The order id is optional and
// generated when absent, so clients can supply their own ids for idempotent
// publication.
type NewOrderRequest struct {
	OrderID    string `json:"orderId,omitempty"`
	CustomerID string `json:"customerId"`
}

// TransitionRequest is the body of POST /orders/:orderID/transitions.
type TransitionRequest struct {
	Transition string            `json:"transition"`
	ActorID    string            `json:"actorId"`
	Payload    TransitionPayload `json:"payload,omitempty"`
}

// TransitionPayload carries the per-transition arguments: the accepted
// responder for StartWork and the rating value for Rate.
type TransitionPayload struct {
	ResponderID string   `json:"responderId,omitempty"`
	RatingValue *float64 `json:"ratingValue,omitempty"`
}

// WithdrawRequest is the body of POST /participants/:participantID/withdraw.
type WithdrawRequest struct {
	Amount float64 `json:"amount"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders - publishes a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	if request.OrderID != "" {
		if orderID, err = kernel.UUIDFromString(request.OrderID); err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, customerID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	snapshot, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, snapshot)
}

// GetOrder handles GET /api/v1/orders/:orderID - returns the order state.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

// ApplyTransition handles POST /api/v1/orders/:orderID/transitions - applies
// one lifecycle transition on behalf of the acting participant.
func (s *Server) ApplyTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request TransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Kind:    commands.KindUnauthenticated.String(),
			Message: "Invalid actor id: " + err.Error(),
		})
	}

	transition, ok := order.TransitionFromString(request.Transition)
	if !ok {
		return badRequest(ctx, "Unknown transition: "+request.Transition)
	}

	snapshot, err := s.dispatchTransition(ctx, transition, orderID, actorID, request.Payload)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

func (s *Server) dispatchTransition(
	ctx echo.Context,
	transition order.Transition,
	orderID kernel.UUID,
	actorID kernel.UUID,
	payload TransitionPayload,
) (order.Snapshot, error) {
	requestCtx := ctx.Request().Context()

	switch transition {
	case order.Respond:
		cmd, err := commands.NewRespondCommand(orderID, actorID)
		if err != nil {
			return order.Snapshot{}, err
		}
		return s.respondHandler.Handle(requestCtx, cmd)

	case order.StartWork:
		responderID, err := kernel.UUIDFromString(payload.ResponderID)
		if err != nil {
			return order.Snapshot{}, errs.NewValueIsRequiredErrorWithCause("responderId", err)
		}
		cmd, err := commands.NewStartWorkCommand(orderID, actorID, responderID)
		if err != nil {
			return order.Snapshot{}, err
		}
		return s.startWorkHandler.Handle(requestCtx, cmd)

	case order.Complete:
		cmd, err := commands.NewCompleteOrderCommand(orderID, actorID)
		if err != nil {
			return order.Snapshot{}, err
		}
		return s.completeOrderHandler.Handle(requestCtx, cmd)

	case order.Cancel:
		cmd, err := commands.NewCancelOrderCommand(orderID, actorID)
		if err != nil {
			return order.Snapshot{}, err
		}
		return s.cancelOrderHandler.Handle(requestCtx, cmd)

	case order.Rate:
		if payload.RatingValue == nil {
			return order.Snapshot{}, errs.NewValueIsRequiredError("ratingValue")
		}
		cmd, err := commands.NewRateExecutorCommand(orderID, actorID, *payload.RatingValue)
		if err != nil {
			return order.Snapshot{}, err
		}
		return s.rateExecutorHandler.Handle(requestCtx, cmd)

	default:
		return order.Snapshot{}, errs.NewValueIsInvalidError("transition")
	}
}

// GetParticipantRating handles GET /api/v1/participants/:participantID/rating.
func (s *Server) GetParticipantRating(ctx echo.Context) error {
	participantID, err := kernel.UUIDFromString(ctx.Param("participantID"))
	if err != nil {
		return badRequest(ctx, "Invalid participant id: "+err.Error())
	}

	query, err := queries.NewGetParticipantRatingQuery(participantID)
	if err != nil {
		return badRequest(ctx, "Invalid participant id: "+err.Error())
	}

	response, err := s.getParticipantRatingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetFinances handles GET /api/v1/participants/:participantID/finances.
func (s *Server) GetFinances(ctx echo.Context) error {
	participantID, err := kernel.UUIDFromString(ctx.Param("participantID"))
	if err != nil {
		return badRequest(ctx, "Invalid participant id: "+err.Error())
	}

	query, err := queries.NewGetFinancesQuery(participantID)
	if err != nil {
		return badRequest(ctx, "Invalid participant id: "+err.Error())
	}

	snapshot, err := s.getFinancesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

// Withdraw handles POST /api/v1/participants/:participantID/withdraw.
func (s *Server) Withdraw(ctx echo.Context) error {
	participantID, err := kernel.UUIDFromString(ctx.Param("participantID"))
	if err != nil {
		return badRequest(ctx, "Invalid participant id: "+err.Error())
	}

	var request WithdrawRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewWithdrawCommand(participantID, request.Amount)
	if err != nil {
		return writeError(ctx, err)
	}

	snapshot, err := s.withdrawHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    "BadRequest",
		Message: message,
	})
}

// writeError renders any use case failure as a problem body. Workflow errors
// carry their own classification; everything else falls back to the shared
// error sentinels.
func writeError(ctx echo.Context, err error) error {
	var workflowErr *commands.WorkflowError
	if errors.As(err, &workflowErr) {
		status := statusFromKind(workflowErr.Kind())
		return ctx.JSON(status, Error{
			Code:         status,
			Kind:         workflowErr.Kind().String(),
			Message:      workflowErr.Message(),
			AppliedSteps: workflowErr.AppliedSteps(),
			FailedSteps:  workflowErr.FailedSteps(),
		})
	}

	status := http.StatusInternalServerError
	kind := "Internal"
	switch {
	case errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, ports.ErrRemoteNotFound):
		status, kind = http.StatusNotFound, commands.KindNotFound.String()
	case errors.Is(err, ports.ErrRemoteUnauthenticated):
		status, kind = http.StatusUnauthorized, commands.KindUnauthenticated.String()
	case errors.Is(err, ports.ErrRemoteForbidden):
		status, kind = http.StatusForbidden, commands.KindForbidden.String()
	case errors.Is(err, ports.ErrRemoteConflict):
		status, kind = http.StatusConflict, commands.KindConflict.String()
	case errors.Is(err, ports.ErrRemoteUnavailable):
		status, kind = http.StatusBadGateway, commands.KindRemoteUnavailable.String()
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, errs.ErrValueIsOutOfRange):
		status, kind = http.StatusUnprocessableEntity, commands.KindInvalidAmount.String()
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		status, kind = http.StatusBadRequest, "BadRequest"
	}
	return ctx.JSON(status, Error{Code: status, Kind: kind, Message: err.Error()})
}

// statusFromKind maps workflow error classifications onto HTTP statuses.
func statusFromKind(kind commands.ErrorKind) int {
	switch kind {
	case commands.KindUnauthenticated:
		return http.StatusUnauthorized
	case commands.KindForbidden:
		return http.StatusForbidden
	case commands.KindInvalidTransition, commands.KindAlreadyRated, commands.KindConflict:
		return http.StatusConflict
	case commands.KindInvalidAmount:
		return http.StatusUnprocessableEntity
	case commands.KindNotFound:
		return http.StatusNotFound
	case commands.KindRemoteUnavailable, commands.KindPartialFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
