package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/glowshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
	"github.com/angelmondragon/glowshop-backend/pkg/types"
)

type orderRepository interface {
	Create(ctx context.Context, order Order) error
	ListBySession(ctx context.Context, sessionID string) ([]Order, error)
	FindByID(ctx context.Context, sessionID string, id uuid.UUID) (*Order, error)
}

// Service records and reads the mock order history.
type Service interface {
	Place(ctx context.Context, input PlaceInput) (*Order, error)
	List(ctx context.Context, sessionID string) ([]Order, error)
	Get(ctx context.Context, sessionID string, orderID uuid.UUID) (*Order, error)
}

// PlaceInput carries everything checkout knows at confirmation time.
type PlaceInput struct {
	SessionID       string
	Email           string
	CustomerName    string
	Lines           []Line
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
	CardLast4       string
	ShippingAddress types.Address
}

type service struct {
	repo  orderRepository
	now   func() time.Time
	newID func() uuid.UUID
}

func NewService(repo orderRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo, now: time.Now, newID: uuid.New}, nil
}

func (s *service) Place(ctx context.Context, input PlaceInput) (*Order, error) {
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order has no items")
	}
	order := Order{
		ID:              s.newID(),
		SessionID:       input.SessionID,
		Email:           input.Email,
		CustomerName:    input.CustomerName,
		Lines:           input.Lines,
		Subtotal:        input.Subtotal,
		Shipping:        input.Shipping,
		Total:           input.Total,
		Status:          enums.OrderStatusPending,
		CardLast4:       input.CardLast4,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record order")
	}
	return &order, nil
}

func (s *service) List(ctx context.Context, sessionID string) ([]Order, error) {
	orders, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, sessionID string, orderID uuid.UUID) (*Order, error) {
	order, err := s.repo.FindByID(ctx, sessionID, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}
