package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/glowshop-backend/internal/cart"
	"github.com/angelmondragon/glowshop-backend/internal/orders"
	pkgcheckout "github.com/angelmondragon/glowshop-backend/pkg/checkout"
	"github.com/angelmondragon/glowshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
	"github.com/angelmondragon/glowshop-backend/pkg/money"
)

// ConfirmationMessage is shown once the simulated order is placed.
const ConfirmationMessage = "¡Pedido realizado con éxito!"

// DefaultIdleTTL is how long an abandoned checkout keeps its form progress.
const DefaultIdleTTL = 30 * time.Minute

type cartSessions interface {
	View(ctx context.Context, sessionID string) (cart.View, error)
	Clear(ctx context.Context, sessionID string) (cart.View, error)
}

type orderPlacer interface {
	Place(ctx context.Context, input orders.PlaceInput) (*orders.Order, error)
}

type orderCounter interface {
	IncOrdersPlaced()
}

// Service walks a cart session through shipping, payment and confirmation.
type Service interface {
	Summary(ctx context.Context, sessionID string) (*Summary, error)
	Begin(ctx context.Context, sessionID string) (*State, error)
	SubmitShipping(ctx context.Context, sessionID string, form ShippingForm) (*State, error)
	SubmitPayment(ctx context.Context, sessionID string, form PaymentForm) (*State, error)
	Confirm(ctx context.Context, sessionID string) (*Confirmation, error)
}

// Summary is the order total block shown beside every checkout step.
type Summary struct {
	pkgcheckout.Quote
	Count     int               `json:"count"`
	ItemCount int               `json:"item_count"`
	Display   map[string]string `json:"display"`
}

// State is the progress of one session through the form.
type State struct {
	Step      enums.CheckoutStep `json:"step"`
	Shipping  *ShippingForm      `json:"shipping,omitempty"`
	CardLast4 string             `json:"card_last4,omitempty"`
	Summary   *Summary           `json:"summary"`
}

// Confirmation is returned once the order is recorded and the cart emptied.
type Confirmation struct {
	Order   *orders.Order `json:"order"`
	Message string        `json:"message"`
	Summary *Summary      `json:"summary"`
}

type progress struct {
	step      enums.CheckoutStep
	shipping  *ShippingForm
	cardLast4 string
	paid      bool
	updatedAt time.Time
}

// ServiceParams wires the checkout service.
type ServiceParams struct {
	Carts          cartSessions
	Orders         orderPlacer
	Policy         pkgcheckout.ShippingPolicy
	DefaultCountry string
	Formatter      *money.Formatter
	Metrics        orderCounter
	Logger         *logger.Logger
	// IdleTTL drops form progress untouched for longer.
	IdleTTL time.Duration
	Now     func() time.Time
}

type service struct {
	mu             sync.Mutex
	progress       map[string]*progress
	idleTTL        time.Duration
	now            func() time.Time
	carts          cartSessions
	orders         orderPlacer
	policy         pkgcheckout.ShippingPolicy
	defaultCountry string
	formatter      *money.Formatter
	metrics        orderCounter
	logg           *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart sessions required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order placer required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	formatter := params.Formatter
	if formatter == nil {
		formatter = money.NewFormatter("")
	}
	idleTTL := params.IdleTTL
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		progress:       make(map[string]*progress),
		idleTTL:        idleTTL,
		now:            now,
		carts:          params.Carts,
		orders:         params.Orders,
		policy:         params.Policy,
		defaultCountry: params.DefaultCountry,
		formatter:      formatter,
		metrics:        params.Metrics,
		logg:           params.Logger,
	}, nil
}

func (s *service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	view, err := s.carts.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.summarize(view), nil
}

func (s *service) summarize(view cart.View) *Summary {
	quote := s.policy.Quote(view.Total)
	return &Summary{
		Quote:     quote,
		Count:     view.Count,
		ItemCount: view.ItemCount,
		Display: map[string]string{
			"subtotal": s.formatter.Format(quote.Subtotal),
			"shipping": s.formatter.Format(quote.Shipping),
			"total":    s.formatter.Format(quote.Total),
		},
	}
}

func (s *service) Begin(ctx context.Context, sessionID string) (*State, error) {
	view, err := s.nonEmptyCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	now := s.now()
	s.sweepLocked(now)
	p := &progress{step: enums.CheckoutStepShipping, updatedAt: now}
	s.progress[sessionID] = p
	state := s.stateFor(p, view)
	s.mu.Unlock()
	return state, nil
}

func (s *service) SubmitShipping(ctx context.Context, sessionID string, form ShippingForm) (*State, error) {
	view, err := s.nonEmptyCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	form = form.normalize(s.defaultCountry)
	if err := form.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	p, ok := s.progress[sessionID]
	if !ok {
		p = &progress{step: enums.CheckoutStepShipping}
		s.progress[sessionID] = p
	}
	p.updatedAt = now
	p.shipping = &form
	p.step = enums.CheckoutStepPayment
	return s.stateFor(p, view), nil
}

func (s *service) SubmitPayment(ctx context.Context, sessionID string, form PaymentForm) (*State, error) {
	view, err := s.nonEmptyCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progress[sessionID]
	if !ok || p.step != enums.CheckoutStepPayment || p.shipping == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "shipping details must be submitted first")
	}
	if err := form.validate(); err != nil {
		return nil, err
	}
	p.cardLast4 = pkgcheckout.CardLast4(form.CardNumber)
	p.paid = true
	p.updatedAt = s.now()
	return s.stateFor(p, view), nil
}

func (s *service) Confirm(ctx context.Context, sessionID string) (*Confirmation, error) {
	view, err := s.carts.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	s.mu.Lock()
	p, ok := s.progress[sessionID]
	if !ok || !p.paid || p.shipping == nil {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment details must be submitted first")
	}
	shipping := *p.shipping
	cardLast4 := p.cardLast4
	s.mu.Unlock()

	checks := make([]pkgcheckout.LineQuantityInput, 0, len(view.Items))
	lines := make([]orders.Line, 0, len(view.Items))
	for _, item := range view.Items {
		checks = append(checks, pkgcheckout.LineQuantityInput{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
		})
		lines = append(lines, orders.Line{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Brand:     item.Product.Brand,
			Image:     item.Product.Image,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	if err := pkgcheckout.ValidateLineQuantities(checks); err != nil {
		return nil, err
	}

	summary := s.summarize(view)
	order, err := s.orders.Place(ctx, orders.PlaceInput{
		SessionID:       sessionID,
		Email:           shipping.Email,
		CustomerName:    shipping.Name,
		Lines:           lines,
		Subtotal:        summary.Subtotal,
		Shipping:        summary.Shipping,
		Total:           summary.Total,
		CardLast4:       cardLast4,
		ShippingAddress: shipping.Address,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.progress, sessionID)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.IncOrdersPlaced()
	}
	logCtx := s.logg.WithOrderID(s.logg.WithSessionID(ctx, sessionID), order.ID.String())
	s.logg.Info(logCtx, "simulated order placed")

	return &Confirmation{Order: order, Message: ConfirmationMessage, Summary: summary}, nil
}

func (s *service) nonEmptyCart(ctx context.Context, sessionID string) (cart.View, error) {
	if strings.TrimSpace(sessionID) == "" {
		return cart.View{}, pkgerrors.New(pkgerrors.CodeValidation, "cart session id required")
	}
	view, err := s.carts.View(ctx, sessionID)
	if err != nil {
		return cart.View{}, err
	}
	if len(view.Items) == 0 {
		return cart.View{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	return view, nil
}

// sweepLocked drops progress idle for longer than the TTL. mu must be held.
func (s *service) sweepLocked(now time.Time) {
	for id, p := range s.progress {
		if now.Sub(p.updatedAt) > s.idleTTL {
			delete(s.progress, id)
		}
	}
}

// stateFor must be called with mu held.
func (s *service) stateFor(p *progress, view cart.View) *State {
	state := &State{
		Step:      p.step,
		CardLast4: p.cardLast4,
		Summary:   s.summarize(view),
	}
	if p.shipping != nil {
		shipping := *p.shipping
		state.Shipping = &shipping
	}
	return state
}
