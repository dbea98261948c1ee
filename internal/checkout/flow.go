package checkout

import (
	"context"
	"sync"

	"storefront-client/internal/cart"
	"storefront-client/internal/logger"
	"storefront-client/internal/order"

	"go.uber.org/zap"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Carts is the part of cart.Manager checkout needs.
type Carts interface {
	Purchase(ctx context.Context, src cart.Source) ([]cart.Line, error)
	Reset(ctx context.Context, src cart.Source) error
	DiscountCode(ctx context.Context) (string, error)
	ClearDiscountCode(ctx context.Context) error
}

type Orders interface {
	Place(ctx context.Context, sub order.Submission) (*order.Order, error)
}

// BuyerFunc resolves the id of the logged in buyer. An empty id lets the
// backend take it from the bearer token.
type BuyerFunc func(ctx context.Context) (string, error)

// Summary is what the checkout page shows before submitting.
type Summary struct {
	Lines  []cart.Line
	Items  int
	Totals order.Totals
}

// Flow is one checkout submission cycle for a single cart source.
type Flow struct {
	mu     sync.Mutex
	state  State
	source cart.Source
	carts  Carts
	orders Orders
	buyer  BuyerFunc
	placed *order.Order
}

func NewFlow(src cart.Source, carts Carts, orders Orders, buyer BuyerFunc) *Flow {
	if buyer == nil {
		buyer = func(context.Context) (string, error) { return "", nil }
	}
	return &Flow{state: StateIdle, source: src, carts: carts, orders: orders, buyer: buyer}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Order is the confirmed order, nil until the flow reaches StateConfirmed.
func (f *Flow) Order() *order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.placed
}

// Begin is called when the buyer opens checkout. An empty source returns
// ErrEmptyCart and the caller sends the buyer back to the cart.
func (f *Flow) Begin(ctx context.Context, deliveryMethod string) (*Summary, error) {
	lines, err := f.carts.Purchase(ctx, f.source)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return &Summary{
		Lines:  lines,
		Items:  cart.CountItems(lines),
		Totals: order.ComputeTotals(cart.SumLines(lines), deliveryMethod),
	}, nil
}

// Submit validates form and places the order. Validation failures never
// reach the network. On failure the flow returns to StateIdle and the form
// can be submitted again.
func (f *Flow) Submit(ctx context.Context, form Form) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "checkout"),
		zap.String("source", string(f.source)),
	)

	f.mu.Lock()
	switch f.state {
	case StateSubmitting, StateValidating:
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateConfirmed:
		f.mu.Unlock()
		return nil, ErrAlreadyConfirmed
	}
	f.state = StateValidating
	f.mu.Unlock()

	sub, err := f.prepare(ctx, form)
	if err != nil {
		f.setState(StateIdle)
		log.Info("checkout blocked", zap.Error(err))
		return nil, err
	}

	f.setState(StateSubmitting)
	placed, err := f.orders.Place(ctx, sub)
	if err != nil {
		f.setState(StateIdle)
		log.Warn("order submission failed", zap.Error(err))
		return nil, err
	}

	if err := f.carts.Reset(ctx, f.source); err != nil {
		log.Error("failed to clear purchased cart", zap.Error(err))
	}
	if sub.DiscountCode != "" {
		if err := f.carts.ClearDiscountCode(ctx); err != nil {
			log.Warn("failed to clear discount code", zap.Error(err))
		}
	}

	f.mu.Lock()
	f.state = StateConfirmed
	f.placed = placed
	f.mu.Unlock()

	log.Info("checkout confirmed", zap.String("order_id", string(placed.ID)))
	return placed, nil
}

func (f *Flow) prepare(ctx context.Context, form Form) (order.Submission, error) {
	if err := Validate(form); err != nil {
		return order.Submission{}, err
	}
	form = form.normalized()

	lines, err := f.carts.Purchase(ctx, f.source)
	if err != nil {
		return order.Submission{}, err
	}
	if len(lines) == 0 {
		return order.Submission{}, ErrEmptyCart
	}

	buyerID, err := f.buyer(ctx)
	if err != nil {
		return order.Submission{}, err
	}

	var code string
	if f.source == cart.SourceCart {
		if code, err = f.carts.DiscountCode(ctx); err != nil {
			return order.Submission{}, err
		}
	}

	return order.BuildSubmission(order.SubmissionInput{
		BuyerID:        buyerID,
		Lines:          lines,
		Address:        form.shippingAddress(),
		DeliveryMethod: form.DeliveryMethod,
		PaymentMethod:  form.PaymentMethod,
		Phone:          form.Phone,
		Notes:          form.Notes,
		DiscountCode:   code,
	})
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
