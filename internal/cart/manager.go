package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront-client/internal/logger"
	"storefront-client/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns both carts: the running cart and the quick-buy selection.
// The mutex serialises read-modify-write within one process; it does not
// deduplicate repeated calls.
type Manager struct {
	mu     sync.Mutex
	repo   Repository
	notify Notifier
	newID  func() string
	now    func() time.Time
}

type Option func(*Manager)

func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notify = n
		}
	}
}

func NewManager(repo Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:   repo,
		notify: logNotifier{},
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

/* ---------- RUNNING CART ---------- */

// Add merges qty into the existing line for p, or appends a new line.
func (m *Manager) Add(ctx context.Context, p product.Product, qty int) (*Line, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	if p.ID == "" {
		return nil, ErrInvalidProduct
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	lines, err := m.repo.GetLines(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range lines {
		if lines[i].Product.ID == p.ID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		lines[idx].Quantity += qty
	} else {
		lines = append(lines, Line{ID: m.newID(), Product: p, Quantity: qty})
		idx = len(lines) - 1
	}

	if err := m.repo.SaveLines(ctx, lines); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	logger.FromCtx(ctx).Debug("cart line added",
		zap.String("product_id", p.ID),
		zap.Int("quantity", lines[idx].Quantity),
	)
	line := lines[idx]
	return &line, nil
}

// UpdateQuantity sets the line quantity verbatim. A qty below 1 is rejected
// with ErrInvalidQuantity; there is no stock clamp here, callers clamp first.
func (m *Manager) UpdateQuantity(ctx context.Context, lineID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	lines, err := m.repo.GetLines(ctx)
	if err != nil {
		return err
	}

	i := indexOf(lines, lineID)
	if i < 0 {
		return ErrLineNotFound
	}
	lines[i].Quantity = qty

	if err := m.repo.SaveLines(ctx, lines); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (m *Manager) Remove(ctx context.Context, lineID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines, err := m.repo.GetLines(ctx)
	if err != nil {
		return err
	}

	i := indexOf(lines, lineID)
	if i < 0 {
		return ErrLineNotFound
	}
	removed := lines[i]
	lines = append(lines[:i], lines[i+1:]...)

	if err := m.repo.SaveLines(ctx, lines); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	m.notify.Notify(ctx, fmt.Sprintf("%s removed from cart", removed.Product.Name))
	return nil
}

func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.SaveLines(ctx, []Line{}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (m *Manager) Lines(ctx context.Context) ([]Line, error) {
	return m.repo.GetLines(ctx)
}

func (m *Manager) ItemCount(ctx context.Context) (int, error) {
	lines, err := m.repo.GetLines(ctx)
	if err != nil {
		return 0, err
	}
	return CountItems(lines), nil
}

func (m *Manager) Subtotal(ctx context.Context) (float64, error) {
	lines, err := m.repo.GetLines(ctx)
	if err != nil {
		return 0, err
	}
	return SumLines(lines), nil
}

/* ---------- QUICK BUY ---------- */

// StartQuickBuy replaces any existing selection. The running cart is not read
// or written.
func (m *Manager) StartQuickBuy(ctx context.Context, p product.Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if p.ID == "" {
		return ErrInvalidProduct
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.SaveSelection(ctx, Selection{Product: p, Quantity: qty}); err != nil {
		return fmt.Errorf("save quick-buy selection: %w", err)
	}
	return nil
}

// QuickBuy returns the current selection, or nil when there is none.
func (m *Manager) QuickBuy(ctx context.Context) (*Selection, error) {
	return m.repo.GetSelection(ctx)
}

func (m *Manager) ClearQuickBuy(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.RemoveSelection(ctx)
}

/* ---------- CHECKOUT SOURCES ---------- */

// Purchase returns the lines a checkout from src would buy.
func (m *Manager) Purchase(ctx context.Context, src Source) ([]Line, error) {
	switch src {
	case SourceCart:
		return m.Lines(ctx)
	case SourceQuickBuy:
		sel, err := m.QuickBuy(ctx)
		if err != nil || sel == nil {
			return []Line{}, err
		}
		return []Line{sel.Line()}, nil
	default:
		return nil, ErrUnknownSource
	}
}

// Reset empties the cart src names, after a confirmed order.
func (m *Manager) Reset(ctx context.Context, src Source) error {
	switch src {
	case SourceCart:
		return m.Clear(ctx)
	case SourceQuickBuy:
		return m.ClearQuickBuy(ctx)
	default:
		return ErrUnknownSource
	}
}

/* ---------- DISCOUNT CODE ---------- */

// ApplyDiscountCode records a code to forward with the next order. Prices are
// not recomputed locally.
func (m *Manager) ApplyDiscountCode(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ErrEmptyDiscountCode
	}
	return m.repo.SaveDiscountCode(ctx, DiscountCode{Code: code, AppliedAt: m.now().UTC()})
}

// DiscountCode returns the recorded code or "".
func (m *Manager) DiscountCode(ctx context.Context) (string, error) {
	d, err := m.repo.GetDiscountCode(ctx)
	if err != nil || d == nil {
		return "", err
	}
	return d.Code, nil
}

func (m *Manager) ClearDiscountCode(ctx context.Context) error {
	return m.repo.RemoveDiscountCode(ctx)
}

func indexOf(lines []Line, id string) int {
	for i := range lines {
		if lines[i].ID == id {
			return i
		}
	}
	return -1
}
