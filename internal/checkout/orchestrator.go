package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chaow95/storefront-backend/internal/cart"
	"github.com/chaow95/storefront-backend/internal/order"
)

// OrderWriter is the slice of the order repository the orchestrator needs.
type OrderWriter interface {
	CreateOrder(ctx context.Context, ord order.Order) (order.Order, error)
	CreateLines(ctx context.Context, orderID int, lines []order.Line) error
	DeleteOrder(ctx context.Context, orderID int) error
}

// Config holds the order summary constants. The formula itself is fixed.
type Config struct {
	FreeShippingThreshold float64
	ShippingFee           float64
	TaxRate               float64
	Timeout               time.Duration
}

// Orchestrator drives the three-step checkout flow and the order
// persistence sequence: header insert, line batch insert, cart clear.
type Orchestrator struct {
	orders OrderWriter
	carts  *cart.Manager
	cfg    Config
	log    *slog.Logger

	mu       sync.Mutex
	sessions map[int]*Session
}

func NewOrchestrator(orders OrderWriter, carts *cart.Manager, cfg Config, log *slog.Logger) *Orchestrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		orders:   orders,
		carts:    carts,
		cfg:      cfg,
		log:      log,
		sessions: make(map[int]*Session),
	}
}

// Session returns the user's checkout session, starting one at the shipping
// step on first use.
func (o *Orchestrator) Session(userID int) *Session {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.sessions[userID]
	if !ok {
		sess = newSession()
		o.sessions[userID] = sess
	}
	return sess
}

// EndSession discards the user's checkout progress.
func (o *Orchestrator) EndSession(userID int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.sessions, userID)
}

// CloseSession is the sign-out hook; any checkout in progress is abandoned.
func (o *Orchestrator) CloseSession(userID int) {
	o.EndSession(userID)
}

// Summarize applies the fixed breakdown formula to a subtotal: shipping is
// free above the threshold, tax is a flat rate on the subtotal.
func (o *Orchestrator) Summarize(subtotal float64) Summary {
	shipping := o.cfg.ShippingFee
	if subtotal > o.cfg.FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * o.cfg.TaxRate
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// Quote returns the current breakdown for the user's cart.
func (o *Orchestrator) Quote(userID int) Summary {
	return o.Summarize(o.carts.Get(userID).Total())
}

// PlaceOrder runs the terminal checkout action. It is only available from
// the review step. Sequence: validate every cart line carries its persisted
// product reference, insert the order header, batch-insert the lines, clear
// the cart. A line batch failure deletes the header again so no orphaned
// pending order is left behind. The whole sequence runs under one deadline.
func (o *Orchestrator) PlaceOrder(ctx context.Context, userID int) (order.Order, error) {
	if userID <= 0 {
		return order.Order{}, ErrNotAuthenticated
	}
	if o.Session(userID).Step() != StepReview {
		return order.Order{}, ErrInvalidStep
	}

	st := o.carts.Get(userID)
	items := st.Items()
	if len(items) == 0 {
		return order.Order{}, ErrEmptyCart
	}
	// validate-all-then-write: no line write may happen if any item is bad
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return order.Order{}, ErrMissingProductReference
		}
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	sum := o.Summarize(st.Total())
	now := time.Now().UTC().Format(time.RFC3339)
	hdr, err := o.orders.CreateOrder(ctx, order.Order{
		CustomerID:  userID,
		TotalAmount: sum.Total,
		Status:      order.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return order.Order{}, fmt.Errorf("%w: %w", ErrOrderCreateFailed, err)
	}

	lines := make([]order.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, order.Line{
			OrderID:         hdr.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.Price,
		})
	}

	if err := o.orders.CreateLines(ctx, hdr.ID, lines); err != nil {
		// compensate: take the header back out rather than leaving an
		// orphaned pending order
		if derr := o.orders.DeleteOrder(ctx, hdr.ID); derr != nil {
			o.log.Error("compensating order delete failed",
				"orderId", hdr.ID, "customerId", userID, "err", derr)
		}
		return order.Order{}, fmt.Errorf("%w: %w", ErrOrderCreateFailed, err)
	}

	st.Clear()
	o.EndSession(userID)

	o.log.Info("order placed",
		"orderId", hdr.ID, "customerId", userID, "lines", len(lines), "total", sum.Total)

	hdr.Lines = lines
	return hdr, nil
}
