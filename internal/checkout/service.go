package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"guiche/internal/payment"
	"guiche/internal/shared/utils/brdoc"
	"guiche/pkg/logger"

	"github.com/google/uuid"
)

// Tracker records storefront analytics. Failures are logged by the
// implementation and never reach the buyer. Interface lives here to
// avoid a circular dependency on the analytics package.
type Tracker interface {
	RecordCheckout(ctx context.Context, eventID, sessionID string, items []CartItem, total float64)
	RecordConversion(ctx context.Context, eventID, orderID, sessionID string, total float64)
}

// Notifier publishes the order-confirmed message that triggers ticket
// delivery by email. Implemented by the notifications package.
type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, orderCode, email, eventTitle string, total float64) error
}

// Service drives checkout sessions through form, pix and success.
type Service interface {
	CreateSession(ctx context.Context, cart []CartItem, eventTitle string) (*SessionResponse, error)
	GetSession(id uuid.UUID) (*SessionResponse, error)
	SubmitOrder(ctx context.Context, id uuid.UUID, customer CustomerInfo) (*SessionResponse, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*SessionResponse, error)
	CopyKey(id uuid.UUID) (*CopyKeyResponse, error)
	ReturnToForm(id uuid.UUID) (*SessionResponse, error)
	Shutdown()
}

// Options tune session behavior; zero values fall back to the
// storefront defaults.
type Options struct {
	CopiedResetAfter time.Duration // copied indicator self-reset, default 3s
	TickInterval     time.Duration // countdown resolution, default 1s
}

type service struct {
	store    *Store
	gateway  payment.Gateway
	tracker  Tracker
	notifier Notifier
	opts     Options
	logger   *logger.Logger
}

func NewService(store *Store, gateway payment.Gateway, tracker Tracker, notifier Notifier, opts Options) Service {
	if opts.CopiedResetAfter <= 0 {
		opts.CopiedResetAfter = 3 * time.Second
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}

	return &service{
		store:    store,
		gateway:  gateway,
		tracker:  tracker,
		notifier: notifier,
		opts:     opts,
		logger:   logger.GetDefault(),
	}
}

func (s *service) CreateSession(ctx context.Context, cart []CartItem, eventTitle string) (*SessionResponse, error) {
	for _, item := range cart {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("cart item %s has quantity %d, want >= 1", item.TierID, item.Quantity)
		}
	}

	sess := NewSession(cart, eventTitle)
	s.store.Put(sess)

	if s.tracker != nil && len(cart) > 0 {
		total, _ := sess.Total().Round(2).Float64()
		s.tracker.RecordCheckout(ctx, cart[0].EventID, sess.ID().String(), cart, total)
	}

	resp := toSessionResponse(sess.snapshot())
	return &resp, nil
}

func (s *service) GetSession(id uuid.UUID) (*SessionResponse, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	resp := toSessionResponse(sess.snapshot())
	return &resp, nil
}

// SubmitOrder runs the form -> pix transition: validate, call the
// gateway once, store the returned PIX credentials. Any failure leaves
// the session on the form step with a message; retrying is up to the
// buyer.
func (s *service) SubmitOrder(ctx context.Context, id uuid.UUID, customer CustomerInfo) (*SessionResponse, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if err := sess.beginSubmit(customer); err != nil {
		return nil, err
	}

	pix, order, callErr := s.gateway.CreateOrder(ctx, buildPaymentRequest(sess, customer))
	if err := sess.finishSubmit(pix, order, callErr); err != nil {
		s.logger.Warn("order submission failed",
			slog.String("session_id", sess.ID().String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.startCountdown(sess)

	snap := sess.snapshot()
	if snap.Order != nil {
		eventID := ""
		if len(snap.Cart) > 0 {
			eventID = snap.Cart[0].EventID
		}
		total, _ := snap.Total.Round(2).Float64()
		s.logger.WithSessionID(snap.ID.String()).LogOrderCreated(ctx, snap.Order.Code, eventID, total)
	}

	resp := toSessionResponse(snap)
	return &resp, nil
}

func (s *service) MarkPaid(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if err := sess.MarkPaid(); err != nil {
		return nil, err
	}

	snap := sess.snapshot()
	total, _ := snap.Total.Round(2).Float64()

	if snap.Order != nil {
		s.logger.LogOrderPaid(ctx, snap.Order.Code)
	}

	if s.tracker != nil && snap.Order != nil && len(snap.Cart) > 0 {
		s.tracker.RecordConversion(ctx, snap.Cart[0].EventID, snap.Order.ID, snap.ID.String(), total)
	}

	if s.notifier != nil && snap.Order != nil {
		if err := s.notifier.NotifyOrderConfirmed(ctx, snap.Order.Code, snap.Customer.Email, snap.EventTitle, total); err != nil {
			// Ticket delivery is retried by the consumer side; the
			// buyer-facing transition never blocks on it.
			s.logger.Error("failed to publish order confirmation",
				slog.String("order_code", snap.Order.Code),
				slog.Any("error", err),
			)
		}
	}

	resp := toSessionResponse(snap)
	return &resp, nil
}

func (s *service) CopyKey(id uuid.UUID) (*CopyKeyResponse, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	key, err := sess.CopyKey(s.opts.CopiedResetAfter)
	if err != nil {
		return nil, err
	}

	return &CopyKeyResponse{Key: key, Copied: true}, nil
}

func (s *service) ReturnToForm(id uuid.UUID) (*SessionResponse, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if err := sess.ReturnToForm(); err != nil {
		return nil, err
	}

	resp := toSessionResponse(sess.snapshot())
	return &resp, nil
}

func (s *service) Shutdown() {
	s.store.Stop()
}

// startCountdown runs the one-second ticker for a session on the pix
// step. The goroutine exits when the session leaves pix, the window
// expires, or the session is torn down.
func (s *service) startCountdown(sess *Session) {
	ctx, cancel := context.WithCancel(context.Background())
	sess.setCountdownCancel(cancel)

	go func() {
		ticker := time.NewTicker(s.opts.TickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if done := sess.Tick(now); done {
					return
				}
			}
		}
	}()
}

// buildPaymentRequest assembles the gateway payload: item titles carry
// quantity, tier and category; CPF and phone travel as bare digits.
func buildPaymentRequest(sess *Session, customer CustomerInfo) payment.Request {
	snap := sess.snapshot()

	items := make([]payment.Item, 0, len(snap.Cart))
	for _, item := range snap.Cart {
		unit, _ := item.Price.Add(item.Fee).Round(2).Float64()
		items = append(items, payment.Item{
			Title:     fmt.Sprintf("%dx %s - %s", item.Quantity, item.Name, item.CategoryName),
			UnitPrice: unit,
			Quantity:  item.Quantity,
		})
	}

	total, _ := snap.Total.Round(2).Float64()

	return payment.Request{
		Customer: payment.Customer{
			Name:  customer.Name,
			Email: customer.Email,
			CPF:   brdoc.StripNonDigits(customer.CPF),
			Phone: brdoc.StripNonDigits(customer.Phone),
		},
		Items: items,
		Total: total,
	}
}
