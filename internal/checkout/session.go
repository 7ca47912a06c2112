package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"guiche/internal/payment"
	"guiche/internal/shared/utils/brdoc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpiredLabel replaces the countdown once the PIX window closes. The
// session stays on the pix step; confirmation remains a manual action.
const ExpiredLabel = "Expirado"

// Session is one buyer's checkout, from form to success. All mutation
// goes through the transition methods below; the mutex serializes the
// HTTP handlers against the countdown ticker.
type Session struct {
	mu sync.Mutex

	id         uuid.UUID
	eventTitle string
	cart       []CartItem
	total      decimal.Decimal

	state    State
	customer CustomerInfo
	pix      *payment.PixData
	order    *payment.OrderData

	submitting bool // loading guard: one in-flight gateway call
	lastError  string

	copied      bool
	copiedTimer *time.Timer

	timeLeft       string
	expiresAt      time.Time
	countdownDone  bool
	cancelTick     context.CancelFunc
	lastActivityAt time.Time
}

// NewSession starts a checkout for the given cart. An empty cart yields
// the terminal EMPTY state: the storefront only offers the way back.
func NewSession(cart []CartItem, eventTitle string) *Session {
	state := StateForm
	if len(cart) == 0 {
		state = StateEmpty
	}

	return &Session{
		id:             uuid.New(),
		eventTitle:     eventTitle,
		cart:           cart,
		total:          ComputeTotal(cart),
		state:          state,
		lastActivityAt: time.Now(),
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Total is the cart total; fixed for the session's lifetime.
func (s *Session) Total() decimal.Decimal {
	return s.total
}

// beginSubmit validates the form and arms the loading guard. The gateway
// call happens outside the lock; finishSubmit applies its outcome.
func (s *Session) beginSubmit(customer CustomerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanSubmit() {
		return ErrInvalidTransition
	}
	if s.submitting {
		return ErrSubmitInFlight
	}

	if strings.TrimSpace(customer.Name) == "" ||
		strings.TrimSpace(customer.Email) == "" ||
		strings.TrimSpace(customer.CPF) == "" {
		s.lastError = msgMissingFields
		return &ValidationError{Message: msgMissingFields}
	}
	if !brdoc.ValidateCPF(customer.CPF) {
		s.lastError = msgInvalidCPF
		return &ValidationError{Message: msgInvalidCPF}
	}

	s.customer = customer
	s.lastError = ""
	s.submitting = true
	s.touchLocked()
	return nil
}

// finishSubmit applies the gateway outcome. On failure the session stays
// on the form step and no PIX or order data is exposed; on success both
// are stored together and the session enters the pix step.
func (s *Session) finishSubmit(pix *payment.PixData, order *payment.OrderData, callErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitting = false

	if callErr != nil {
		msg := callErr.Error()
		if msg == "" {
			msg = msgGatewayFailed
		}
		s.lastError = msg
		return &GatewayError{Message: msg, Err: callErr}
	}

	expiresAt, err := time.Parse(time.RFC3339, order.ExpiresAt)
	if err != nil {
		s.lastError = msgGatewayFailed
		return &GatewayError{Message: msgGatewayFailed, Err: fmt.Errorf("unparseable order expiry %q: %w", order.ExpiresAt, err)}
	}

	s.pix = pix
	s.order = order
	s.expiresAt = expiresAt
	s.countdownDone = false
	s.timeLeft = formatRemaining(time.Until(expiresAt))
	s.state = StatePix
	s.lastError = ""
	s.touchLocked()
	return nil
}

// Tick advances the countdown. Returns true once the countdown is done
// and the ticker can stop: either the session left the pix step or the
// window expired and the label froze.
func (s *Session) Tick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePix || s.countdownDone {
		return true
	}

	remaining := s.expiresAt.Sub(now)
	if remaining <= 0 {
		s.timeLeft = ExpiredLabel
		s.countdownDone = true
		return true
	}

	s.timeLeft = formatRemaining(remaining)
	return false
}

// MarkPaid confirms payment manually. Always allowed from the pix step,
// expired countdown included; settlement is the backend's problem.
func (s *Session) MarkPaid() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePix {
		return ErrInvalidTransition
	}

	s.stopCountdownLocked()
	s.state = StateSuccess
	s.touchLocked()
	return nil
}

// CopyKey hands out the PIX key and flips the copied indicator, which
// self-resets after resetAfter. No state change.
func (s *Session) CopyKey(resetAfter time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePix || s.pix == nil {
		return "", ErrInvalidTransition
	}

	s.copied = true
	if s.copiedTimer != nil {
		s.copiedTimer.Stop()
	}
	s.copiedTimer = time.AfterFunc(resetAfter, func() {
		s.mu.Lock()
		s.copied = false
		s.mu.Unlock()
	})

	s.touchLocked()
	return s.pix.Key, nil
}

// ReturnToForm goes back from pix to the form. Customer data survives so
// the buyer does not retype it; the PIX credentials do not, so the next
// submission requests a fresh pair instead of reusing a stale one.
func (s *Session) ReturnToForm() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePix {
		return ErrInvalidTransition
	}

	s.stopCountdownLocked()
	s.pix = nil
	s.order = nil
	s.timeLeft = ""
	s.copied = false
	s.state = StateForm
	s.touchLocked()
	return nil
}

// Close releases the session's timers. Used on store eviction.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopCountdownLocked()
	if s.copiedTimer != nil {
		s.copiedTimer.Stop()
		s.copiedTimer = nil
	}
}

func (s *Session) setCountdownCancel(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTick = cancel
}

func (s *Session) stopCountdownLocked() {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
	s.countdownDone = true
}

func (s *Session) touchLocked() {
	s.lastActivityAt = time.Now()
}

// lastActivity is read by the store's TTL sweep.
func (s *Session) lastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivityAt
}

// snapshot copies the view-facing fields under the lock.
func (s *Session) snapshot() sessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sessionSnapshot{
		ID:         s.id,
		State:      s.state,
		EventTitle: s.eventTitle,
		Cart:       s.cart,
		Total:      s.total,
		Customer:   s.customer,
		Pix:        s.pix,
		Order:      s.order,
		TimeLeft:   s.timeLeft,
		Copied:     s.copied,
		Submitting: s.submitting,
		LastError:  s.lastError,
	}
}

type sessionSnapshot struct {
	ID         uuid.UUID
	State      State
	EventTitle string
	Cart       []CartItem
	Total      decimal.Decimal
	Customer   CustomerInfo
	Pix        *payment.PixData
	Order      *payment.OrderData
	TimeLeft   string
	Copied     bool
	Submitting bool
	LastError  string
}

// formatRemaining renders a positive remaining window as MM:SS.
func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return ExpiredLabel
	}
	totalSeconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
