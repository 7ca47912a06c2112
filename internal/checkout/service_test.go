package checkout

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"guiche/internal/payment"
	"guiche/pkg/logger"

	"github.com/google/uuid"
)

type stubGateway struct {
	mu     sync.Mutex
	calls  int
	err    error
	expiry time.Duration
}

func (g *stubGateway) CreateOrder(ctx context.Context, req payment.Request) (*payment.PixData, *payment.OrderData, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()

	if g.err != nil {
		return nil, nil, g.err
	}

	pix := &payment.PixData{Key: "chave-" + uuid.NewString(), Type: "other", Name: "Guiche"}
	order := &payment.OrderData{
		ID:        uuid.NewString(),
		Code:      "GM-TEST-" + string(rune('A'+n-1)),
		Status:    "pending",
		ExpiresAt: time.Now().Add(g.expiry).UTC().Format(time.RFC3339),
	}
	return pix, order, nil
}

func (g *stubGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type recordingTracker struct {
	mu          sync.Mutex
	checkouts   int
	conversions int
	lastOrderID string
}

func (r *recordingTracker) RecordCheckout(ctx context.Context, eventID, sessionID string, items []CartItem, total float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkouts++
}

func (r *recordingTracker) RecordConversion(ctx context.Context, eventID, orderID, sessionID string, total float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conversions++
	r.lastOrderID = orderID
}

type recordingNotifier struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (r *recordingNotifier) NotifyOrderConfirmed(ctx context.Context, orderCode, email, eventTitle string, total float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, orderCode)
	return r.err
}

func newTestService(t *testing.T, gw payment.Gateway) (Service, *recordingTracker, *recordingNotifier) {
	t.Helper()

	store := NewStore(time.Hour, time.Minute)
	t.Cleanup(store.Stop)

	tracker := &recordingTracker{}
	notifier := &recordingNotifier{}
	svc := NewService(store, gw, tracker, notifier, Options{CopiedResetAfter: 20 * time.Millisecond})
	return svc, tracker, notifier
}

func TestService_FullFlow(t *testing.T) {
	gw := &stubGateway{expiry: 30 * time.Minute}
	svc, tracker, notifier := newTestService(t, gw)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, testCart(), "Henrique e Juliano")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if created.State != StateForm.String() {
		t.Fatalf("state = %s, want FORM", created.State)
	}
	if created.Total != 690 {
		t.Errorf("total = %v, want 690", created.Total)
	}
	if tracker.checkouts != 1 {
		t.Errorf("checkout tracked %d times, want 1", tracker.checkouts)
	}

	id := uuid.MustParse(created.SessionID)

	submitted, err := svc.SubmitOrder(ctx, id, testCustomer())
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if submitted.State != StatePix.String() {
		t.Fatalf("state = %s, want PIX", submitted.State)
	}
	if submitted.Pix == nil || submitted.Order == nil {
		t.Fatal("PIX step must expose pix and order data")
	}
	if submitted.TimeLeft == "" || submitted.TimeLeft == ExpiredLabel {
		t.Errorf("timeLeft = %q, want a running countdown", submitted.TimeLeft)
	}

	copied, err := svc.CopyKey(id)
	if err != nil {
		t.Fatalf("CopyKey: %v", err)
	}
	if copied.Key != submitted.Pix.Key {
		t.Errorf("copied key = %q, want %q", copied.Key, submitted.Pix.Key)
	}

	done, err := svc.MarkPaid(ctx, id)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if done.State != StateSuccess.String() {
		t.Fatalf("state = %s, want SUCCESS", done.State)
	}
	if done.Order.Code == "" || done.Customer.Email != "joao@example.com" {
		t.Error("success step must expose order code and customer email")
	}

	if tracker.conversions != 1 || tracker.lastOrderID != submitted.Order.ID {
		t.Errorf("conversion tracked %d times with order %q", tracker.conversions, tracker.lastOrderID)
	}
	if len(notifier.codes) != 1 || notifier.codes[0] != submitted.Order.Code {
		t.Errorf("notifier codes = %v", notifier.codes)
	}
}

func TestService_SubmitValidationBlocksGateway(t *testing.T) {
	gw := &stubGateway{expiry: 30 * time.Minute}
	svc, _, _ := newTestService(t, gw)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, testCart(), "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	id := uuid.MustParse(created.SessionID)

	customer := testCustomer()
	customer.Email = ""

	var validationErr *ValidationError
	if _, err := svc.SubmitOrder(ctx, id, customer); !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gw.callCount() != 0 {
		t.Errorf("gateway called %d times, validation must block the call", gw.callCount())
	}
}

func TestService_GatewayFailureKeepsForm(t *testing.T) {
	gw := &stubGateway{err: errors.New("backend indisponivel")}
	svc, _, _ := newTestService(t, gw)
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, testCart(), "")
	id := uuid.MustParse(created.SessionID)

	var gatewayErr *GatewayError
	if _, err := svc.SubmitOrder(ctx, id, testCustomer()); !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}

	sess, err := svc.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.State != StateForm.String() {
		t.Errorf("state = %s, want FORM", sess.State)
	}
	if sess.Error == "" {
		t.Error("gateway failure must surface a message")
	}
}

func TestService_ResubmitAfterBackCallsGatewayAgain(t *testing.T) {
	gw := &stubGateway{expiry: 30 * time.Minute}
	svc, _, _ := newTestService(t, gw)
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, testCart(), "")
	id := uuid.MustParse(created.SessionID)

	first, err := svc.SubmitOrder(ctx, id, testCustomer())
	if err != nil {
		t.Fatalf("first SubmitOrder: %v", err)
	}

	if _, err := svc.ReturnToForm(id); err != nil {
		t.Fatalf("ReturnToForm: %v", err)
	}

	second, err := svc.SubmitOrder(ctx, id, testCustomer())
	if err != nil {
		t.Fatalf("second SubmitOrder: %v", err)
	}

	if gw.callCount() != 2 {
		t.Errorf("gateway called %d times, want 2 (no caching of PIX data)", gw.callCount())
	}
	if second.Pix.Key == first.Pix.Key {
		t.Error("resubmission must fetch a fresh PIX key, not reuse the stale one")
	}
}

func TestService_RejectsZeroQuantity(t *testing.T) {
	svc, _, _ := newTestService(t, &stubGateway{expiry: time.Minute})

	cart := testCart()
	cart[0].Quantity = 0

	if _, err := svc.CreateSession(context.Background(), cart, ""); err == nil {
		t.Fatal("expected error for zero-quantity cart item")
	}
}

func TestService_LogsOrderLifecycle(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.GetDefault()
	logger.SetDefault(&logger.Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))})
	defer logger.SetDefault(prev)

	svc, _, _ := newTestService(t, &stubGateway{expiry: time.Minute})
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, testCart(), "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	id := uuid.MustParse(created.SessionID)

	submitted, err := svc.SubmitOrder(ctx, id, testCustomer())
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if _, err := svc.MarkPaid(ctx, id); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Order Created") || !strings.Contains(out, "Order Paid") {
		t.Errorf("log output missing order lifecycle entries:\n%s", out)
	}
	if !strings.Contains(out, submitted.Order.Code) {
		t.Errorf("log output missing order code %q:\n%s", submitted.Order.Code, out)
	}
	if !strings.Contains(out, created.SessionID) {
		t.Errorf("log output missing session id %q:\n%s", created.SessionID, out)
	}
}

func TestService_EmptyCartIsNotAnError(t *testing.T) {
	svc, tracker, _ := newTestService(t, &stubGateway{expiry: time.Minute})

	sess, err := svc.CreateSession(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("CreateSession with empty cart: %v", err)
	}
	if sess.State != StateEmpty.String() {
		t.Errorf("state = %s, want %s", sess.State, StateEmpty)
	}
	if tracker.checkouts != 0 {
		t.Error("empty cart must not record a checkout")
	}
}

func TestService_SessionNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, &stubGateway{expiry: time.Minute})

	if _, err := svc.GetSession(uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.MarkPaid(context.Background(), uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("MarkPaid = %v, want ErrSessionNotFound", err)
	}
}

func TestStore_EvictsIdleSessions(t *testing.T) {
	store := NewStore(10*time.Millisecond, 5*time.Millisecond)
	defer store.Stop()

	sess := NewSession(testCart(), "")
	store.Put(sess)

	if store.Len() != 1 {
		t.Fatalf("store len = %d, want 1", store.Len())
	}

	deadline := time.Now().Add(2 * time.Second)
	for store.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("idle session was not evicted")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
