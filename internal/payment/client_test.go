package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testRequest() Request {
	return Request{
		Customer: Customer{
			Name:  "Joao Silva",
			Email: "joao@example.com",
			CPF:   "52998224725",
			Phone: "54999112233",
		},
		Items: []Item{
			{Title: "2x Pista - Geral", UnitPrice: 92, Quantity: 2},
		},
		Total: 184,
	}
}

func TestCreateOrder_Success(t *testing.T) {
	var gotPath string
	var gotBody Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Response{
			Success: true,
			Pix:     &PixData{Key: "pix-key-123", Type: "cnpj", Name: "Guiche"},
			Order:   &OrderData{ID: "ord-1", Code: "GM-20260829-ABCDEF", Status: "pending", ExpiresAt: "2026-08-29T21:00:00Z"},
		})
	}))
	defer srv.Close()

	gw, err := NewClient(Config{BackendURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	pix, order, err := gw.CreateOrder(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if gotPath != "/api/payment" {
		t.Errorf("request path = %q, want /api/payment", gotPath)
	}
	if gotBody.Customer.CPF != "52998224725" {
		t.Errorf("customer cpf = %q, want digits only", gotBody.Customer.CPF)
	}
	if pix.Key != "pix-key-123" {
		t.Errorf("pix key = %q", pix.Key)
	}
	if order.Code != "GM-20260829-ABCDEF" {
		t.Errorf("order code = %q", order.Code)
	}
}

func TestCreateOrder_BackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(Response{Success: false, Error: "chave PIX indisponivel"})
	}))
	defer srv.Close()

	gw, err := NewClient(Config{BackendURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, _, err = gw.CreateOrder(context.Background(), testRequest())
	if err == nil || err.Error() != "chave PIX indisponivel" {
		t.Fatalf("expected backend error message, got %v", err)
	}
}

func TestCreateOrder_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	gw, err := NewClient(Config{BackendURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, _, err = gw.CreateOrder(context.Background(), testRequest())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestCreateOrder_IncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// success flag without PIX credentials must not reach checkout
		json.NewEncoder(w).Encode(Response{Success: true})
	}))
	defer srv.Close()

	gw, err := NewClient(Config{BackendURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, _, err = gw.CreateOrder(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error for incomplete response")
	}
}

func TestCreateOrder_NetworkError(t *testing.T) {
	gw, err := NewClient(Config{BackendURL: "http://127.0.0.1:1", Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, _, err := gw.CreateOrder(context.Background(), testRequest()); err == nil {
		t.Fatal("expected network error")
	}
}

func TestCreateOrder_MockMode(t *testing.T) {
	gw, err := NewClient(Config{MockMode: true, MockExpiry: 30 * time.Minute})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	pix, order, err := gw.CreateOrder(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if pix.Key == "" || order.Code == "" {
		t.Fatal("mock mode must produce pix key and order code")
	}
	if !strings.HasPrefix(order.Code, "GM-") {
		t.Errorf("order code = %q, want GM- prefix", order.Code)
	}

	expires, err := time.Parse(time.RFC3339, order.ExpiresAt)
	if err != nil {
		t.Fatalf("expiresAt not RFC3339: %v", err)
	}
	if until := time.Until(expires); until < 29*time.Minute || until > 31*time.Minute {
		t.Errorf("mock expiry %v, want ~30m", until)
	}
}

func TestNewClient_RequiresBackendURL(t *testing.T) {
	if _, err := NewClient(Config{}); err != ErrMissingBackendURL {
		t.Fatalf("expected ErrMissingBackendURL, got %v", err)
	}
}
