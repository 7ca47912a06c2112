package payment

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"guiche/pkg/logger"

	"github.com/google/uuid"
)

var ErrMissingBackendURL = errors.New("missing payment backend URL")

// Gateway is the single outbound collaborator of the checkout flow. One
// call per submission attempt; retries are user-initiated, never automatic.
type Gateway interface {
	CreateOrder(ctx context.Context, req Request) (*PixData, *OrderData, error)
}

// Config for the HTTP gateway client.
type Config struct {
	BackendURL string
	Timeout    time.Duration
	MockMode   bool
	MockExpiry time.Duration // PIX window used by the mock backend
}

type client struct {
	http   *http.Client
	cfg    Config
	logger *logger.Logger
}

// NewClient creates the payment gateway client. With MockMode set no
// network calls are made and PIX credentials are generated locally,
// which keeps local development independent of the real backend.
func NewClient(cfg Config) (Gateway, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MockExpiry <= 0 {
		cfg.MockExpiry = 30 * time.Minute
	}
	if !cfg.MockMode && cfg.BackendURL == "" {
		return nil, ErrMissingBackendURL
	}

	return &client{
		http:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger.GetDefault(),
	}, nil
}

func (c *client) CreateOrder(ctx context.Context, req Request) (*PixData, *OrderData, error) {
	if c.cfg.MockMode {
		return c.mockOrder(req)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BackendURL+"/api/payment", bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("payment backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read payment response: %w", err)
	}

	var payload Response
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, fmt.Errorf("payment backend returned status %d with unreadable body", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !payload.Success {
		msg := payload.Error
		if msg == "" {
			msg = fmt.Sprintf("payment backend returned status %d", resp.StatusCode)
		}
		return nil, nil, errors.New(msg)
	}

	if payload.Pix == nil || payload.Order == nil {
		return nil, nil, errors.New("payment backend returned an incomplete order")
	}

	c.logger.Info("payment order created",
		slog.String("order_id", payload.Order.ID),
		slog.String("order_code", payload.Order.Code),
	)

	return payload.Pix, payload.Order, nil
}

// mockOrder mirrors the real backend's success response without leaving
// the process.
func (c *client) mockOrder(req Request) (*PixData, *OrderData, error) {
	code, err := generateOrderCode()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate order code: %w", err)
	}

	pix := &PixData{
		Key:  uuid.New().String(),
		Type: "other",
		Name: "Guiche Ingressos LTDA",
	}
	order := &OrderData{
		ID:        uuid.New().String(),
		Code:      code,
		Status:    "pending",
		ExpiresAt: time.Now().UTC().Add(c.cfg.MockExpiry).Format(time.RFC3339),
	}

	c.logger.Info("mock payment order created",
		slog.String("order_code", order.Code),
		slog.Float64("total", req.Total),
	)

	return pix, order, nil
}

// generateOrderCode builds a human-shareable order reference like
// "GM-20260829-KXQWRT".
func generateOrderCode() (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	randomPart := make([]byte, 6)
	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("GM-%s-%s", time.Now().Format("20060102"), string(randomPart)), nil
}
