package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	StatusPending DeliveryStatus = "pending"
	StatusQueued  DeliveryStatus = "queued"
	StatusSending DeliveryStatus = "sending"
	StatusSent    DeliveryStatus = "sent"
	StatusFailed  DeliveryStatus = "failed"
)

// OrderConfirmation is the message published when a buyer confirms a PIX
// payment. The consumer side turns it into the ticket email.
type OrderConfirmation struct {
	ID             uuid.UUID      `json:"id"`
	OrderCode      string         `json:"order_code"`
	RecipientEmail string         `json:"recipient_email"`
	EventTitle     string         `json:"event_title"`
	Total          float64        `json:"total"`
	Status         DeliveryStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	LastError      *string        `json:"last_error,omitempty"`
}

func NewOrderConfirmation(orderCode, email, eventTitle string, total float64) *OrderConfirmation {
	now := time.Now()
	return &OrderConfirmation{
		ID:             uuid.New(),
		OrderCode:      orderCode,
		RecipientEmail: email,
		EventTitle:     eventTitle,
		Total:          total,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (oc *OrderConfirmation) ToJSON() ([]byte, error) {
	return json.Marshal(oc)
}

// PartitionKey routes all messages for one buyer to the same partition
// so their emails arrive in order.
func (oc *OrderConfirmation) PartitionKey() string {
	return oc.RecipientEmail
}

func (oc *OrderConfirmation) MarkSent() {
	oc.Status = StatusSent
	oc.UpdatedAt = time.Now()
}

func (oc *OrderConfirmation) MarkFailed(err error) {
	oc.Status = StatusFailed
	oc.UpdatedAt = time.Now()
	msg := err.Error()
	oc.LastError = &msg
}
