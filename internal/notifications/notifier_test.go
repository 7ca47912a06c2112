package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubProducer struct {
	published []*OrderConfirmation
	err       error
}

func (s *stubProducer) PublishOrderConfirmation(ctx context.Context, confirmation *OrderConfirmation) error {
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, confirmation)
	return nil
}

func (s *stubProducer) Close() error { return nil }
func (s *stubProducer) HealthCheck(ctx context.Context) error { return nil }

func TestNotifyOrderConfirmedPublishes(t *testing.T) {
	producer := &stubProducer{}
	notifier := NewKafkaNotifier(producer)

	err := notifier.NotifyOrderConfirmed(context.Background(), "GM-20260829-A1B2C3", "maria@example.com", "Henrique & Juliano", 690)
	if err != nil {
		t.Fatalf("NotifyOrderConfirmed: %v", err)
	}

	if len(producer.published) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(producer.published))
	}
	msg := producer.published[0]
	if msg.OrderCode != "GM-20260829-A1B2C3" {
		t.Errorf("OrderCode = %q", msg.OrderCode)
	}
	if msg.RecipientEmail != "maria@example.com" {
		t.Errorf("RecipientEmail = %q", msg.RecipientEmail)
	}
	if msg.PartitionKey() != "maria@example.com" {
		t.Errorf("PartitionKey = %q", msg.PartitionKey())
	}
	if msg.Total != 690 {
		t.Errorf("Total = %v", msg.Total)
	}
}

func TestNotifyOrderConfirmedPropagatesError(t *testing.T) {
	producer := &stubProducer{err: errors.New("kafka down")}
	notifier := NewKafkaNotifier(producer)

	err := notifier.NotifyOrderConfirmed(context.Background(), "GM-20260829-A1B2C3", "maria@example.com", "Henrique & Juliano", 690)
	if err == nil {
		t.Fatal("expected error when producer fails")
	}
}

func TestBuildOrderEmail(t *testing.T) {
	confirmation := NewOrderConfirmation("GM-20260829-A1B2C3", "maria@example.com", "Festa da Uva", 345.5)

	subject, body := buildOrderEmail(confirmation)
	if !strings.Contains(subject, "Festa da Uva") {
		t.Errorf("subject %q missing event title", subject)
	}
	if !strings.Contains(body, "GM-20260829-A1B2C3") {
		t.Errorf("body missing order code: %s", body)
	}
	if !strings.Contains(body, "R$ 345.50") {
		t.Errorf("body missing formatted total: %s", body)
	}
}

func TestMockEmailSenderNeverFails(t *testing.T) {
	sender := NewEmailSender(EmailConfig{MockMode: true})
	confirmation := NewOrderConfirmation("GM-20260829-A1B2C3", "maria@example.com", "Festa da Uva", 345.5)

	if err := sender.SendOrderConfirmation(context.Background(), confirmation); err != nil {
		t.Fatalf("mock sender: %v", err)
	}
}

func TestMarkFailedRecordsError(t *testing.T) {
	confirmation := NewOrderConfirmation("GM-1", "a@b.com", "X", 1)
	confirmation.MarkFailed(errors.New("smtp timeout"))

	if confirmation.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", confirmation.Status)
	}
	if confirmation.LastError == nil || *confirmation.LastError != "smtp timeout" {
		t.Errorf("LastError not recorded: %v", confirmation.LastError)
	}
}
