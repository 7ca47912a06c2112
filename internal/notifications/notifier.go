package notifications

import (
	"context"
)

// KafkaNotifier bridges checkout to the Kafka producer. It satisfies the
// checkout.Notifier interface.
type KafkaNotifier struct {
	producer Producer
}

func NewKafkaNotifier(producer Producer) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) NotifyOrderConfirmed(ctx context.Context, orderCode, email, eventTitle string, total float64) error {
	confirmation := NewOrderConfirmation(orderCode, email, eventTitle, total)
	return n.producer.PublishOrderConfirmation(ctx, confirmation)
}
