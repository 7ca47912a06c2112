package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"guiche/pkg/logger"
)

// EmailSender delivers the ticket email for a confirmed order.
type EmailSender interface {
	SendOrderConfirmation(ctx context.Context, confirmation *OrderConfirmation) error
}

type EmailConfig struct {
	SMTPHost    string
	SMTPPort    int
	FromAddress string
	FromName    string
	Password    string
	MockMode    bool
}

type emailSender struct {
	config EmailConfig
	logger *logger.Logger
}

func NewEmailSender(config EmailConfig) EmailSender {
	return &emailSender{config: config, logger: logger.GetDefault()}
}

func (es *emailSender) SendOrderConfirmation(ctx context.Context, confirmation *OrderConfirmation) error {
	subject, body := buildOrderEmail(confirmation)

	if es.config.MockMode {
		es.logger.Info("mock email delivered",
			slog.String("to", confirmation.RecipientEmail),
			slog.String("subject", subject),
			slog.String("order_code", confirmation.OrderCode),
		)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", es.config.SMTPHost, es.config.SMTPPort)
	auth := smtp.PlainAuth("", es.config.FromAddress, es.config.Password, es.config.SMTPHost)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", es.config.FromName, es.config.FromAddress)
	fmt.Fprintf(&msg, "To: %s\r\n", confirmation.RecipientEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	err := smtp.SendMail(addr, auth, es.config.FromAddress, []string{confirmation.RecipientEmail}, []byte(msg.String()))
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", confirmation.RecipientEmail, err)
	}
	return nil
}

func buildOrderEmail(confirmation *OrderConfirmation) (subject, body string) {
	subject = fmt.Sprintf("Pedido confirmado - %s", confirmation.EventTitle)
	body = fmt.Sprintf(
		"Seu pagamento foi confirmado!\n\n"+
			"Pedido: %s\nEvento: %s\nValor: R$ %.2f\n\n"+
			"Seus ingressos serão enviados para este e-mail.\n",
		confirmation.OrderCode, confirmation.EventTitle, confirmation.Total,
	)
	return subject, body
}
