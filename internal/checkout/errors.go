package checkout

import "errors"

// The flow has no fatal failures: every error lands the session back in
// a stable state with a user-visible message.

// ValidationError is a local form error. It blocks the gateway call and
// is recoverable by correcting the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GatewayError wraps a failed payment backend call. The session stays on
// the form step and the user may retry.
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

var (
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrSubmitInFlight    = errors.New("a submission is already in progress")
	ErrInvalidTransition = errors.New("action not allowed in the current checkout step")
)

// Form messages shown to the buyer, matching the storefront copy.
const (
	msgMissingFields = "Por favor, preencha Nome, E-mail e CPF."
	msgInvalidCPF    = "CPF inválido. Por favor, digite um CPF válido."
	msgGatewayFailed = "Erro ao processar pedido. Tente novamente."
)
