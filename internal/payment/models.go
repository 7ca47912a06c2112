package payment

// Request/response contract of the external PIX payment backend
// (POST {backend}/api/payment).

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`   // digits only
	Phone string `json:"phone"` // digits only, may be empty
}

type Item struct {
	Title     string  `json:"title"` // "{qty}x {tier} - {category}"
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type Request struct {
	Customer Customer `json:"customer"`
	Items    []Item   `json:"items"`
	Total    float64  `json:"total"`
}

// PixData identifies where the customer sends the transfer. Immutable
// once received.
type PixData struct {
	Key  string `json:"key"`
	Type string `json:"type"` // email | phone | cpf | cnpj | other
	Name string `json:"name"` // receiver display name
}

// OrderData is the order the backend registered for this payment.
// ExpiresAt bounds the PIX window and drives the checkout countdown.
type OrderData struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expiresAt"` // RFC 3339
}

type Response struct {
	Success bool       `json:"success"`
	Pix     *PixData   `json:"pix,omitempty"`
	Order   *OrderData `json:"order,omitempty"`
	Error   string     `json:"error,omitempty"`
}
