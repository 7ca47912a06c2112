package checkout

import (
	"github.com/shopspring/decimal"
)

// CartItem is one selected ticket line, carried over from the event
// detail page. Quantity is always >= 1; zero-quantity lines are dropped
// before the cart reaches checkout.
type CartItem struct {
	EventID      string          `json:"event_id"`
	TierID       string          `json:"tier_id"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Fee          decimal.Decimal `json:"fee"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
}

// CustomerInfo is the buyer data collected on the form step. CPF and
// phone are kept as typed, may include mask characters; they are reduced
// to digits when the payment request is built.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	Phone string `json:"phone"`
}

// ComputeTotal sums (price + fee) * quantity over the cart. Decimal
// arithmetic keeps currency exact; rounding happens only at the wire and
// display edges.
func ComputeTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := item.Price.Add(item.Fee).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}
