package checkout

type CreateSessionRequest struct {
	Cart       []CartItem `json:"cart" binding:"required"`
	EventTitle string     `json:"event_title"`
}

// SubmitOrderRequest carries the form fields. Required-field and CPF
// checks live in the state machine, not in binding tags, so a rejected
// submission surfaces the storefront message instead of a binding error.
type SubmitOrderRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	Phone string `json:"phone"`
}
