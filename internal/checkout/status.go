package checkout

// State is the checkout step a session is in.
type State string

const (
	// StateEmpty is the terminal redirect-only state for a session
	// created with no cart items.
	StateEmpty State = "EMPTY"
	// StateForm collects customer data; the initial state.
	StateForm State = "FORM"
	// StatePix displays the PIX credentials and runs the countdown.
	StatePix State = "PIX"
	// StateSuccess is terminal; only return-to-start remains.
	StateSuccess State = "SUCCESS"
)

func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions leave this state.
func (s State) IsTerminal() bool {
	return s == StateEmpty || s == StateSuccess
}

// CanSubmit reports whether an order submission is accepted in this state.
func (s State) CanSubmit() bool {
	return s == StateForm
}
