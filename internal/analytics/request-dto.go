package analytics

type PageViewRequest struct {
	Page      string `json:"page" binding:"required"`
	EventID   string `json:"event_id"`
	SessionID string `json:"session_id" binding:"required"`
	Referrer  string `json:"referrer"`
}

type ClickRequest struct {
	EventID   string `json:"event_id" binding:"required"`
	Action    string `json:"action" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
	Data      string `json:"data"`
}

type CheckoutRequest struct {
	EventID   string  `json:"event_id" binding:"required"`
	SessionID string  `json:"session_id" binding:"required"`
	Items     string  `json:"items"`
	Total     float64 `json:"total"`
}

type ConversionRequest struct {
	EventID   string  `json:"event_id" binding:"required"`
	OrderID   string  `json:"order_id" binding:"required"`
	SessionID string  `json:"session_id" binding:"required"`
	Total     float64 `json:"total"`
}
