package checkout

import (
	"guiche/internal/payment"
)

type SessionResponse struct {
	SessionID  string             `json:"session_id"`
	State      string             `json:"state"`
	EventTitle string             `json:"event_title"`
	Cart       []CartItem         `json:"cart"`
	Total      float64            `json:"total"`
	Customer   CustomerInfo       `json:"customer"`
	Pix        *payment.PixData   `json:"pix,omitempty"`
	Order      *payment.OrderData `json:"order,omitempty"`
	TimeLeft   string             `json:"time_left,omitempty"`
	Copied     bool               `json:"copied"`
	Submitting bool               `json:"submitting"`
	Error      string             `json:"error,omitempty"`
}

type CopyKeyResponse struct {
	Key    string `json:"key"`
	Copied bool   `json:"copied"`
}

func toSessionResponse(snap sessionSnapshot) SessionResponse {
	total, _ := snap.Total.Round(2).Float64()

	return SessionResponse{
		SessionID:  snap.ID.String(),
		State:      snap.State.String(),
		EventTitle: snap.EventTitle,
		Cart:       snap.Cart,
		Total:      total,
		Customer:   snap.Customer,
		Pix:        snap.Pix,
		Order:      snap.Order,
		TimeLeft:   snap.TimeLeft,
		Copied:     snap.Copied,
		Submitting: snap.Submitting,
		Error:      snap.LastError,
	}
}
