package analytics

import (
	"time"
)

// Raw tracking rows, one table per event kind. SessionID ties a browser
// session's trail together; EventID references a catalog slug and may be
// empty for pageviews outside an event page.

type PageView struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Page      string    `json:"page" gorm:"not null;size:255;index"`
	EventID   string    `json:"event_id" gorm:"size:120;index"`
	SessionID string    `json:"session_id" gorm:"not null;size:120;index"`
	Referrer  string    `json:"referrer" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

type ClickEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;size:120;index"`
	Action    string    `json:"action" gorm:"not null;size:120"`
	SessionID string    `json:"session_id" gorm:"not null;size:120;index"`
	Data      string    `json:"data" gorm:"type:text"` // free-form JSON from the storefront
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type CheckoutEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;size:120;index"`
	SessionID string    `json:"session_id" gorm:"not null;size:120;index"`
	Items     string    `json:"items" gorm:"type:text"` // cart snapshot as JSON
	Total     float64   `json:"total" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type ConversionEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;size:120;index"`
	OrderID   string    `json:"order_id" gorm:"not null;size:120"`
	SessionID string    `json:"session_id" gorm:"not null;size:120;index"`
	Total     float64   `json:"total" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (PageView) TableName() string        { return "analytics_page_views" }
func (ClickEvent) TableName() string      { return "analytics_clicks" }
func (CheckoutEvent) TableName() string   { return "analytics_checkouts" }
func (ConversionEvent) TableName() string { return "analytics_conversions" }

// Dashboard Models

type DashboardData struct {
	Summary           SummaryMetrics    `json:"summary"`
	Events            []EventStats      `json:"events"`
	Pages             map[string]int64  `json:"pages"`
	RecentConversions []ConversionEvent `json:"recent_conversions"`
	TrafficByHour     []HourlyTraffic   `json:"traffic_by_hour"`
}

type SummaryMetrics struct {
	TotalPageViews   int64   `json:"total_page_views"`
	UniqueSessions   int64   `json:"unique_sessions"`
	TotalOrders      int64   `json:"total_orders"`
	TotalCheckouts   int64   `json:"total_checkouts"`
	TotalConversions int64   `json:"total_conversions"`
	ConversionRate   string  `json:"conversion_rate"`
	TotalRevenue     float64 `json:"total_revenue"`
}

type EventStats struct {
	EventID        string  `json:"event_id"`
	Views          int64   `json:"views"`
	UniqueViews    int64   `json:"unique_views"`
	Clicks         int64   `json:"clicks"`
	Checkouts      int64   `json:"checkouts"`
	Conversions    int64   `json:"conversions"`
	Revenue        float64 `json:"revenue"`
	ConversionRate string  `json:"conversion_rate"`
}

type HourlyTraffic struct {
	Hour  int   `json:"hour"`
	Views int64 `json:"views"`
}

// Per-event aggregation rows scanned out of grouped queries.

type eventViewRow struct {
	EventID     string
	Views       int64
	UniqueViews int64
}

type eventCountRow struct {
	EventID string
	Count   int64
}

type eventRevenueRow struct {
	EventID string
	Count   int64
	Revenue float64
}
