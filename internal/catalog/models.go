package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a storefront listing. IDs are human-readable slugs coming
// from the promoter (e.g. "henrique-juliano-uva"). Dates stay as the
// promoter's display strings; the catalog never does date arithmetic.
type Event struct {
	ID           string    `json:"id" gorm:"primaryKey;size:120"`
	Title        string    `json:"title" gorm:"not null;size:255"`
	BannerURL    string    `json:"banner_url" gorm:"size:500"`
	CardImageURL string    `json:"card_image_url" gorm:"size:500"`
	Venue        string    `json:"venue" gorm:"not null;size:255"`
	City         string    `json:"city" gorm:"size:120"`
	State        string    `json:"state" gorm:"size:2"`
	Date         string    `json:"date" gorm:"size:20"`
	EndDate      string    `json:"end_date" gorm:"size:20"`
	Time         string    `json:"time" gorm:"size:20"`
	Description  string    `json:"description" gorm:"type:text"`
	Info         string    `json:"info" gorm:"type:text"`
	MapURL       string    `json:"map_url" gorm:"size:500"`

	Categories []TicketCategory `json:"categories" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TicketCategory groups tiers under a sector name ("Pista", "VIP").
type TicketCategory struct {
	ID      uint   `json:"-" gorm:"primaryKey"`
	EventID string `json:"-" gorm:"index;size:120"`
	Name    string `json:"name" gorm:"not null;size:120"`
	Color   string `json:"color" gorm:"size:20"`

	Tiers []TicketTier `json:"tiers" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TicketTier is one purchasable price option. Price and fee are exact
// decimals; they feed the checkout cart unchanged.
type TicketTier struct {
	ID          string          `json:"id" gorm:"primaryKey;size:120"`
	CategoryID  uint            `json:"-" gorm:"index"`
	Name        string          `json:"name" gorm:"not null;size:160"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Fee         decimal.Decimal `json:"fee" gorm:"type:numeric(10,2);not null"`
	Batch       string          `json:"batch" gorm:"size:60"`
	Description string          `json:"description" gorm:"size:255"`
}

func (Event) TableName() string {
	return "events"
}

func (TicketCategory) TableName() string {
	return "ticket_categories"
}

func (TicketTier) TableName() string {
	return "ticket_tiers"
}
