package database

import (
	"guiche/internal/analytics"
	"guiche/internal/catalog"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Event{},
		&catalog.TicketCategory{},
		&catalog.TicketTier{},
		&analytics.PageView{},
		&analytics.ClickEvent{},
		&analytics.CheckoutEvent{},
		&analytics.ConversionEvent{},
	)
}
