package catalog

import (
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	Create(event *Event) error
	GetByID(id string) (*Event, error)
	GetAll() ([]Event, error)
	DeleteAll() error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(event *Event) error {
	return r.db.Create(event).Error
}

func (r *repository) GetByID(id string) (*Event, error) {
	var event Event
	err := r.db.Preload("Categories.Tiers").Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetAll() ([]Event, error) {
	var events []Event
	err := r.db.Preload("Categories.Tiers").Order("created_at ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteAll clears the catalog before reseeding. Tier and category rows
// go first to respect the foreign keys.
func (r *repository) DeleteAll() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&TicketTier{}).Error; err != nil {
			return fmt.Errorf("failed to delete tiers: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&TicketCategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete categories: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&Event{}).Error; err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		return nil
	})
}
