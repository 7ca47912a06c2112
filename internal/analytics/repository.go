package analytics

import (
	"gorm.io/gorm"
)

type Repository interface {
	InsertPageView(view *PageView) error
	InsertClick(click *ClickEvent) error
	InsertCheckout(checkout *CheckoutEvent) error
	InsertConversion(conversion *ConversionEvent) error

	CountPageViews() (int64, error)
	CountUniqueSessions() (int64, error)
	CountCheckouts() (int64, error)
	CountConversions() (int64, error)
	SumRevenue() (float64, error)
	ViewsByEvent() ([]eventViewRow, error)
	ClicksByEvent() ([]eventCountRow, error)
	CheckoutsByEvent() ([]eventCountRow, error)
	ConversionsByEvent() ([]eventRevenueRow, error)
	ViewsByPage() (map[string]int64, error)
	RecentConversions(limit int) ([]ConversionEvent, error)
	ViewsByHour() ([]HourlyTraffic, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertPageView(view *PageView) error {
	return r.db.Create(view).Error
}

func (r *repository) InsertClick(click *ClickEvent) error {
	return r.db.Create(click).Error
}

func (r *repository) InsertCheckout(checkout *CheckoutEvent) error {
	return r.db.Create(checkout).Error
}

func (r *repository) InsertConversion(conversion *ConversionEvent) error {
	return r.db.Create(conversion).Error
}

func (r *repository) CountPageViews() (int64, error) {
	var count int64
	err := r.db.Model(&PageView{}).Count(&count).Error
	return count, err
}

func (r *repository) CountUniqueSessions() (int64, error) {
	var count int64
	err := r.db.Model(&PageView{}).Distinct("session_id").Count(&count).Error
	return count, err
}

func (r *repository) CountCheckouts() (int64, error) {
	var count int64
	err := r.db.Model(&CheckoutEvent{}).Count(&count).Error
	return count, err
}

func (r *repository) CountConversions() (int64, error) {
	var count int64
	err := r.db.Model(&ConversionEvent{}).Count(&count).Error
	return count, err
}

func (r *repository) SumRevenue() (float64, error) {
	var total float64
	err := r.db.Model(&ConversionEvent{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *repository) ViewsByEvent() ([]eventViewRow, error) {
	var rows []eventViewRow
	err := r.db.Model(&PageView{}).
		Select("event_id, COUNT(*) AS views, COUNT(DISTINCT session_id) AS unique_views").
		Where("event_id <> ''").
		Group("event_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ClicksByEvent() ([]eventCountRow, error) {
	var rows []eventCountRow
	err := r.db.Model(&ClickEvent{}).
		Select("event_id, COUNT(*) AS count").
		Group("event_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CheckoutsByEvent() ([]eventCountRow, error) {
	var rows []eventCountRow
	err := r.db.Model(&CheckoutEvent{}).
		Select("event_id, COUNT(*) AS count").
		Group("event_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ConversionsByEvent() ([]eventRevenueRow, error) {
	var rows []eventRevenueRow
	err := r.db.Model(&ConversionEvent{}).
		Select("event_id, COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Group("event_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ViewsByPage() (map[string]int64, error) {
	var rows []struct {
		Page  string
		Count int64
	}
	err := r.db.Model(&PageView{}).
		Select("page, COUNT(*) AS count").
		Group("page").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	pages := make(map[string]int64, len(rows))
	for _, row := range rows {
		pages[row.Page] = row.Count
	}
	return pages, nil
}

func (r *repository) RecentConversions(limit int) ([]ConversionEvent, error) {
	var conversions []ConversionEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&conversions).Error
	return conversions, err
}

func (r *repository) ViewsByHour() ([]HourlyTraffic, error) {
	var rows []HourlyTraffic
	err := r.db.Model(&PageView{}).
		Select("EXTRACT(HOUR FROM created_at)::int AS hour, COUNT(*) AS views").
		Group("hour").
		Order("hour").
		Scan(&rows).Error
	return rows, err
}
