package analytics

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"guiche/internal/checkout"
	"guiche/internal/shared/constants"
	"guiche/pkg/cache"
	"guiche/pkg/logger"
)

// Service ingests storefront tracking events and assembles the
// dashboard. Ingestion is fire-and-forget from the buyer's point of
// view: the checkout flow never fails because a tracking insert did.
type Service interface {
	SetCacheService(cacheService cache.Service)
	TrackPageView(ctx context.Context, req PageViewRequest) error
	TrackClick(ctx context.Context, req ClickRequest) error
	TrackCheckout(ctx context.Context, req CheckoutRequest) error
	TrackConversion(ctx context.Context, req ConversionRequest) error
	GetDashboard(ctx context.Context) (*DashboardData, error)
	IssueSession(ctx context.Context) (string, error)

	// checkout.Tracker
	RecordCheckout(ctx context.Context, eventID, sessionID string, items []checkout.CartItem, total float64)
	RecordConversion(ctx context.Context, eventID, orderID, sessionID string, total float64)
}

type service struct {
	repo   Repository
	cache  cache.Service
	logger *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: logger.GetDefault(),
	}
}

// SetCacheService injects the cache dependency after construction so the
// service can be built before Redis is up.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cache = cacheService
}

func (s *service) TrackPageView(ctx context.Context, req PageViewRequest) error {
	return s.repo.InsertPageView(&PageView{
		Page:      req.Page,
		EventID:   req.EventID,
		SessionID: req.SessionID,
		Referrer:  req.Referrer,
	})
}

func (s *service) TrackClick(ctx context.Context, req ClickRequest) error {
	return s.repo.InsertClick(&ClickEvent{
		EventID:   req.EventID,
		Action:    req.Action,
		SessionID: req.SessionID,
		Data:      req.Data,
	})
}

func (s *service) TrackCheckout(ctx context.Context, req CheckoutRequest) error {
	return s.repo.InsertCheckout(&CheckoutEvent{
		EventID:   req.EventID,
		SessionID: req.SessionID,
		Items:     req.Items,
		Total:     req.Total,
	})
}

func (s *service) TrackConversion(ctx context.Context, req ConversionRequest) error {
	return s.repo.InsertConversion(&ConversionEvent{
		EventID:   req.EventID,
		OrderID:   req.OrderID,
		SessionID: req.SessionID,
		Total:     req.Total,
	})
}

// RecordCheckout is called from the checkout service when a session is
// created with a non-empty cart. Insert failures are logged and dropped.
func (s *service) RecordCheckout(ctx context.Context, eventID, sessionID string, items []checkout.CartItem, total float64) {
	err := s.TrackCheckout(ctx, CheckoutRequest{
		EventID:   eventID,
		SessionID: sessionID,
		Items:     marshalItems(items),
		Total:     total,
	})
	if err != nil {
		s.logger.Warn("failed to record checkout",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
	}
}

func (s *service) RecordConversion(ctx context.Context, eventID, orderID, sessionID string, total float64) {
	err := s.TrackConversion(ctx, ConversionRequest{
		EventID:   eventID,
		OrderID:   orderID,
		SessionID: sessionID,
		Total:     total,
	})
	if err != nil {
		s.logger.Warn("failed to record conversion",
			slog.String("order_id", orderID),
			slog.Any("error", err),
		)
	}
}

func (s *service) GetDashboard(ctx context.Context) (*DashboardData, error) {
	if s.cache != nil {
		var cached DashboardData
		err := s.cache.GetOrSet(ctx, constants.CacheKeyDashboard, constants.TTLDashboard, func() (interface{}, error) {
			return s.buildDashboard()
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		s.logger.Warn("dashboard cache unavailable, querying directly", slog.Any("error", err))
	}
	return s.buildDashboard()
}

func (s *service) buildDashboard() (*DashboardData, error) {
	summary, err := s.buildSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	events, err := s.buildEventStats()
	if err != nil {
		return nil, fmt.Errorf("failed to build event stats: %w", err)
	}

	pages, err := s.repo.ViewsByPage()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate page views: %w", err)
	}

	recent, err := s.repo.RecentConversions(20)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent conversions: %w", err)
	}

	traffic, err := s.repo.ViewsByHour()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hourly traffic: %w", err)
	}

	return &DashboardData{
		Summary:           *summary,
		Events:            events,
		Pages:             pages,
		RecentConversions: recent,
		TrafficByHour:     traffic,
	}, nil
}

func (s *service) buildSummary() (*SummaryMetrics, error) {
	views, err := s.repo.CountPageViews()
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.CountUniqueSessions()
	if err != nil {
		return nil, err
	}
	checkouts, err := s.repo.CountCheckouts()
	if err != nil {
		return nil, err
	}
	conversions, err := s.repo.CountConversions()
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.SumRevenue()
	if err != nil {
		return nil, err
	}

	return &SummaryMetrics{
		TotalPageViews:   views,
		UniqueSessions:   sessions,
		TotalOrders:      conversions,
		TotalCheckouts:   checkouts,
		TotalConversions: conversions,
		ConversionRate:   formatRate(conversions, checkouts),
		TotalRevenue:     revenue,
	}, nil
}

func (s *service) buildEventStats() ([]EventStats, error) {
	viewRows, err := s.repo.ViewsByEvent()
	if err != nil {
		return nil, err
	}
	clickRows, err := s.repo.ClicksByEvent()
	if err != nil {
		return nil, err
	}
	checkoutRows, err := s.repo.CheckoutsByEvent()
	if err != nil {
		return nil, err
	}
	conversionRows, err := s.repo.ConversionsByEvent()
	if err != nil {
		return nil, err
	}

	byEvent := make(map[string]*EventStats)
	get := func(eventID string) *EventStats {
		if stats, ok := byEvent[eventID]; ok {
			return stats
		}
		stats := &EventStats{EventID: eventID}
		byEvent[eventID] = stats
		return stats
	}

	order := make([]string, 0, len(viewRows))
	for _, row := range viewRows {
		stats := get(row.EventID)
		stats.Views = row.Views
		stats.UniqueViews = row.UniqueViews
		order = append(order, row.EventID)
	}
	for _, row := range clickRows {
		if _, ok := byEvent[row.EventID]; !ok {
			order = append(order, row.EventID)
		}
		get(row.EventID).Clicks = row.Count
	}
	for _, row := range checkoutRows {
		if _, ok := byEvent[row.EventID]; !ok {
			order = append(order, row.EventID)
		}
		get(row.EventID).Checkouts = row.Count
	}
	for _, row := range conversionRows {
		if _, ok := byEvent[row.EventID]; !ok {
			order = append(order, row.EventID)
		}
		stats := get(row.EventID)
		stats.Conversions = row.Count
		stats.Revenue = row.Revenue
	}

	events := make([]EventStats, 0, len(order))
	for _, eventID := range order {
		stats := byEvent[eventID]
		stats.ConversionRate = formatRate(stats.Conversions, stats.Checkouts)
		events = append(events, *stats)
	}
	return events, nil
}

// IssueSession mints a browser session identifier and registers it in
// Redis so the dashboard can distinguish live sessions from stale ones.
func (s *service) IssueSession(ctx context.Context) (string, error) {
	suffix, err := randomSuffix(9)
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	sessionID := fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)

	if s.cache != nil {
		key := constants.BuildAnalyticsSessionKey(sessionID)
		if err := s.cache.Set(ctx, key, time.Now().Unix(), constants.TTLAnalyticsSession); err != nil {
			s.logger.Warn("failed to register session in redis",
				slog.String("session_id", sessionID),
				slog.Any("error", err),
			)
		}
	}
	return sessionID, nil
}

func formatRate(conversions, checkouts int64) string {
	if checkouts == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(conversions)/float64(checkouts)*100)
}

func marshalItems(items []checkout.CartItem) string {
	type line struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	lines := make([]line, 0, len(items))
	for _, item := range items {
		price, _ := item.Price.Add(item.Fee).Round(2).Float64()
		lines = append(lines, line{
			Name:     item.Name,
			Category: item.CategoryName,
			Quantity: item.Quantity,
			Price:    price,
		})
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return "[]"
	}
	return string(payload)
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = suffixAlphabet[n.Int64()]
	}
	return string(out), nil
}
