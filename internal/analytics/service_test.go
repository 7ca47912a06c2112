package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"guiche/internal/checkout"
)

type fakeRepository struct {
	pageViews   []PageView
	clicks      []ClickEvent
	checkouts   []CheckoutEvent
	conversions []ConversionEvent

	insertErr error
	queryErr  error
}

func (f *fakeRepository) InsertPageView(view *PageView) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.pageViews = append(f.pageViews, *view)
	return nil
}

func (f *fakeRepository) InsertClick(click *ClickEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.clicks = append(f.clicks, *click)
	return nil
}

func (f *fakeRepository) InsertCheckout(checkout *CheckoutEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.checkouts = append(f.checkouts, *checkout)
	return nil
}

func (f *fakeRepository) InsertConversion(conversion *ConversionEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.conversions = append(f.conversions, *conversion)
	return nil
}

func (f *fakeRepository) CountPageViews() (int64, error) {
	return int64(len(f.pageViews)), f.queryErr
}

func (f *fakeRepository) CountUniqueSessions() (int64, error) {
	if f.queryErr != nil {
		return 0, f.queryErr
	}
	seen := map[string]bool{}
	for _, v := range f.pageViews {
		seen[v.SessionID] = true
	}
	return int64(len(seen)), nil
}

func (f *fakeRepository) CountCheckouts() (int64, error) {
	return int64(len(f.checkouts)), f.queryErr
}

func (f *fakeRepository) CountConversions() (int64, error) {
	return int64(len(f.conversions)), f.queryErr
}

func (f *fakeRepository) SumRevenue() (float64, error) {
	if f.queryErr != nil {
		return 0, f.queryErr
	}
	var total float64
	for _, c := range f.conversions {
		total += c.Total
	}
	return total, nil
}

func (f *fakeRepository) ViewsByEvent() ([]eventViewRow, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	counts := map[string]*eventViewRow{}
	var order []string
	for _, v := range f.pageViews {
		if v.EventID == "" {
			continue
		}
		row, ok := counts[v.EventID]
		if !ok {
			row = &eventViewRow{EventID: v.EventID}
			counts[v.EventID] = row
			order = append(order, v.EventID)
		}
		row.Views++
	}
	rows := make([]eventViewRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *counts[id])
	}
	return rows, nil
}

func (f *fakeRepository) ClicksByEvent() ([]eventCountRow, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	counts := map[string]int64{}
	var order []string
	for _, c := range f.clicks {
		if _, ok := counts[c.EventID]; !ok {
			order = append(order, c.EventID)
		}
		counts[c.EventID]++
	}
	rows := make([]eventCountRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, eventCountRow{EventID: id, Count: counts[id]})
	}
	return rows, nil
}

func (f *fakeRepository) CheckoutsByEvent() ([]eventCountRow, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	counts := map[string]int64{}
	var order []string
	for _, c := range f.checkouts {
		if _, ok := counts[c.EventID]; !ok {
			order = append(order, c.EventID)
		}
		counts[c.EventID]++
	}
	rows := make([]eventCountRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, eventCountRow{EventID: id, Count: counts[id]})
	}
	return rows, nil
}

func (f *fakeRepository) ConversionsByEvent() ([]eventRevenueRow, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	rows := map[string]*eventRevenueRow{}
	var order []string
	for _, c := range f.conversions {
		row, ok := rows[c.EventID]
		if !ok {
			row = &eventRevenueRow{EventID: c.EventID}
			rows[c.EventID] = row
			order = append(order, c.EventID)
		}
		row.Count++
		row.Revenue += c.Total
	}
	out := make([]eventRevenueRow, 0, len(order))
	for _, id := range order {
		out = append(out, *rows[id])
	}
	return out, nil
}

func (f *fakeRepository) ViewsByPage() (map[string]int64, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	pages := map[string]int64{}
	for _, v := range f.pageViews {
		pages[v.Page]++
	}
	return pages, nil
}

func (f *fakeRepository) RecentConversions(limit int) ([]ConversionEvent, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(f.conversions) <= limit {
		return f.conversions, nil
	}
	return f.conversions[len(f.conversions)-limit:], nil
}

func (f *fakeRepository) ViewsByHour() ([]HourlyTraffic, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return []HourlyTraffic{}, nil
}

func seedTraffic(repo *fakeRepository) {
	repo.pageViews = []PageView{
		{Page: "/", SessionID: "session_1_a"},
		{Page: "/evento/henrique-juliano-uva", EventID: "henrique-juliano-uva", SessionID: "session_1_a"},
		{Page: "/evento/henrique-juliano-uva", EventID: "henrique-juliano-uva", SessionID: "session_2_b"},
		{Page: "/evento/festa-da-uva-passaporte", EventID: "festa-da-uva-passaporte", SessionID: "session_3_c"},
	}
	repo.clicks = []ClickEvent{
		{EventID: "henrique-juliano-uva", Action: "comprar", SessionID: "session_1_a"},
	}
	repo.checkouts = []CheckoutEvent{
		{EventID: "henrique-juliano-uva", SessionID: "session_1_a", Total: 345},
		{EventID: "henrique-juliano-uva", SessionID: "session_2_b", Total: 345},
	}
	repo.conversions = []ConversionEvent{
		{EventID: "henrique-juliano-uva", OrderID: "ord-1", SessionID: "session_1_a", Total: 345},
	}
}

func TestGetDashboardSummary(t *testing.T) {
	repo := &fakeRepository{}
	seedTraffic(repo)
	svc := NewService(repo)

	data, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if data.Summary.TotalPageViews != 4 {
		t.Errorf("TotalPageViews = %d, want 4", data.Summary.TotalPageViews)
	}
	if data.Summary.UniqueSessions != 3 {
		t.Errorf("UniqueSessions = %d, want 3", data.Summary.UniqueSessions)
	}
	if data.Summary.TotalCheckouts != 2 {
		t.Errorf("TotalCheckouts = %d, want 2", data.Summary.TotalCheckouts)
	}
	if data.Summary.TotalConversions != 1 {
		t.Errorf("TotalConversions = %d, want 1", data.Summary.TotalConversions)
	}
	if data.Summary.ConversionRate != "50.0%" {
		t.Errorf("ConversionRate = %q, want 50.0%%", data.Summary.ConversionRate)
	}
	if data.Summary.TotalRevenue != 345 {
		t.Errorf("TotalRevenue = %v, want 345", data.Summary.TotalRevenue)
	}
	if data.Pages["/"] != 1 {
		t.Errorf("Pages[/] = %d, want 1", data.Pages["/"])
	}
}

func TestGetDashboardEventStats(t *testing.T) {
	repo := &fakeRepository{}
	seedTraffic(repo)
	svc := NewService(repo)

	data, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	var hj *EventStats
	for i := range data.Events {
		if data.Events[i].EventID == "henrique-juliano-uva" {
			hj = &data.Events[i]
		}
	}
	if hj == nil {
		t.Fatal("missing stats for henrique-juliano-uva")
	}
	if hj.Views != 2 || hj.Clicks != 1 || hj.Checkouts != 2 || hj.Conversions != 1 {
		t.Errorf("unexpected stats: %+v", hj)
	}
	if hj.Revenue != 345 {
		t.Errorf("Revenue = %v, want 345", hj.Revenue)
	}
	if hj.ConversionRate != "50.0%" {
		t.Errorf("ConversionRate = %q, want 50.0%%", hj.ConversionRate)
	}
}

func TestGetDashboardQueryError(t *testing.T) {
	repo := &fakeRepository{queryErr: errors.New("db down")}
	svc := NewService(repo)

	if _, err := svc.GetDashboard(context.Background()); err == nil {
		t.Fatal("expected error when aggregation queries fail")
	}
}

func TestTrackPageViewPersistsRow(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo)

	err := svc.TrackPageView(context.Background(), PageViewRequest{
		Page:      "/evento/hj-guaxupe",
		EventID:   "hj-guaxupe",
		SessionID: "session_9_x",
		Referrer:  "https://instagram.com",
	})
	if err != nil {
		t.Fatalf("TrackPageView: %v", err)
	}
	if len(repo.pageViews) != 1 {
		t.Fatalf("expected 1 page view, got %d", len(repo.pageViews))
	}
	if repo.pageViews[0].EventID != "hj-guaxupe" {
		t.Errorf("EventID = %q", repo.pageViews[0].EventID)
	}
}

func TestRecordCheckoutSwallowsInsertFailure(t *testing.T) {
	repo := &fakeRepository{insertErr: errors.New("insert failed")}
	svc := NewService(repo)

	// Must not panic or surface the error to the checkout flow.
	svc.RecordCheckout(context.Background(), "hj-guaxupe", "session_9_x", nil, 100)
	if len(repo.checkouts) != 0 {
		t.Fatal("expected no rows on insert failure")
	}
}

func TestRecordCheckoutMarshalsCart(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo)

	items := []checkout.CartItem{
		{
			EventID:      "henrique-juliano-uva",
			TierID:       "vip-int",
			Quantity:     2,
			Price:        decimal.NewFromInt(300),
			Fee:          decimal.NewFromInt(45),
			Name:         "Inteira",
			CategoryName: "VIP",
		},
	}
	svc.RecordCheckout(context.Background(), "henrique-juliano-uva", "session_1_a", items, 690)

	if len(repo.checkouts) != 1 {
		t.Fatalf("expected 1 checkout row, got %d", len(repo.checkouts))
	}
	row := repo.checkouts[0]
	if row.Total != 690 {
		t.Errorf("Total = %v, want 690", row.Total)
	}
	if !strings.Contains(row.Items, `"quantity":2`) || !strings.Contains(row.Items, `"category":"VIP"`) {
		t.Errorf("Items JSON missing cart fields: %s", row.Items)
	}
}

func TestIssueSessionFormat(t *testing.T) {
	svc := NewService(&fakeRepository{})

	id, err := svc.IssueSession(context.Background())
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if !strings.HasPrefix(id, "session_") {
		t.Errorf("session id %q missing prefix", id)
	}
	parts := strings.Split(id, "_")
	if len(parts) != 3 || len(parts[2]) != 9 {
		t.Errorf("session id %q not in session_<ts>_<suffix> form", id)
	}

	other, err := svc.IssueSession(context.Background())
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if id == other {
		t.Error("expected unique session ids")
	}
}

func TestFormatRate(t *testing.T) {
	cases := []struct {
		conversions int64
		checkouts   int64
		want        string
	}{
		{0, 0, "0.0%"},
		{0, 10, "0.0%"},
		{1, 2, "50.0%"},
		{1, 3, "33.3%"},
		{3, 3, "100.0%"},
	}
	for _, tc := range cases {
		if got := formatRate(tc.conversions, tc.checkouts); got != tc.want {
			t.Errorf("formatRate(%d, %d) = %q, want %q", tc.conversions, tc.checkouts, got, tc.want)
		}
	}
}
