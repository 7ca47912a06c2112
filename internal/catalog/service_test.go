package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeRepository struct {
	events []Event
	err    error
	calls  int
}

func (f *fakeRepository) Create(event *Event) error { return f.err }

func (f *fakeRepository) GetByID(id string) (*Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetAll() ([]Event, error) {
	f.calls++
	return f.events, f.err
}

func (f *fakeRepository) DeleteAll() error { return f.err }

func sampleEvents() []Event {
	return []Event{
		{
			ID:    "henrique-juliano-uva",
			Title: "Henrique e Juliano | Festa da Uva",
			Venue: "Arena de Shows da Festa da Uva",
			City:  "CAXIAS DO SUL",
			State: "RS",
			Categories: []TicketCategory{
				{
					Name:  "VIP",
					Color: "#fb5607",
					Tiers: []TicketTier{
						{ID: "vip-int", Name: "VIP (Inteira)", Price: decimal.NewFromInt(300), Fee: decimal.NewFromInt(45), Batch: "2. LOTE"},
					},
				},
			},
		},
		{ID: "conquista-privilege", Title: "Conquista Privilege Festival"},
	}
}

func TestListEvents(t *testing.T) {
	repo := &fakeRepository{events: sampleEvents()}
	svc := NewService(repo)

	events, err := svc.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Categories[0].Tiers[0].ID != "vip-int" {
		t.Error("tiers must be returned with the event")
	}
}

func TestGetEvent(t *testing.T) {
	repo := &fakeRepository{events: sampleEvents()}
	svc := NewService(repo)

	event, err := svc.GetEvent("henrique-juliano-uva")
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if event.Title != "Henrique e Juliano | Festa da Uva" {
		t.Errorf("title = %q", event.Title)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	repo := &fakeRepository{events: sampleEvents()}
	svc := NewService(repo)

	if _, err := svc.GetEvent("no-such-event"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("GetEvent = %v, want ErrEventNotFound", err)
	}
}

func TestListEvents_RepositoryError(t *testing.T) {
	repo := &fakeRepository{err: errors.New("connection refused")}
	svc := NewService(repo)

	if _, err := svc.ListEvents(); err == nil {
		t.Fatal("expected error from repository")
	}
}
