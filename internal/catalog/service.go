package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guiche/internal/shared/constants"
	"guiche/pkg/cache"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Service interface {
	SetCacheService(cacheService cache.Service)
	ListEvents() ([]Event, error)
	GetEvent(id string) (*Event, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) ListEvents() ([]Event, error) {
	var events []Event

	err := s.cachedFetch(constants.CacheKeyEventsList, constants.TTLEventList, &events, func() (interface{}, error) {
		return s.repo.GetAll()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

func (s *service) GetEvent(id string) (*Event, error) {
	var event Event

	err := s.cachedFetch(constants.BuildEventDetailKey(id), constants.TTLEventDetail, &event, func() (interface{}, error) {
		found, err := s.repo.GetByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return found, err
	})
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}

	return &event, nil
}

// cachedFetch is cache-aside with a nil cache fallback; the catalog
// works without Redis, just slower.
func (s *service) cachedFetch(key string, ttl time.Duration, dest interface{}, fetcher func() (interface{}, error)) error {
	if s.cacheService == nil {
		data, err := fetcher()
		if err != nil {
			return err
		}
		return assign(data, dest)
	}

	return s.cacheService.GetOrSet(context.Background(), key, ttl, fetcher, dest)
}

func assign(data interface{}, dest interface{}) error {
	switch d := dest.(type) {
	case *[]Event:
		events, ok := data.([]Event)
		if !ok {
			return fmt.Errorf("unexpected fetcher result %T", data)
		}
		*d = events
	case *Event:
		event, ok := data.(*Event)
		if !ok {
			return fmt.Errorf("unexpected fetcher result %T", data)
		}
		*d = *event
	default:
		return fmt.Errorf("unsupported destination %T", dest)
	}
	return nil
}
