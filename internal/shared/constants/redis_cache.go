package constants

import (
	"fmt"
	"time"
)

// Redis keys and TTLs for the storefront.
// Pattern: guiche:{module}:{operation}:{identifier}

const CachePrefix = "guiche"

// ================== CACHE TTL DURATIONS ==================

const (
	// Catalog data comes from the seeder and changes rarely.
	TTLEventList   = 1 * time.Hour
	TTLEventDetail = 2 * time.Hour

	// Dashboard aggregations are expensive but tolerate staleness.
	TTLDashboard = 30 * time.Second

	// Browser analytics sessions; renewed on each issued id.
	TTLAnalyticsSession = 30 * time.Minute
)

// ================== CACHE KEYS ==================

const (
	CacheKeyEventsList = CachePrefix + ":events:list"
	CacheKeyDashboard  = CachePrefix + ":analytics:dashboard"

	cacheKeyEventDetail      = CachePrefix + ":events:detail:slug:"
	cacheKeyAnalyticsSession = CachePrefix + ":analytics:session:"
)

func BuildEventDetailKey(eventID string) string {
	return fmt.Sprintf("%s%s", cacheKeyEventDetail, eventID)
}

func BuildAnalyticsSessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s", cacheKeyAnalyticsSession, sessionID)
}
