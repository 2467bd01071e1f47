package domain

import "context"

// ReservationRepository answers read-only queries over the ingested feed.
// All methods operate on the same immutable snapshot; results preserve CSV
// row order.
type ReservationRepository interface {
	FindAll() []Reservation
	// FindByPage returns the slice at offset (page-1)*limit, at most limit
	// long. Out-of-range pages yield an empty slice, never an error.
	FindByPage(page, limit int) []Reservation
	// FindBySearchTerm matches on hotel or guest name only (case-insensitive
	// substring). Empty term matches everything.
	FindBySearchTerm(term string) []Reservation
	TotalReservations() int
}

// SessionAuthenticator performs the combined Basic-Auth + form-login
// handshake against the extranet and yields a session for fetching the feed.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context) (FeedSession, error)
}

// FeedSession is an authenticated extranet session bound to its cookie jar.
type FeedSession interface {
	FetchFeed(ctx context.Context) ([]byte, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
