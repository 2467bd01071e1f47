// internal/storage/memory/store.go
package memory

import (
	"strings"

	"hotel_extranet/internal/domain"
)

// Store holds the ingested reservations in CSV row order. It is built once
// at startup and never mutated afterwards, so any number of readers may
// query it concurrently without synchronization. The store is the sole
// owner of its sequence; callers always get fresh slices.
type Store struct {
	items []domain.Reservation
}

func New(items []domain.Reservation) *Store {
	cp := make([]domain.Reservation, len(items))
	copy(cp, items)
	return &Store{items: cp}
}

func (s *Store) FindAll() []domain.Reservation {
	out := make([]domain.Reservation, len(s.items))
	copy(out, s.items)
	return out
}

// FindByPage returns the records at zero-based offset (page-1)*limit, at
// most limit long. Pages and limits below 1, or pages past the end, yield
// an empty result, never an error.
func (s *Store) FindByPage(page, limit int) []domain.Reservation {
	if page < 1 || limit < 1 {
		return nil
	}
	// Bound page before multiplying so the offset cannot overflow for
	// absurd page numbers coming straight off the query string.
	if page-1 > len(s.items)/limit {
		return nil
	}
	offset := (page - 1) * limit
	if offset >= len(s.items) {
		return nil
	}
	end := offset + limit
	if end > len(s.items) {
		end = len(s.items)
	}
	out := make([]domain.Reservation, end-offset)
	copy(out, s.items[offset:end])
	return out
}

// FindBySearchTerm filters on hotel or guest name containing term as a
// case-insensitive substring, preserving order. An empty term returns
// everything. Deliberately narrower than FilterMatching.
func (s *Store) FindBySearchTerm(term string) []domain.Reservation {
	if term == "" {
		return s.FindAll()
	}
	term = strings.ToLower(term)
	var out []domain.Reservation
	for _, r := range s.items {
		if strings.Contains(strings.ToLower(r.Hotel), term) ||
			strings.Contains(strings.ToLower(r.Guest), term) {
			out = append(out, r)
		}
	}
	return out
}

// FilterMatching applies the Reservation-level predicate, which also checks
// locator, dates, price and possible actions. Kept as its own capability so
// callers choose which search semantics they want.
func (s *Store) FilterMatching(term string) []domain.Reservation {
	var out []domain.Reservation
	for _, r := range s.items {
		if r.MatchesSearchTerm(term) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) TotalReservations() int { return len(s.items) }
