package app

import (
	"context"
	"fmt"
	"time"

	"hotel_extranet/internal/domain"
)

// QueryService serves the read side: paginated listing, hotel/guest search
// and the full export for the JSON download. Results are cached; the cache
// is best-effort and a failing cache only costs the recomputation.
type QueryService struct {
	repo     domain.ReservationRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReservationRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// ReservationItem is ReservationView plus the advisory validity metadata the
// list page flags rows with.
type ReservationItem struct {
	domain.ReservationView
	Valid            bool     `json:"valid"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
}

type Page struct {
	Items      []ReservationItem `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	SearchTerm string            `json:"searchTerm"`
}

// List returns one page of reservations. A non-empty term filters by the
// store's hotel/guest search first, then paginates the filtered set. A page
// beyond the last one is clamped to the last page rather than coming back
// empty.
func (s *QueryService) List(ctx context.Context, term string, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	key := fmt.Sprintf("reservations:%q:%d:%d", term, page, limit)
	var cached Page
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	out := s.list(term, page, limit)
	if out.TotalPages < out.Page {
		// past the end: serve the last page instead
		out = s.list(term, out.TotalPages, limit)
	}

	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) list(term string, page, limit int) Page {
	var items []domain.Reservation
	var total int
	if term != "" {
		filtered := s.repo.FindBySearchTerm(term)
		total = len(filtered)
		items = slicePage(filtered, page, limit)
	} else {
		items = s.repo.FindByPage(page, limit)
		total = s.repo.TotalReservations()
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return Page{
		Items:      toItems(items),
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		SearchTerm: term,
	}
}

// Export returns the complete (optionally searched) result set as views for
// the JSON download.
func (s *QueryService) Export(ctx context.Context, term string) ([]domain.ReservationView, error) {
	var rs []domain.Reservation
	if term != "" {
		rs = s.repo.FindBySearchTerm(term)
	} else {
		rs = s.repo.FindAll()
	}
	views := make([]domain.ReservationView, 0, len(rs))
	for _, r := range rs {
		views = append(views, r.View())
	}
	return views, nil
}

func slicePage(rs []domain.Reservation, page, limit int) []domain.Reservation {
	if page-1 > len(rs)/limit {
		// so the multiplication below cannot overflow
		return nil
	}
	offset := (page - 1) * limit
	if offset >= len(rs) {
		return nil
	}
	end := offset + limit
	if end > len(rs) {
		end = len(rs)
	}
	return rs[offset:end]
}

func toItems(rs []domain.Reservation) []ReservationItem {
	items := make([]ReservationItem, 0, len(rs))
	for _, r := range rs {
		items = append(items, ReservationItem{
			ReservationView:  r.View(),
			Valid:            r.IsValid(),
			ValidationErrors: r.ValidationErrors(),
		})
	}
	return items
}
