package domain

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Reservation is an immutable booking record from the extranet feed.
// Validation runs once at construction; an invalid reservation is still a
// first-class record that is kept, displayed and searchable; validity is
// advisory.
type Reservation struct {
	Locator         string
	Guest           string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	Hotel           string
	Price           *float64 // nil means the feed carried no price
	PossibleActions string

	validationErrors []string
}

func NewReservation(locator, guest string, checkIn, checkOut time.Time, hotel string, price *float64, possibleActions string) Reservation {
	r := Reservation{
		Locator:         locator,
		Guest:           guest,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Hotel:           hotel,
		Price:           price,
		PossibleActions: possibleActions,
	}
	r.validationErrors = r.validate()
	return r
}

func (r Reservation) validate() []string {
	var errs []string
	if r.Locator == "" {
		errs = append(errs, "locator is required")
	}
	if r.Guest == "" {
		errs = append(errs, "guest is required")
	}
	if r.CheckInDate.IsZero() {
		errs = append(errs, "check-in date is required")
	}
	if r.CheckOutDate.IsZero() {
		errs = append(errs, "check-out date is required")
	}
	if !r.CheckInDate.IsZero() && !r.CheckOutDate.IsZero() && r.CheckOutDate.Before(r.CheckInDate) {
		errs = append(errs, "check-out date is before check-in date")
	}
	if r.Hotel == "" {
		errs = append(errs, "hotel is required")
	}
	if r.PossibleActions == "" {
		errs = append(errs, "possible actions is required")
	}
	if r.Price != nil && *r.Price < 0 {
		errs = append(errs, "price must not be negative")
	}
	if r.IsChargeable() && r.Price == nil {
		errs = append(errs, "price is required for chargeable reservations")
	}
	return errs
}

func (r Reservation) IsValid() bool { return len(r.validationErrors) == 0 }

// ValidationErrors returns the advisory issues found at construction time.
func (r Reservation) ValidationErrors() []string {
	out := make([]string, len(r.validationErrors))
	copy(out, r.validationErrors)
	return out
}

// IsChargeable reports whether the possible-actions label permits a charge.
// The label is free text, so this is a case-insensitive substring check.
func (r Reservation) IsChargeable() bool {
	return strings.Contains(strings.ToLower(r.PossibleActions), "charge")
}

// MatchesSearchTerm checks every field for the term as a case-insensitive
// substring: locator, guest, both dates in YYYY-MM-DD form, hotel, the price
// decimal string and possible actions. An empty term matches everything.
// Note this is broader than the store's hotel/guest-only search.
func (r Reservation) MatchesSearchTerm(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)

	if strings.Contains(strings.ToLower(r.Locator), term) ||
		strings.Contains(strings.ToLower(r.Guest), term) ||
		strings.Contains(r.CheckInDate.Format(dateLayout), term) ||
		strings.Contains(r.CheckOutDate.Format(dateLayout), term) ||
		strings.Contains(strings.ToLower(r.Hotel), term) ||
		strings.Contains(strings.ToLower(r.PossibleActions), term) {
		return true
	}
	return r.Price != nil && strings.Contains(strconv.FormatFloat(*r.Price, 'f', -1, 64), term)
}

// ReservationView is the structured projection served to API consumers.
type ReservationView struct {
	Locator         string   `json:"locator"`
	Guest           string   `json:"guest"`
	CheckInDate     string   `json:"checkInDate"`
	CheckOutDate    string   `json:"checkOutDate"`
	Hotel           string   `json:"hotel"`
	Price           *float64 `json:"price"`
	PossibleActions string   `json:"possibleActions"`
}

func (r Reservation) View() ReservationView {
	return ReservationView{
		Locator:         r.Locator,
		Guest:           r.Guest,
		CheckInDate:     r.CheckInDate.Format(dateLayout),
		CheckOutDate:    r.CheckOutDate.Format(dateLayout),
		Hotel:           r.Hotel,
		Price:           r.Price,
		PossibleActions: r.PossibleActions,
	}
}
