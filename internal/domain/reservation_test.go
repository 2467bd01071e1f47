package domain_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"hotel_extranet/internal/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

func TestReservation_ValidWhenAllRulesHold(t *testing.T) {
	r := domain.NewReservation("34637", "Nombre1", date(t, "2018-10-04"), date(t, "2018-10-05"), "Hotel4", ptr(112.49), "view")
	if !r.IsValid() {
		t.Fatalf("expected valid, got errors: %v", r.ValidationErrors())
	}
	if len(r.ValidationErrors()) != 0 {
		t.Fatalf("expected no validation errors, got %v", r.ValidationErrors())
	}
}

func TestReservation_CheckOutBeforeCheckIn(t *testing.T) {
	r := domain.NewReservation("34639", "Guest", date(t, "2020-01-05"), date(t, "2020-01-01"), "HotelX", ptr(50.0), "view")
	if r.IsValid() {
		t.Fatal("expected invalid")
	}
	if !containsError(r.ValidationErrors(), "check-out date is before check-in date") {
		t.Fatalf("missing date-order violation, got %v", r.ValidationErrors())
	}
}

func TestReservation_ChargeableWithoutPrice(t *testing.T) {
	for _, actions := range []string{"charge", "Charge", "view,CHARGE", "charge/refund"} {
		r := domain.NewReservation("1", "Guest", date(t, "2020-01-01"), date(t, "2020-01-02"), "Hotel", nil, actions)
		if r.IsValid() {
			t.Fatalf("actions %q without price should be invalid", actions)
		}
		if !containsError(r.ValidationErrors(), "price is required for chargeable reservations") {
			t.Fatalf("actions %q: missing chargeable-price error, got %v", actions, r.ValidationErrors())
		}
	}

	// independent of other fields' validity
	r := domain.NewReservation("", "", date(t, "2020-01-02"), date(t, "2020-01-01"), "", nil, "charge")
	if !containsError(r.ValidationErrors(), "price is required for chargeable reservations") {
		t.Fatalf("missing chargeable-price error among %v", r.ValidationErrors())
	}
}

func TestReservation_RequiredFieldsAndNegativePrice(t *testing.T) {
	r := domain.NewReservation("", "", time.Time{}, time.Time{}, "", ptr(-1.0), "")
	if r.IsValid() {
		t.Fatal("expected invalid")
	}
	want := []string{
		"locator is required",
		"guest is required",
		"check-in date is required",
		"check-out date is required",
		"hotel is required",
		"possible actions is required",
		"price must not be negative",
	}
	for _, w := range want {
		if !containsError(r.ValidationErrors(), w) {
			t.Errorf("missing %q in %v", w, r.ValidationErrors())
		}
	}
}

func TestReservation_InvalidIsStillFirstClass(t *testing.T) {
	r := domain.NewReservation("L1", "Guest", date(t, "2020-01-05"), date(t, "2020-01-01"), "Hotel", nil, "view")
	// an invalid record still projects and searches normally
	if v := r.View(); v.Locator != "L1" || v.CheckInDate != "2020-01-05" {
		t.Fatalf("unexpected view: %+v", v)
	}
	if !r.MatchesSearchTerm("guest") {
		t.Fatal("invalid reservation should still be searchable")
	}
}

func TestReservation_MatchesSearchTerm_AllFields(t *testing.T) {
	r := domain.NewReservation("34637", "Nombre1", date(t, "2018-10-04"), date(t, "2018-10-05"), "Hotel4", ptr(112.49), "view")

	for _, term := range []string{"", "34637", "nombre", "2018-10-04", "2018-10-05", "hotel4", "112.49", "VIEW"} {
		if !r.MatchesSearchTerm(term) {
			t.Errorf("term %q should match", term)
		}
	}
	for _, term := range []string{"nope", "2019", "999.99"} {
		if r.MatchesSearchTerm(term) {
			t.Errorf("term %q should not match", term)
		}
	}

	noPrice := domain.NewReservation("1", "G", date(t, "2020-01-01"), date(t, "2020-01-02"), "H", nil, "view")
	if noPrice.MatchesSearchTerm("112") {
		t.Error("absent price must not match a numeric term")
	}
}

func TestReservationView_JSONShape(t *testing.T) {
	r := domain.NewReservation("34637", "Nombre1", date(t, "2018-10-04"), date(t, "2018-10-05"), "Hotel4", nil, "view")
	b, err := json.Marshal(r.View())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)
	for _, key := range []string{`"locator":"34637"`, `"checkInDate":"2018-10-04"`, `"checkOutDate":"2018-10-05"`, `"price":null`, `"possibleActions":"view"`} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %s in %s", key, out)
		}
	}
}

func containsError(errs []string, want string) bool {
	for _, e := range errs {
		if e == want {
			return true
		}
	}
	return false
}
