package app

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_extranet/internal/domain"
)

// The feed is "CSV" in name only: semicolon-delimited, double-quote quoted,
// one logical row per line. Positional fields:
//
//	locator;guest;check-in;check-out;hotel;price;possible-actions
//
// Dates are YYYY-MM-DD, the price decimal separator may be a comma, and
// fields beyond the seventh are ignored.
const (
	feedDateLayout = "2006-01-02"
	feedFieldCount = 7
)

// RowError records a feed row that could not be turned into a Reservation.
type RowError struct {
	Line   int // 1-based line number in the raw feed
	Raw    string
	Reason string
}

type ParseResult struct {
	Reservations []domain.Reservation
	Dropped      []RowError
}

// ParseFeed converts the raw feed into reservations, in source order, with
// no deduplication. It never fails as a whole: malformed rows are dropped
// individually and reported in the result. Blank lines are skipped, which
// incidentally also skips the header line (its date columns don't parse, so
// it would be dropped anyway).
func ParseFeed(raw []byte) ParseResult {
	var out ParseResult

	for i, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		fields, err := splitRow(trimmed)
		if err != nil {
			out.Dropped = append(out.Dropped, dropRow(i+1, trimmed, "malformed row: "+err.Error()))
			continue
		}
		if len(fields) < feedFieldCount {
			out.Dropped = append(out.Dropped, dropRow(i+1, trimmed, "expected at least 7 fields, got "+strconv.Itoa(len(fields))))
			continue
		}

		checkIn, err := time.Parse(feedDateLayout, fields[2])
		if err != nil {
			out.Dropped = append(out.Dropped, dropRow(i+1, trimmed, "invalid check-in date "+strconv.Quote(fields[2])))
			continue
		}
		checkOut, err := time.Parse(feedDateLayout, fields[3])
		if err != nil {
			out.Dropped = append(out.Dropped, dropRow(i+1, trimmed, "invalid check-out date "+strconv.Quote(fields[3])))
			continue
		}

		price, err := parsePrice(fields[5])
		if err != nil {
			out.Dropped = append(out.Dropped, dropRow(i+1, trimmed, "invalid price "+strconv.Quote(fields[5])))
			continue
		}

		out.Reservations = append(out.Reservations,
			domain.NewReservation(fields[0], fields[1], checkIn, checkOut, fields[4], price, fields[6]))
	}

	return out
}

func dropRow(line int, raw, reason string) RowError {
	log.Warn().Int("line", line).Str("reason", reason).Str("row", raw).Msg("dropping feed row")
	return RowError{Line: line, Raw: raw, Reason: reason}
}

// splitRow tokenizes one line with ';' as delimiter and '"' as quote.
func splitRow(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.Read()
}

// parsePrice accepts either decimal separator; an empty field means the
// price is absent, not zero.
func parsePrice(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil, err
	}
	// ParseFloat happily accepts "NaN" and "Inf", which are not prices.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("non-finite price %q", s)
	}
	return &v, nil
}
