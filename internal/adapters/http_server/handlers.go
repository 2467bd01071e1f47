// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_extranet/internal/app"
)

type Handlers struct {
	Q        *app.QueryService
	PageSize int
	tmpl     *template.Template
}

func NewHandlers(q *app.QueryService, pageSize int) (*Handlers, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handlers{Q: q, PageSize: pageSize, tmpl: tmpl}, nil
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.listReservations)
	s.mux.Get("/download-json", h.downloadJSON)
}

type listPageData struct {
	Items       []app.ReservationItem
	Total       int
	Current     int
	TotalPages  int
	SearchTerm  string
	PageNumbers []int
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	page := 1
	if ps := r.URL.Query().Get("page"); ps != "" {
		if p, err := strconv.Atoi(ps); err == nil && p > 1 {
			page = p
		}
	}

	out, err := h.Q.List(r.Context(), term, page, h.PageSize)
	if err != nil {
		http.Error(w, "failed to load reservations", http.StatusInternalServerError)
		log.Error().Err(err).Msg("list reservations failed")
		return
	}

	data := listPageData{
		Items:       out.Items,
		Total:       out.Total,
		Current:     out.Page,
		TotalPages:  out.TotalPages,
		SearchTerm:  out.SearchTerm,
		PageNumbers: pageNumbers(out.TotalPages),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "reservations.html", data); err != nil {
		log.Error().Err(err).Msg("render reservation list failed")
	}
}

func (h *Handlers) downloadJSON(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	views, err := h.Q.Export(r.Context(), term)
	if err != nil {
		http.Error(w, "failed to export reservations", http.StatusInternalServerError)
		log.Error().Err(err).Msg("export reservations failed")
		return
	}

	body, err := json.MarshalIndent(views, "", "    ")
	if err != nil {
		http.Error(w, "failed to encode reservations", http.StatusInternalServerError)
		log.Error().Err(err).Msg("encode reservations failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="reservations.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write downloadJSON body")
	}
}

func pageNumbers(total int) []int {
	out := make([]int, total)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// template helpers

// displayDate turns the feed's YYYY-MM-DD into the DD/MM/YYYY shown in the
// table.
func displayDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// displayPrice renders a price as "1.234,56 €", or "-" when absent.
func displayPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	s := strconv.FormatFloat(*p, 'f', 2, 64)
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot+1:]
	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	out := b.String() + "," + frac + " €"
	if neg {
		out = "-" + out
	}
	return out
}
