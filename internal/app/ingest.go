package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotel_extranet/internal/domain"
)

// IngestionService runs the single eager ingestion pass at startup:
// authenticate, fetch the feed, parse it. Any authentication or fetch
// failure is fatal; the process must not serve an empty store as if the
// extranet had no reservations.
type IngestionService struct {
	auth domain.SessionAuthenticator
}

func NewIngestionService(auth domain.SessionAuthenticator) *IngestionService {
	return &IngestionService{auth: auth}
}

type IngestStats struct {
	Parsed  int
	Dropped int
}

func (s *IngestionService) Run(ctx context.Context) ([]domain.Reservation, IngestStats, error) {
	session, err := s.auth.Authenticate(ctx)
	if err != nil {
		return nil, IngestStats{}, err
	}
	log.Info().Msg("extranet session established")

	raw, err := session.FetchFeed(ctx)
	if err != nil {
		return nil, IngestStats{}, err
	}

	res := ParseFeed(raw)
	stats := IngestStats{Parsed: len(res.Reservations), Dropped: len(res.Dropped)}
	log.Info().
		Int("bytes", len(raw)).
		Int("parsed", stats.Parsed).
		Int("dropped", stats.Dropped).
		Msg("feed ingested")

	return res.Reservations, stats, nil
}
