package app_test

import (
	"context"
	"errors"
	"testing"

	"hotel_extranet/internal/app"
	"hotel_extranet/internal/domain"
)

type fakeSession struct {
	feed []byte
	err  error
}

func (s *fakeSession) FetchFeed(ctx context.Context) ([]byte, error) { return s.feed, s.err }

type fakeAuthenticator struct {
	session *fakeSession
	err     error
}

func (a *fakeAuthenticator) Authenticate(ctx context.Context) (domain.FeedSession, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.session, nil
}

func TestIngestionService_Run(t *testing.T) {
	feed := "Localizador;Huésped;Entrada;Salida;Hotel;Precio;Acciones\n" +
		"1;GuestA;2020-01-01;2020-01-02;HotelA;10;view\n" +
		"2;GuestB;bad-date;2020-01-02;HotelB;10;view\n"
	ing := app.NewIngestionService(&fakeAuthenticator{session: &fakeSession{feed: []byte(feed)}})

	items, stats, err := ing.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].Locator != "1" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if stats.Parsed != 1 || stats.Dropped != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestIngestionService_AuthFailureIsFatal(t *testing.T) {
	wantErr := errors.New("login failed")
	ing := app.NewIngestionService(&fakeAuthenticator{err: wantErr})

	_, _, err := ing.Run(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected auth error to propagate, got %v", err)
	}
}

func TestIngestionService_FetchFailureIsFatal(t *testing.T) {
	wantErr := errors.New("feed unavailable")
	ing := app.NewIngestionService(&fakeAuthenticator{session: &fakeSession{err: wantErr}})

	_, _, err := ing.Run(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
}
