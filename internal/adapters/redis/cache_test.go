package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_extranet/internal/adapters/redis"
)

type page struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var missed page
	ok, err := c.Get(ctx, "reservations:1", &missed)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}

	want := page{Items: []string{"34637", "34638"}, Total: 2}
	if err := c.Set(ctx, "reservations:1", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got page
	ok, err = c.Get(ctx, "reservations:1", &got)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if got.Total != 2 || len(got.Items) != 2 || got.Items[0] != "34637" {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := c.Del(ctx, "reservations:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "reservations:1", &got)
	if err != nil {
		t.Fatalf("get after del: %v", err)
	}
	if ok {
		t.Fatal("expected miss after delete")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", page{Total: 1}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var got page
	ok, err := c.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected expiry after TTL")
	}
}
