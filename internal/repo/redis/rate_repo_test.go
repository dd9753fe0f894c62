package redis

import (
	"context"
	"testing"
	"time"
)

func TestIncrementWindowCounts(t *testing.T) {
	client, _ := newTestClient(t)
	repo := NewRateRepo(client)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, ttl, err := repo.IncrementWindow(ctx, "rate:test", time.Minute)
		if err != nil {
			t.Fatalf("IncrementWindow: %v", err)
		}
		if count != want {
			t.Fatalf("count: got %d, want %d", count, want)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Fatalf("ttl out of range: %v", ttl)
		}
	}
}

func TestIncrementWindowResetsAfterExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	repo := NewRateRepo(client)
	ctx := context.Background()

	if _, _, err := repo.IncrementWindow(ctx, "rate:test", time.Minute); err != nil {
		t.Fatalf("IncrementWindow: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	count, _, err := repo.IncrementWindow(ctx, "rate:test", time.Minute)
	if err != nil {
		t.Fatalf("IncrementWindow after expiry: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after window reset: got %d, want 1", count)
	}
}

func TestIncrementWindowInvalidInput(t *testing.T) {
	client, _ := newTestClient(t)
	repo := NewRateRepo(client)
	ctx := context.Background()

	if _, _, err := repo.IncrementWindow(ctx, "", time.Minute); err == nil {
		t.Fatal("empty key must be rejected")
	}
	if _, _, err := repo.IncrementWindow(ctx, "rate:test", 0); err == nil {
		t.Fatal("non-positive window must be rejected")
	}
}
