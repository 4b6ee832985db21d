package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/guestexp-web/internal/models"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisBannerStoreLifecycle(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisBannerStore(client, 5*time.Second)
	ctx := context.Background()

	first, err := store.Push(ctx, "page-1", models.BannerSuccess, "Feedback submitted successfully! Thank you for your input.")
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := store.Push(ctx, "page-1", models.BannerInfo, "Alert has been sent to management for immediate attention.")
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err := store.Push(ctx, "page-2", models.BannerDanger, "other page"); err != nil {
		t.Fatalf("push: %v", err)
	}

	banners, err := store.List(ctx, "page-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(banners) != 2 || banners[0].ID != first.ID || banners[1].ID != second.ID {
		t.Fatalf("expected both banners in order, got %+v", banners)
	}

	if ttl := mr.TTL(bannerKey("page-1", first.ID)); ttl != 5*time.Second {
		t.Errorf("expected 5s TTL, got %v", ttl)
	}

	if err := store.Dismiss(ctx, "page-1", first.ID); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	got, err := store.Get(ctx, "page-1", first.ID)
	if err != nil || got != nil {
		t.Errorf("dismissed banner should be gone, got %+v (%v)", got, err)
	}

	mr.FastForward(6 * time.Second)
	banners, err = store.List(ctx, "page-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(banners) != 0 {
		t.Errorf("expected banners to expire, got %+v", banners)
	}
}

func TestRedisBannerStoreGet(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisBannerStore(client, 0)
	ctx := context.Background()

	b, err := store.Push(ctx, "page-1", models.BannerDanger, "Please select a category")
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	got, err := store.Get(ctx, "page-1", b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Message != "Please select a category" || got.Kind != models.BannerDanger {
		t.Errorf("unexpected banner %+v", got)
	}
	if other, _ := store.Get(ctx, "page-2", b.ID); other != nil {
		t.Error("banner must not leak across page sessions")
	}
}

func TestMemoryBannerStoreExpires(t *testing.T) {
	store := NewMemoryBannerStore(50 * time.Millisecond)
	ctx := context.Background()

	b, _ := store.Push(ctx, "page-1", models.BannerInfo, "hello")
	banners, _ := store.List(ctx, "page-1")
	if len(banners) != 1 || banners[0].ID != b.ID {
		t.Fatalf("expected the banner, got %+v", banners)
	}

	time.Sleep(150 * time.Millisecond)
	if got, _ := store.Get(ctx, "page-1", b.ID); got != nil {
		t.Errorf("banner should have expired, got %+v", got)
	}
}

func TestMemoryBannerStoreDismissCancelsTimer(t *testing.T) {
	store := NewMemoryBannerStore(time.Hour)
	ctx := context.Background()

	b, _ := store.Push(ctx, "page-1", models.BannerInfo, "hello")
	if err := store.Dismiss(ctx, "page-1", b.ID); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	banners, _ := store.List(ctx, "page-1")
	if len(banners) != 0 {
		t.Errorf("expected no banners, got %+v", banners)
	}
	if err := store.Dismiss(ctx, "page-1", b.ID); err != nil {
		t.Errorf("second dismiss should be a no-op, got %v", err)
	}
}
