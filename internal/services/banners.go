package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/guestexp-web/internal/models"
)

const (
	// BannerKeyPrefix is the Redis key prefix for live banners: banner:<page session>:<banner id>
	BannerKeyPrefix = "banner:"
	// DefaultBannerTTL is how long a banner stays up unless dismissed.
	DefaultBannerTTL = 5 * time.Second
)

// BannerStore keeps the short-lived alert banners of each page session.
type BannerStore interface {
	Push(ctx context.Context, session, kind, message string) (models.Banner, error)
	Get(ctx context.Context, session, id string) (*models.Banner, error)
	List(ctx context.Context, session string) ([]models.Banner, error)
	Dismiss(ctx context.Context, session, id string) error
}

func newBanner(kind, message string) models.Banner {
	return models.Banner{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

func sortBanners(banners []models.Banner) {
	sort.SliceStable(banners, func(i, j int) bool {
		return banners[i].CreatedAt.Before(banners[j].CreatedAt)
	})
}

// RedisBannerStore keeps one key per banner and lets Redis expire it.
type RedisBannerStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBannerStore returns a store whose banners expire after ttl.
func NewRedisBannerStore(client *redis.Client, ttl time.Duration) *RedisBannerStore {
	if ttl <= 0 {
		ttl = DefaultBannerTTL
	}
	return &RedisBannerStore{client: client, ttl: ttl}
}

func bannerKey(session, id string) string {
	return fmt.Sprintf("%s%s:%s", BannerKeyPrefix, session, id)
}

func (s *RedisBannerStore) Push(ctx context.Context, session, kind, message string) (models.Banner, error) {
	b := newBanner(kind, message)
	data, err := json.Marshal(b)
	if err != nil {
		return models.Banner{}, err
	}
	if err := s.client.Set(ctx, bannerKey(session, b.ID), data, s.ttl).Err(); err != nil {
		return models.Banner{}, fmt.Errorf("store banner: %w", err)
	}
	return b, nil
}

func (s *RedisBannerStore) Get(ctx context.Context, session, id string) (*models.Banner, error) {
	val, err := s.client.Get(ctx, bannerKey(session, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load banner: %w", err)
	}
	var b models.Banner
	if err := json.Unmarshal(val, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *RedisBannerStore) List(ctx context.Context, session string) ([]models.Banner, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, BannerKeyPrefix+session+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan banners: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load banners: %w", err)
	}
	banners := make([]models.Banner, 0, len(vals))
	for _, v := range vals {
		// expired between SCAN and MGET
		str, ok := v.(string)
		if !ok {
			continue
		}
		var b models.Banner
		if err := json.Unmarshal([]byte(str), &b); err != nil {
			continue
		}
		banners = append(banners, b)
	}
	sortBanners(banners)
	return banners, nil
}

func (s *RedisBannerStore) Dismiss(ctx context.Context, session, id string) error {
	return s.client.Del(ctx, bannerKey(session, id)).Err()
}

// MemoryBannerStore is the single-instance fallback used when Redis is not configured.
// Each banner owns a timer that removes it; dismissal stops the timer.
type MemoryBannerStore struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]map[string]*memoryBanner
}

type memoryBanner struct {
	banner models.Banner
	timer  *time.Timer
}

// NewMemoryBannerStore returns an in-process store whose banners expire after ttl.
func NewMemoryBannerStore(ttl time.Duration) *MemoryBannerStore {
	if ttl <= 0 {
		ttl = DefaultBannerTTL
	}
	return &MemoryBannerStore{ttl: ttl, sessions: make(map[string]map[string]*memoryBanner)}
}

func (s *MemoryBannerStore) Push(_ context.Context, session, kind, message string) (models.Banner, error) {
	b := newBanner(kind, message)

	s.mu.Lock()
	defer s.mu.Unlock()
	banners, ok := s.sessions[session]
	if !ok {
		banners = make(map[string]*memoryBanner)
		s.sessions[session] = banners
	}
	banners[b.ID] = &memoryBanner{
		banner: b,
		timer:  time.AfterFunc(s.ttl, func() { s.remove(session, b.ID) }),
	}
	return b, nil
}

func (s *MemoryBannerStore) Get(_ context.Context, session, id string) (*models.Banner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mb, ok := s.sessions[session][id]; ok {
		b := mb.banner
		return &b, nil
	}
	return nil, nil
}

func (s *MemoryBannerStore) List(_ context.Context, session string) ([]models.Banner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	banners := make([]models.Banner, 0, len(s.sessions[session]))
	for _, mb := range s.sessions[session] {
		banners = append(banners, mb.banner)
	}
	sortBanners(banners)
	return banners, nil
}

func (s *MemoryBannerStore) Dismiss(_ context.Context, session, id string) error {
	s.mu.Lock()
	mb, ok := s.sessions[session][id]
	s.mu.Unlock()
	if ok {
		mb.timer.Stop()
		s.remove(session, id)
	}
	return nil
}

func (s *MemoryBannerStore) remove(session, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	banners, ok := s.sessions[session]
	if !ok {
		return
	}
	delete(banners, id)
	if len(banners) == 0 {
		delete(s.sessions, session)
	}
}
