package oembed

import (
	"context"
	"log"
	"time"

	"vembed/internal/media"
)

// Store persists fetched oEmbed payloads keyed by source URL.
type Store interface {
	Get(ctx context.Context, key string, ttl time.Duration) (*media.OEmbed, bool, error)
	Set(ctx context.Context, key string, platform media.Platform, data *media.OEmbed) error
}

// Service is a read-through cache in front of a Fetcher.
type Service struct {
	fetcher Fetcher
	store   Store // nil disables caching
	ttl     time.Duration
}

// NewService creates a Service. store may be nil.
func NewService(fetcher Fetcher, store Store, ttl time.Duration) *Service {
	return &Service{fetcher: fetcher, store: store, ttl: ttl}
}

// Lookup returns oEmbed data for ref, consulting the store first.
// Cache errors are logged and treated as misses.
func (s *Service) Lookup(ctx context.Context, ref media.VideoReference) (*media.OEmbed, error) {
	key := ref.SourceURL

	if s.store != nil {
		data, ok, err := s.store.Get(ctx, key, s.ttl)
		if err != nil {
			log.Printf("oembed cache read %s: %v", key, err)
		} else if ok {
			return data, nil
		}
	}

	data, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.Set(ctx, key, ref.Platform, data); err != nil {
			log.Printf("oembed cache write %s: %v", key, err)
		}
	}

	return data, nil
}
