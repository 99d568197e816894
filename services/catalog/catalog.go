package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/utils/cache"
)

const (
	universitiesKey = "universities:all"
	universitiesTTL = 5 * time.Minute
)

// Service reads the university catalog, caching the full list in Redis when available
type Service struct {
	store database.Storage
	cache *cache.RedisCache
}

// NewService creates a catalog service; redisCache may be nil
func NewService(store database.Storage, redisCache *cache.RedisCache) *Service {
	return &Service{store: store, cache: redisCache}
}

// ListUniversities returns every university in storage order
func (s *Service) ListUniversities(ctx context.Context) ([]model.University, error) {
	if s.cache != nil {
		var cached []model.University
		err := s.cache.GetJSON(ctx, universitiesKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warnf("University cache read failed: %v", err)
		}
	}

	universities, err := s.store.ListUniversities(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, universitiesKey, universities, universitiesTTL); err != nil {
			log.Warnf("University cache write failed: %v", err)
		}
	}
	return universities, nil
}

// AddUniversity stores a university and drops the cached list
func (s *Service) AddUniversity(ctx context.Context, university *model.University) error {
	if err := s.store.CreateUniversity(ctx, university); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, universitiesKey); err != nil {
		log.Warnf("University cache invalidation failed: %v", err)
	}
}
