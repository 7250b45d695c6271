package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	analyticsCacheKey = "admin:analytics"

	// Dashboard counts may lag the database by this much
	analyticsCacheTTL = 30 * time.Second
)

// AnalyticsCacheService caches the admin dashboard counters in Redis so that
// a dashboard refresh does not fan out seven COUNT queries every time.
type AnalyticsCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAnalyticsCacheService(redisClient *redis.Client, log *logrus.Logger) *AnalyticsCacheService {
	return &AnalyticsCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// Get loads the cached analytics payload into dest. Returns false on a cache
// miss; a broken cache is treated as a miss so the caller falls back to the
// database.
func (s *AnalyticsCacheService) Get(ctx context.Context, dest interface{}) (bool, error) {
	data, err := s.redisClient.Get(ctx, analyticsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		s.log.Warnf("Failed to read analytics cache: %+v", err)
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warnf("Failed to decode analytics cache, dropping it: %+v", err)
		s.redisClient.Del(ctx, analyticsCacheKey)
		return false, nil
	}

	return true, nil
}

// Set stores the analytics payload with a short TTL. Failures are logged and
// swallowed; caching is best effort.
func (s *AnalyticsCacheService) Set(ctx context.Context, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warnf("Failed to encode analytics cache: %+v", err)
		return
	}

	if err := s.redisClient.Set(ctx, analyticsCacheKey, data, analyticsCacheTTL).Err(); err != nil {
		s.log.Warnf("Failed to write analytics cache: %+v", err)
	}
}

// Invalidate drops the cached counters. Called after mutations that change
// the dashboard aggregates (user deletion).
func (s *AnalyticsCacheService) Invalidate(ctx context.Context) {
	if err := s.redisClient.Del(ctx, analyticsCacheKey).Err(); err != nil {
		s.log.Warnf("Failed to invalidate analytics cache: %+v", err)
	}
}
