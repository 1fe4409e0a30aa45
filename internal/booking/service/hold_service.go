package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SlotHoldService reserves a machine's time slot for one booking at a time.
// A hold is a redis key set with NX and a TTL, so abandoned checkouts free
// the slot without any cleanup job.
type SlotHoldService struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSlotHoldService(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SlotHoldService {
	return &SlotHoldService{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func holdKey(makerspace, listingID, date, slotStart string) string {
	return fmt.Sprintf("hold:%s:%s:%s:%s", makerspace, listingID, date, slotStart)
}

// Acquire takes the slot hold and returns its token. A false return with a
// nil error means another booking already holds the slot.
func (s *SlotHoldService) Acquire(ctx context.Context, makerspace, listingID, date, slotStart string) (string, bool, error) {
	token := uuid.New().String()
	key := holdKey(makerspace, listingID, date, slotStart)

	ok, err := s.client.SetNX(ctx, key, token, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquiring slot hold: %w", err)
	}
	if !ok {
		return "", false, nil
	}

	s.logger.Debug("slot hold acquired", zap.String("key", key), zap.String("token", token))
	return token, true, nil
}

// Release frees a hold before its TTL lapses, e.g. when the booking that
// took it could not be persisted.
func (s *SlotHoldService) Release(ctx context.Context, makerspace, listingID, date, slotStart string) error {
	key := holdKey(makerspace, listingID, date, slotStart)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("releasing slot hold: %w", err)
	}
	return nil
}
