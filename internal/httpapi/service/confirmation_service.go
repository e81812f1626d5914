package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ConfirmationService issues and verifies the single-use confirmation codes
// that substitute for passwords in the login flow.
type ConfirmationService interface {
	Issue(ctx context.Context, userID string) (string, error)
	Verify(ctx context.Context, userID, code string) (bool, error)
}

type confirmationService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewConfirmationService(rdb *redis.Client, ttl time.Duration) ConfirmationService {
	return &confirmationService{rdb: rdb, ttl: ttl}
}

func confirmationKey(userID string) string {
	return "confirmation:" + userID
}

// Issue generates a fresh code for the user and stores only its bcrypt hash.
// Re-issuing overwrites any previous code.
func (s *confirmationService) Issue(ctx context.Context, userID string) (string, error) {
	code := uuid.New().String()

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, confirmationKey(userID), string(hash), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store confirmation code: %w", err)
	}

	return code, nil
}

// Verify compares the supplied code with the stored hash. The code is
// consumed on success so it cannot be replayed.
func (s *confirmationService) Verify(ctx context.Context, userID, code string) (bool, error) {
	hash, err := s.rdb.Get(ctx, confirmationKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("load confirmation code: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return false, nil
	}

	// Best effort: an expired key just means the code can't be reused.
	s.rdb.Del(ctx, confirmationKey(userID))

	return true, nil
}
