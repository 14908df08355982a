package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidToken is returned when a refresh token is unknown, expired or
// already revoked.
var ErrInvalidToken = errors.New("invalid or expired refresh token")

// Store keeps refresh tokens in Redis, keyed by a SHA-256 of the raw token
// so the raw string never touches the server's storage. With no Redis
// configured the portal runs on stateless access tokens only.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Issue generates a fresh random refresh token for the user and stores its
// hash with the configured TTL. The raw token is returned to the caller.
func (s *Store) Issue(ctx context.Context, userID uint) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	raw := hex.EncodeToString(buf)

	key := tokenKey(raw)
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return raw, nil
}

// Validate resolves a raw refresh token back to its user id.
func (s *Store) Validate(ctx context.Context, raw string) (uint, error) {
	val, err := s.client.Get(ctx, tokenKey(raw)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrInvalidToken
		}
		return 0, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Revoke invalidates a single refresh token.
func (s *Store) Revoke(ctx context.Context, raw string) error {
	if err := s.client.Del(ctx, tokenKey(raw)).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func tokenKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return "session:refresh:" + hex.EncodeToString(sum[:])
}
