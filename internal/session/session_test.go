package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, ttl), mr
}

func TestStore_IssueAndValidate(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	raw, err := store.Issue(ctx, 42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if raw == "" {
		t.Fatal("expected a non-empty token")
	}

	userID, err := store.Validate(ctx, raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}
}

func TestStore_TokensAreUnique(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	first, _ := store.Issue(ctx, 1)
	second, _ := store.Issue(ctx, 1)
	if first == second {
		t.Error("two issued tokens must differ")
	}
}

func TestStore_UnknownTokenRejected(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	if _, err := store.Validate(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestStore_Revoke(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	raw, err := store.Issue(ctx, 7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if err := store.Revoke(ctx, raw); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := store.Validate(ctx, raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected revoked token to be invalid, got %v", err)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	raw, err := store.Issue(ctx, 7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Validate(ctx, raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expiry after TTL, got %v", err)
	}
}

func TestStore_RawTokenNotStored(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)

	raw, err := store.Issue(context.Background(), 9)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for _, key := range mr.Keys() {
		if key == "session:refresh:"+raw {
			t.Error("raw token must not appear as a key; only its hash")
		}
	}
}
