package repositories

import (
	"context"
	"errors"

	"github.com/HUSC-F-2025/housing-service/internal/models"
)

// Upstream failure taxonomy. A structured not-found is NOT an error: it is
// an empty, nil-error result. These three are surfaced to the caller as
// manually-retryable failures; no automatic retry is performed anywhere.
var (
	ErrUpstreamUnreachable  = errors.New("upstream service unreachable")
	ErrUpstreamUnauthorized = errors.New("upstream service rejected credentials")
	ErrUpstreamServer       = errors.New("upstream service error")
)

// UpstreamRepository is the boundary to the legacy housing records service
// this portal was layered in front of. It is consulted only after the local
// store is confirmed empty, and only once per user action.
type UpstreamRepository interface {
	// SearchByNationalID returns zero or more application records for the
	// given (digit-normalized) national id. A nil slice with nil error is
	// the structured not-found outcome.
	SearchByNationalID(ctx context.Context, nationalID string) ([]*models.Application, error)
}
