package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

// InquiryService resolves the current status of a housing request given
// only a national id. The application may live in the local store or in
// the legacy system of record this portal was layered in front of.
type InquiryService interface {
	// Lookup returns the newest matching application, or Found=false when
	// neither source knows the id (a normal result, not an error).
	Lookup(ctx context.Context, nationalID string) (*models.InquiryResult, error)
}

// ===== SERVICE IMPLEMENTATION =====

type inquiryService struct {
	repo      repositories.Repository
	upstream  repositories.UpstreamRepository // nil when no upstream is configured
	logger    *slog.Logger
	validator *validator.Validator
}

func NewInquiryService(repo repositories.Repository, upstream repositories.UpstreamRepository, logger *slog.Logger, v *validator.Validator) InquiryService {
	return &inquiryService{
		repo:      repo,
		upstream:  upstream,
		logger:    logger,
		validator: v,
	}
}

// Lookup is strictly sequential: local store first, upstream only on a
// confirmed local miss, exactly one upstream attempt, no automatic retry.
// The single-hop policy is deliberate simplicity, not a gap.
func (s *inquiryService) Lookup(ctx context.Context, nationalID string) (*models.InquiryResult, error) {
	normalized, errs := s.validator.ValidateInquiry(nationalID)
	if errs.HasErrors() {
		return nil, errs
	}

	// Local-first: avoids the network round trip for the common case of an
	// application already mirrored locally.
	local, err := s.repo.Application().GetByNationalID(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to query local applications: %w", err)
	}
	if len(local) > 0 {
		s.logger.Info("inquiry answered locally", "matches", len(local))
		return &models.InquiryResult{
			Found:       true,
			Source:      models.SourceLocal,
			Application: newestApplication(local),
		}, nil
	}

	if s.upstream == nil {
		return &models.InquiryResult{Found: false}, nil
	}

	remote, err := s.upstream.SearchByNationalID(ctx, normalized)
	if err != nil {
		// Transport/server/auth failures surface to the caller; not-found
		// never lands here.
		return nil, err
	}
	if len(remote) == 0 {
		s.logger.Info("inquiry found nothing in either source")
		return &models.InquiryResult{Found: false}, nil
	}

	s.logger.Info("inquiry answered by upstream", "matches", len(remote))
	return &models.InquiryResult{
		Found:       true,
		Source:      models.SourceUpstream,
		Application: newestApplication(remote),
	}, nil
}

// newestApplication sorts descending by submission time and returns the
// first record. Records with no usable timestamp carry the zero time and
// sort last; among equal timestamps the higher id wins so repeated lookups
// pick deterministically.
func newestApplication(apps []*models.Application) *models.Application {
	sorted := make([]*models.Application, len(apps))
	copy(sorted, apps)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].SubmittedAt, sorted[j].SubmittedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return sorted[i].ID > sorted[j].ID
	})

	return sorted[0]
}
