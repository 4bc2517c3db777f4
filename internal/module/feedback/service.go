package feedback

import (
	"context"
	"log/slog"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/pkg"
	"github.com/aulago/aulago/internal/query"
)

func reviewsResource(courseID string) string { return "courses/" + courseID + "/reviews" }

// Service wraps the feedback API with cache synchronization.
type Service struct {
	api      API
	resolver *query.Resolver
	pending  *query.Pending
	logger   *slog.Logger
}

// NewService creates the feedback service.
func NewService(api API, resolver *query.Resolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:      api,
		resolver: resolver,
		pending:  query.NewPending(),
		logger:   logger,
	}
}

// CreateReview validates and publishes a review, then invalidates the
// course's review pages: a new member changes the pagination counts.
func (s *Service) CreateReview(ctx context.Context, courseID string, req CreateReviewRequest) (*domain.Review, error) {
	if err := pkg.ValidateStruct(req); err != nil {
		return nil, err
	}

	created, err := s.api.CreateReview(ctx, courseID, req)
	if err != nil {
		return nil, err
	}

	s.resolver.Cache().Invalidate(query.Prefix(reviewsResource(courseID)))
	return created, nil
}

// Generate asks the AI service for suggested feedback on a submission. A
// second request for the same submission while one is running is refused
// locally; the call is slow and the result would be identical.
func (s *Service) Generate(ctx context.Context, submissionID string) (*domain.GeneratedFeedback, error) {
	if !s.pending.Begin(submissionID) {
		return nil, domain.ErrPending
	}
	defer s.pending.End(submissionID)

	return s.api.GenerateFeedback(ctx, submissionID)
}

// GenerateDisabled reports whether the generate control for a submission
// renders disabled because a generation is already in flight.
func (s *Service) GenerateDisabled(submissionID string) bool {
	return s.pending.IsPending(submissionID)
}
