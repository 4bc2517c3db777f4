package feedback

import (
	"context"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/filter"
	"github.com/aulago/aulago/internal/listview"
	"github.com/aulago/aulago/internal/query"
)

// ReviewsScreen lists a course's reviews and lets the user publish one.
type ReviewsScreen struct {
	svc  *Service
	list *listview.Controller[domain.Review]
}

// NewReviewsScreen creates the reviews screen for one course.
func NewReviewsScreen(svc *Service, resolver *query.Resolver, courseID string, limit int) *ReviewsScreen {
	return &ReviewsScreen{
		svc: svc,
		list: listview.NewController(resolver, reviewsResource(courseID), limit,
			func(ctx context.Context, _ filter.Set, page, limit int) (*domain.Collection[domain.Review], error) {
				return svc.api.ListReviews(ctx, courseID, page, limit)
			}),
	}
}

// Reviews renders the review list.
func (s *ReviewsScreen) Reviews(ctx context.Context) listview.View[domain.Review] {
	return s.list.View(ctx)
}

// List exposes the controller for pagination.
func (s *ReviewsScreen) List() *listview.Controller[domain.Review] {
	return s.list
}

// Publish creates a review and returns the user-facing error message, empty
// on success.
func (s *ReviewsScreen) Publish(ctx context.Context, courseID string, req CreateReviewRequest) string {
	if _, err := s.svc.CreateReview(ctx, courseID, req); err != nil {
		return listview.Translate(err)
	}
	return ""
}

// Generate asks for AI feedback on a submission. It returns the suggestion
// and an empty message, or a user-facing error message.
func (s *ReviewsScreen) Generate(ctx context.Context, submissionID string) (*domain.GeneratedFeedback, string) {
	fb, err := s.svc.Generate(ctx, submissionID)
	if err != nil {
		return nil, listview.Translate(err)
	}
	return fb, ""
}

// GenerateDisabled reports whether the generate control renders disabled.
func (s *ReviewsScreen) GenerateDisabled(submissionID string) bool {
	return s.svc.GenerateDisabled(submissionID)
}
