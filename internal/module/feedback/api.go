package feedback

import (
	"context"
	"net/url"
	"strconv"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/transport"
)

// API is the remote surface for course reviews and AI feedback generation.
// Reviews live on the course service; generation lives on the chat/AI
// service, so the two methods go through different transport clients.
type API interface {
	ListReviews(ctx context.Context, courseID string, page, limit int) (*domain.Collection[domain.Review], error)
	CreateReview(ctx context.Context, courseID string, req CreateReviewRequest) (*domain.Review, error)
	GenerateFeedback(ctx context.Context, submissionID string) (*domain.GeneratedFeedback, error)
}

type remoteAPI struct {
	courses *transport.Client
	ai      *transport.Client
}

// NewAPI creates the feedback API over the course and chat/AI clients.
func NewAPI(courses, ai *transport.Client) API {
	return &remoteAPI{courses: courses, ai: ai}
}

// ListReviews fetches one page of a course's reviews.
func (a *remoteAPI) ListReviews(ctx context.Context, courseID string, page, limit int) (*domain.Collection[domain.Review], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var col domain.Collection[domain.Review]
	if err := a.courses.Get(ctx, "/courses/"+url.PathEscape(courseID)+"/reviews", params, &col); err != nil {
		return nil, err
	}
	col.Normalize()
	return &col, nil
}

// CreateReview publishes a review on a course.
func (a *remoteAPI) CreateReview(ctx context.Context, courseID string, req CreateReviewRequest) (*domain.Review, error) {
	var r domain.Review
	if err := a.courses.Post(ctx, "/courses/"+url.PathEscape(courseID)+"/reviews", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GenerateFeedback asks the AI service for suggested feedback on a
// submission. Generation is idempotent on the server side and noticeably
// slow, so this is the one AI call that retries on transient failures.
func (a *remoteAPI) GenerateFeedback(ctx context.Context, submissionID string) (*domain.GeneratedFeedback, error) {
	var fb domain.GeneratedFeedback
	if err := a.ai.GetRetry(ctx, "/submissions/"+url.PathEscape(submissionID)+"/feedback", nil, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}
