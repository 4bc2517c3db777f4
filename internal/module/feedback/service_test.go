package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/query"
)

type mockAPI struct {
	createCalls   int
	generateCalls int
	generateErr   error
}

func (m *mockAPI) ListReviews(_ context.Context, courseID string, page, _ int) (*domain.Collection[domain.Review], error) {
	col := &domain.Collection[domain.Review]{CurrentPage: page}
	col.Normalize()
	return col, nil
}

func (m *mockAPI) CreateReview(_ context.Context, courseID string, req CreateReviewRequest) (*domain.Review, error) {
	m.createCalls++
	return &domain.Review{ID: "r-new", CourseID: courseID, Rating: req.Rating, Comment: req.Comment}, nil
}

func (m *mockAPI) GenerateFeedback(_ context.Context, submissionID string) (*domain.GeneratedFeedback, error) {
	m.generateCalls++
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return &domain.GeneratedFeedback{SubmissionID: submissionID, Text: "Buen planteamiento, revisa el apartado 2."}, nil
}

func newTestService(api *mockAPI) *Service {
	resolver := query.NewResolver(query.NewCache(time.Minute, 0), nil)
	return NewService(api, resolver, nil)
}

func TestCreateReviewInvalidatesCoursePages(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(api)
	cache := svc.resolver.Cache()

	key := query.Key(reviewsResource("c1"), nil, 1)
	otherKey := query.Key(reviewsResource("c2"), nil, 1)
	cache.Set(key, &domain.Collection[domain.Review]{})
	cache.Set(otherKey, &domain.Collection[domain.Review]{})

	created, err := svc.CreateReview(context.Background(), "c1", CreateReviewRequest{Rating: 5, Comment: "Muy buen curso"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Rating != 5 {
		t.Errorf("created = %+v", created)
	}

	if _, fresh, _ := cache.Get(key); fresh {
		t.Error("the course's review pages must be invalidated")
	}
	if _, fresh, _ := cache.Get(otherKey); !fresh {
		t.Error("other courses' reviews must be untouched")
	}
}

func TestCreateReviewValidation(t *testing.T) {
	tests := []struct {
		name   string
		rating int
	}{
		{"zero rating", 0},
		{"rating too high", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{}
			svc := newTestService(api)

			_, err := svc.CreateReview(context.Background(), "c1", CreateReviewRequest{Rating: tt.rating, Comment: "x"})
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if api.createCalls != 0 {
				t.Error("invalid review must not reach the network")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(api)

	fb, err := svc.Generate(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.SubmissionID != "s1" || fb.Text == "" {
		t.Errorf("feedback = %+v", fb)
	}
}

func TestGenerateDuplicateRefused(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(api)

	svc.pending.Begin("s1")
	defer svc.pending.End("s1")

	_, err := svc.Generate(context.Background(), "s1")
	if !domain.IsPending(err) {
		t.Fatalf("expected pending error, got %v", err)
	}
	if api.generateCalls != 0 {
		t.Error("duplicate generation must not reach the network")
	}
	if !svc.GenerateDisabled("s1") {
		t.Error("generate control must render disabled while pending")
	}
}
