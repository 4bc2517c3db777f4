package task

import (
	"context"
	"log/slog"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/pkg"
	"github.com/aulago/aulago/internal/query"
)

// taskResource and examResource name the cache resources for a course's two
// work sub-lists; submissionsResource names a task's submissions list.
func taskResource(courseID string) string      { return "courses/" + courseID + "/tasks" }
func examResource(courseID string) string      { return "courses/" + courseID + "/exams" }
func submissionsResource(taskID string) string { return "tasks/" + taskID + "/submissions" }

// Service wraps the task/exam API with cache synchronization.
type Service struct {
	api      API
	resolver *query.Resolver
	pending  *query.Pending
	logger   *slog.Logger
}

// NewService creates the task service.
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

// Create validates and creates a task or exam, then invalidates the affected
// sub-list: a new member changes its pagination counts.
func (s *Service) Create(ctx context.Context, courseID string, req CreateTaskRequest) (*domain.Task, error) {
	if err := pkg.ValidateStruct(req); err != nil {
		return nil, err
	}

	created, err := s.api.Create(ctx, courseID, req)
	if err != nil {
		return nil, err
	}

	if req.Kind == domain.WorkKindExam {
		s.resolver.Cache().Invalidate(query.Prefix(examResource(courseID)))
	} else {
		s.resolver.Cache().Invalidate(query.Prefix(taskResource(courseID)))
	}
	return created, nil
}

// Delete removes a task or exam and invalidates both of the course's work
// sub-lists along with the task's submissions.
func (s *Service) Delete(ctx context.Context, t domain.Task) error {
	if !s.pending.Begin(t.ID) {
		return domain.ErrPending
	}
	defer s.pending.End(t.ID)

	if err := s.api.Delete(ctx, t.ID); err != nil {
		return err
	}

	cache := s.resolver.Cache()
	cache.Invalidate(query.Prefix(taskResource(t.CourseID)))
	cache.Invalidate(query.Prefix(examResource(t.CourseID)))
	cache.Invalidate(query.Prefix(submissionsResource(t.ID)))
	return nil
}

// Grade validates and scores a submission. Grading changes fields of one
// known submission, so cached submission pages are patched in place rather
// than refetched.
func (s *Service) Grade(ctx context.Context, sub domain.Submission, req GradeRequest) (*domain.Submission, error) {
	if err := pkg.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !s.pending.Begin(sub.ID) {
		return nil, domain.ErrPending
	}
	defer s.pending.End(sub.ID)

	graded, err := s.api.Grade(ctx, sub.ID, req)
	if err != nil {
		return nil, err
	}

	s.resolver.Cache().PatchPrefix(query.Prefix(submissionsResource(sub.TaskID)), func(value any) any {
		col, ok := value.(*domain.Collection[domain.Submission])
		if !ok {
			return value
		}
		out := *col
		out.Items = make([]domain.Submission, len(col.Items))
		copy(out.Items, col.Items)
		for i := range out.Items {
			if out.Items[i].ID == graded.ID {
				out.Items[i] = *graded
			}
		}
		return &out
	})
	return graded, nil
}

// GradeDisabled reports whether the grade control for a submission renders
// disabled because a grade mutation is already in flight.
func (s *Service) GradeDisabled(sub domain.Submission) bool {
	return s.pending.IsPending(sub.ID)
}
