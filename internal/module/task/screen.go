package task

import (
	"context"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/filter"
	"github.com/aulago/aulago/internal/listview"
	"github.com/aulago/aulago/internal/query"
)

// WorkScreen is the course work screen: tasks and exams side by side, each
// sub-list with its own page counter.
type WorkScreen struct {
	svc   *Service
	tasks *listview.Controller[domain.Task]
	exams *listview.Controller[domain.Task]
}

// NewWorkScreen creates the work screen for one course.
func NewWorkScreen(svc *Service, resolver *query.Resolver, courseID string, limit int) *WorkScreen {
	return &WorkScreen{
		svc: svc,
		tasks: listview.NewController(resolver, taskResource(courseID), limit,
			func(ctx context.Context, _ filter.Set, page, limit int) (*domain.Collection[domain.Task], error) {
				return svc.api.ListTasks(ctx, courseID, page, limit)
			}),
		exams: listview.NewController(resolver, examResource(courseID), limit,
			func(ctx context.Context, _ filter.Set, page, limit int) (*domain.Collection[domain.Task], error) {
				return svc.api.ListExams(ctx, courseID, page, limit)
			}),
	}
}

// Tasks renders the task sub-list.
func (s *WorkScreen) Tasks(ctx context.Context) listview.View[domain.Task] {
	return s.tasks.View(ctx)
}

// Exams renders the exam sub-list.
func (s *WorkScreen) Exams(ctx context.Context) listview.View[domain.Task] {
	return s.exams.View(ctx)
}

// TaskList exposes the task sub-list controller for pagination.
func (s *WorkScreen) TaskList() *listview.Controller[domain.Task] {
	return s.tasks
}

// ExamList exposes the exam sub-list controller for pagination.
func (s *WorkScreen) ExamList() *listview.Controller[domain.Task] {
	return s.exams
}

// Create creates a task or exam and returns the user-facing error message,
// empty on success.
func (s *WorkScreen) Create(ctx context.Context, courseID string, req CreateTaskRequest) string {
	if _, err := s.svc.Create(ctx, courseID, req); err != nil {
		return listview.Translate(err)
	}
	return ""
}

// Delete removes a task or exam.
func (s *WorkScreen) Delete(ctx context.Context, t domain.Task) string {
	if err := s.svc.Delete(ctx, t); err != nil {
		return listview.Translate(err)
	}
	return ""
}

// SubmissionsScreen lists a task's submissions for grading.
type SubmissionsScreen struct {
	svc  *Service
	list *listview.Controller[domain.Submission]
}

// NewSubmissionsScreen creates the submissions screen for one task.
func NewSubmissionsScreen(svc *Service, resolver *query.Resolver, taskID string, limit int) *SubmissionsScreen {
	return &SubmissionsScreen{
		svc: svc,
		list: listview.NewController(resolver, submissionsResource(taskID), limit,
			func(ctx context.Context, _ filter.Set, page, limit int) (*domain.Collection[domain.Submission], error) {
				return svc.api.ListSubmissions(ctx, taskID, page, limit)
			}),
	}
}

// Submissions renders the submissions list.
func (s *SubmissionsScreen) Submissions(ctx context.Context) listview.View[domain.Submission] {
	return s.list.View(ctx)
}

// List exposes the controller for pagination.
func (s *SubmissionsScreen) List() *listview.Controller[domain.Submission] {
	return s.list
}

// Grade scores a submission and returns the user-facing error message, empty
// on success. The graded row is patched into the cached page, so the next
// render shows the score without a refetch.
func (s *SubmissionsScreen) Grade(ctx context.Context, sub domain.Submission, req GradeRequest) string {
	if _, err := s.svc.Grade(ctx, sub, req); err != nil {
		return listview.Translate(err)
	}
	return ""
}

// GradeDisabled reports whether the grade control for sub renders disabled.
func (s *SubmissionsScreen) GradeDisabled(sub domain.Submission) bool {
	return s.svc.GradeDisabled(sub)
}
