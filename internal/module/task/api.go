package task

import (
	"context"
	"net/url"
	"strconv"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/transport"
)

// API is the remote surface of the course service's task/exam endpoints.
type API interface {
	ListTasks(ctx context.Context, courseID string, page, limit int) (*domain.Collection[domain.Task], error)
	ListExams(ctx context.Context, courseID string, page, limit int) (*domain.Collection[domain.Task], error)
	Create(ctx context.Context, courseID string, req CreateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	ListSubmissions(ctx context.Context, taskID string, page, limit int) (*domain.Collection[domain.Submission], error)
	Grade(ctx context.Context, submissionID string, req GradeRequest) (*domain.Submission, error)
}

type remoteAPI struct {
	client *transport.Client
}

// NewAPI creates the task API over the given transport client.
func NewAPI(client *transport.Client) API {
	return &remoteAPI{client: client}
}

// ListTasks fetches one page of a course's tasks. The task and exam
// sub-lists paginate independently, which the service exposes through
// per-list query parameter names (taskPage/taskLimit vs examPage/examLimit).
func (a *remoteAPI) ListTasks(ctx context.Context, courseID string, page, limit int) (*domain.Collection[domain.Task], error) {
	params := url.Values{}
	params.Set("taskPage", strconv.Itoa(page))
	params.Set("taskLimit", strconv.Itoa(limit))

	var col domain.Collection[domain.Task]
	if err := a.client.Get(ctx, "/courses/"+url.PathEscape(courseID)+"/tasks", params, &col); err != nil {
		return nil, err
	}
	col.Normalize()
	return &col, nil
}

// ListExams fetches one page of a course's exams.
func (a *remoteAPI) ListExams(ctx context.Context, courseID string, page, limit int) (*domain.Collection[domain.Task], error) {
	params := url.Values{}
	params.Set("examPage", strconv.Itoa(page))
	params.Set("examLimit", strconv.Itoa(limit))

	var col domain.Collection[domain.Task]
	if err := a.client.Get(ctx, "/courses/"+url.PathEscape(courseID)+"/exams", params, &col); err != nil {
		return nil, err
	}
	col.Normalize()
	return &col, nil
}

// Create creates a task or exam in a course.
func (a *remoteAPI) Create(ctx context.Context, courseID string, req CreateTaskRequest) (*domain.Task, error) {
	var t domain.Task
	if err := a.client.Post(ctx, "/courses/"+url.PathEscape(courseID)+"/tasks", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a task or exam.
func (a *remoteAPI) Delete(ctx context.Context, id string) error {
	return a.client.Delete(ctx, "/tasks/"+url.PathEscape(id))
}

// ListSubmissions fetches one page of a task's submissions.
func (a *remoteAPI) ListSubmissions(ctx context.Context, taskID string, page, limit int) (*domain.Collection[domain.Submission], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var col domain.Collection[domain.Submission]
	if err := a.client.Get(ctx, "/tasks/"+url.PathEscape(taskID)+"/submissions", params, &col); err != nil {
		return nil, err
	}
	col.Normalize()
	return &col, nil
}

// Grade scores a submission and returns the graded version.
func (a *remoteAPI) Grade(ctx context.Context, submissionID string, req GradeRequest) (*domain.Submission, error) {
	var sub domain.Submission
	if err := a.client.Patch(ctx, "/submissions/"+url.PathEscape(submissionID), req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
