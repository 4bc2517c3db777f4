package course

import (
	"context"
	"net/url"
	"strconv"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/filter"
	"github.com/aulago/aulago/internal/transport"
)

// API is the remote surface of the course service consumed by this module.
type API interface {
	List(ctx context.Context, filters filter.Set, page, limit int) (*domain.Collection[domain.Course], error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, req CreateCourseRequest) (*domain.Course, error)
	Update(ctx context.Context, id string, req UpdateCourseRequest) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
	Enroll(ctx context.Context, id string) error
	Unenroll(ctx context.Context, id string) error
	Favorite(ctx context.Context, id string) error
	Unfavorite(ctx context.Context, id string) error
}

// remoteAPI implements API against the course service.
type remoteAPI struct {
	client *transport.Client
}

// NewAPI creates the course service API over the given transport client.
func NewAPI(client *transport.Client) API {
	return &remoteAPI{client: client}
}

// List fetches one page of courses. The course list is one of the slow
// queries that opts into the transport's low retry count.
func (a *remoteAPI) List(ctx context.Context, filters filter.Set, page, limit int) (*domain.Collection[domain.Course], error) {
	params := filters.Params()
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var col domain.Collection[domain.Course]
	if err := a.client.GetRetry(ctx, "/courses", params, &col); err != nil {
		return nil, err
	}
	col.Normalize()
	return &col, nil
}

// Get fetches a single course.
func (a *remoteAPI) Get(ctx context.Context, id string) (*domain.Course, error) {
	var c domain.Course
	if err := a.client.Get(ctx, "/courses/"+url.PathEscape(id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a course and returns the server's version of it.
func (a *remoteAPI) Create(ctx context.Context, req CreateCourseRequest) (*domain.Course, error) {
	var c domain.Course
	if err := a.client.Post(ctx, "/courses", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update edits a course's descriptive fields and returns the updated course.
func (a *remoteAPI) Update(ctx context.Context, id string, req UpdateCourseRequest) (*domain.Course, error) {
	var c domain.Course
	if err := a.client.Patch(ctx, "/courses/"+url.PathEscape(id), req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a course.
func (a *remoteAPI) Delete(ctx context.Context, id string) error {
	return a.client.Delete(ctx, "/courses/"+url.PathEscape(id))
}

// Enroll enrolls the authenticated student in a course.
func (a *remoteAPI) Enroll(ctx context.Context, id string) error {
	return a.client.Post(ctx, "/courses/"+url.PathEscape(id)+"/enroll", nil, nil)
}

// Unenroll removes the authenticated student from a course.
func (a *remoteAPI) Unenroll(ctx context.Context, id string) error {
	return a.client.Delete(ctx, "/courses/"+url.PathEscape(id)+"/enroll")
}

// Favorite marks a course as a favorite of the authenticated user.
func (a *remoteAPI) Favorite(ctx context.Context, id string) error {
	return a.client.Post(ctx, "/courses/"+url.PathEscape(id)+"/favorite", nil, nil)
}

// Unfavorite removes a course from the user's favorites.
func (a *remoteAPI) Unfavorite(ctx context.Context, id string) error {
	return a.client.Delete(ctx, "/courses/"+url.PathEscape(id)+"/favorite")
}
