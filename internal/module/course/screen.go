package course

import (
	"context"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/filter"
	"github.com/aulago/aulago/internal/listview"
	"github.com/aulago/aulago/internal/query"
)

// BrowseScreen is the course browsing screen: two sub-lists (active and
// ended courses) with independent page counters but shared filter controls.
type BrowseScreen struct {
	svc    *Service
	active *listview.Controller[domain.Course]
	ended  *listview.Controller[domain.Course]
}

// NewBrowseScreen creates the browse screen. Each sub-list pins its own
// status filter inside the fetch function, so the shared filter controls
// (name, category, dates) apply to both without colliding in the cache.
func NewBrowseScreen(svc *Service, resolver *query.Resolver, limit int) *BrowseScreen {
	withStatus := func(status string) listview.FetchFunc[domain.Course] {
		return func(ctx context.Context, filters filter.Set, page, limit int) (*domain.Collection[domain.Course], error) {
			f := filters.Clone()
			f["status"] = status
			return svc.List(ctx, f, page, limit)
		}
	}

	return &BrowseScreen{
		svc:    svc,
		active: listview.NewController(resolver, resourceActive, limit, withStatus(domain.CourseStatusActive)),
		ended:  listview.NewController(resolver, resourceEnded, limit, withStatus(domain.CourseStatusEnded)),
	}
}

// SetFilter records a draft filter value on both sub-lists.
func (s *BrowseScreen) SetFilter(name, value string) {
	s.active.SetFilter(name, value)
	s.ended.SetFilter(name, value)
}

// ApplyFilters commits the drafts; both sub-lists reset to page 1.
func (s *BrowseScreen) ApplyFilters() {
	s.active.ApplyFilters()
	s.ended.ApplyFilters()
}

// ClearFilters empties the filters on both sub-lists and re-applies.
func (s *BrowseScreen) ClearFilters() {
	s.active.ClearFilters()
	s.ended.ClearFilters()
}

// Active renders the active-courses sub-list.
func (s *BrowseScreen) Active(ctx context.Context) listview.View[domain.Course] {
	return s.active.View(ctx)
}

// Ended renders the ended-courses sub-list.
func (s *BrowseScreen) Ended(ctx context.Context) listview.View[domain.Course] {
	return s.ended.View(ctx)
}

// ActiveList exposes the active sub-list controller for pagination.
func (s *BrowseScreen) ActiveList() *listview.Controller[domain.Course] {
	return s.active
}

// EndedList exposes the ended sub-list controller for pagination.
func (s *BrowseScreen) EndedList() *listview.Controller[domain.Course] {
	return s.ended
}

// Enroll runs the enroll action and returns the user-facing error message,
// empty on success. The control must already be disabled for courses where
// EnrollDisabled is true; the service refuses those without a network call.
func (s *BrowseScreen) Enroll(ctx context.Context, c domain.Course) string {
	if err := s.svc.Enroll(ctx, c); err != nil {
		return listview.Translate(err)
	}
	return ""
}

// EnrollDisabled reports whether the enroll control for c renders disabled.
func (s *BrowseScreen) EnrollDisabled(c domain.Course) bool {
	return s.svc.EnrollDisabled(c)
}
