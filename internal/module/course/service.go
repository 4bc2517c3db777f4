package course

import (
	"context"
	"log/slog"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/filter"
	"github.com/aulago/aulago/internal/module/profile"
	"github.com/aulago/aulago/internal/pkg"
	"github.com/aulago/aulago/internal/query"
)

// Cache resources owned by this module. The two browse sub-lists get
// distinct resources so each keeps independent filter/page keys, while the
// shared "courses" prefix lets one invalidation cover both plus every cached
// course entity.
const (
	ResourceCourses = "courses"
	resourceActive  = "courses#active"
	resourceEnded   = "courses#ended"
)

// Service wraps the course API with cache synchronization: reads go through
// the resolver, mutations choose between patching cached entries (effect
// fully known) and invalidating (set membership or counts changed).
type Service struct {
	api      API
	resolver *query.Resolver
	pending  *query.Pending
	logger   *slog.Logger
}

// NewService creates the course service.
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

// List fetches one page of courses from the network. List controllers use it
// as their fetch function; cache reads happen in the controller layer.
func (s *Service) List(ctx context.Context, filters filter.Set, page, limit int) (*domain.Collection[domain.Course], error) {
	return s.api.List(ctx, filters, page, limit)
}

// Get returns a course through the cache.
func (s *Service) Get(ctx context.Context, id string) (*domain.Course, error) {
	c, _, err := query.Resolve(ctx, s.resolver, query.EntityKey(ResourceCourses, id),
		func(ctx context.Context) (*domain.Course, error) {
			return s.api.Get(ctx, id)
		})
	return c, err
}

// Create validates and creates a course, then invalidates every cached
// course list: a new member changes pagination counts, which is not locally
// representable.
func (s *Service) Create(ctx context.Context, req CreateCourseRequest) (*domain.Course, error) {
	if err := pkg.ValidateStruct(req); err != nil {
		return nil, err
	}

	created, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.resolver.Cache().Invalidate(ResourceCourses)
	return created, nil
}

// Update edits a course's descriptive fields. The effect is fully known, so
// cached lists are patched in place and the entity entry replaced without a
// refetch.
func (s *Service) Update(ctx context.Context, id string, req UpdateCourseRequest) (*domain.Course, error) {
	if err := pkg.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !s.pending.Begin(id) {
		return nil, domain.ErrPending
	}
	defer s.pending.End(id)

	updated, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.patchCourse(*updated)
	s.resolver.Cache().Set(query.EntityKey(ResourceCourses, id), updated)
	return updated, nil
}

// Delete removes a course and invalidates all course lists: removal changes
// set membership and pagination counts.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !s.pending.Begin(id) {
		return domain.ErrPending
	}
	defer s.pending.End(id)

	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}

	s.resolver.Cache().Invalidate(ResourceCourses)
	return nil
}

// Enroll enrolls the student in the course. The quota changed server-side,
// so cached lists are invalidated rather than patched. Enrollment is refused
// locally, without a network call, when the control would be disabled.
func (s *Service) Enroll(ctx context.Context, c domain.Course) error {
	if !c.CanEnroll() {
		return domain.NewValidationError("enrollment is closed for this course", nil)
	}
	if !s.pending.Begin(c.ID) {
		return domain.ErrPending
	}
	defer s.pending.End(c.ID)

	if err := s.api.Enroll(ctx, c.ID); err != nil {
		return err
	}

	s.resolver.Cache().Invalidate(ResourceCourses)
	return nil
}

// Unenroll removes the student from the course and invalidates course lists.
func (s *Service) Unenroll(ctx context.Context, c domain.Course) error {
	if !s.pending.Begin(c.ID) {
		return domain.ErrPending
	}
	defer s.pending.End(c.ID)

	if err := s.api.Unenroll(ctx, c.ID); err != nil {
		return err
	}

	s.resolver.Cache().Invalidate(ResourceCourses)
	return nil
}

// ToggleFavorite flips the favorite flag. The flag itself is a field-level
// change patched into cached course lists; the favorites list changes
// membership and is invalidated.
func (s *Service) ToggleFavorite(ctx context.Context, c domain.Course) error {
	if !s.pending.Begin(c.ID) {
		return domain.ErrPending
	}
	defer s.pending.End(c.ID)

	var err error
	if c.Favorite {
		err = s.api.Unfavorite(ctx, c.ID)
	} else {
		err = s.api.Favorite(ctx, c.ID)
	}
	if err != nil {
		return err
	}

	c.Favorite = !c.Favorite
	s.patchCourse(c)
	s.resolver.Cache().Invalidate(profile.ResourceFavorites)
	return nil
}

// EnrollDisabled reports whether the enroll control for c should render
// disabled: no quota, already enrolled, or a mutation for c in flight.
func (s *Service) EnrollDisabled(c domain.Course) bool {
	return !c.CanEnroll() || s.pending.IsPending(c.ID)
}

// Busy reports whether any mutation for the course id is in flight.
func (s *Service) Busy(id string) bool {
	return s.pending.IsPending(id)
}

// patchCourse replaces the course by id in every cached course list.
func (s *Service) patchCourse(updated domain.Course) {
	s.resolver.Cache().PatchPrefix(ResourceCourses, func(value any) any {
		col, ok := value.(*domain.Collection[domain.Course])
		if !ok {
			return value
		}
		out := *col
		out.Items = make([]domain.Course, len(col.Items))
		copy(out.Items, col.Items)
		for i := range out.Items {
			if out.Items[i].ID == updated.ID {
				out.Items[i] = updated
			}
		}
		return &out
	})
}
