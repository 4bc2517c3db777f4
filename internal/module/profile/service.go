package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/filter"
	"github.com/aulago/aulago/internal/pkg"
	"github.com/aulago/aulago/internal/query"
	"github.com/aulago/aulago/internal/session"
)

// Cache resources owned by this module. ResourceFavorites is exported
// because favoriting a course (course module) changes this list's
// membership and must invalidate it.
const (
	ResourceFavorites = "profile/favorites"
	profileKey        = "profile/me"
)

// Service wraps the profile/auth API: login and logout manage the persisted
// session, profile reads go through the cache, and profile edits patch it.
type Service struct {
	api      API
	resolver *query.Resolver
	sessions *session.Store
	logger   *slog.Logger
}

// NewService creates the profile service.
func NewService(api API, resolver *query.Resolver, sessions *session.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:      api,
		resolver: resolver,
		sessions: sessions,
		logger:   logger,
	}
}

// Login validates credentials client-side, authenticates, and persists the
// returned session. The whole query cache is invalidated: everything cached
// so far belongs to the previous identity (or to no identity).
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Profile, error) {
	if err := pkg.ValidateStruct(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Unix(resp.ExpiresAt, 0)
	if err := s.sessions.Save(resp.Token, resp.User.ID, resp.User.Name, resp.User.Role, expiresAt); err != nil {
		return nil, err
	}

	s.resolver.Cache().Invalidate("")
	s.logger.Info("logged in",
		slog.String("user_id", resp.User.ID),
		slog.String("role", resp.User.Role),
	)
	return &resp.User, nil
}

// Logout clears the persisted session and invalidates the whole cache.
func (s *Service) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return err
	}
	s.resolver.Cache().Invalidate("")
	s.logger.Info("logged out")
	return nil
}

// Session returns the active session record, if any.
func (s *Service) Session() (session.Record, bool) {
	return s.sessions.Current()
}

// Profile returns the user's profile through the cache.
func (s *Service) Profile(ctx context.Context) (*domain.Profile, error) {
	p, _, err := query.Resolve(ctx, s.resolver, profileKey,
		func(ctx context.Context) (*domain.Profile, error) {
			return s.api.Profile(ctx)
		})
	return p, err
}

// UpdateProfile edits the user's profile. The server's updated version
// replaces the cached one directly; a field-level edit never forces a
// refetch.
func (s *Service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.Profile, error) {
	if err := pkg.ValidateStruct(req); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	s.resolver.Cache().Set(profileKey, updated)
	return updated, nil
}

// Favorites fetches one page of favorite courses; the favorites list
// controller uses it as its fetch function. The filter set is unused; the
// favorites screen has no filter controls.
func (s *Service) Favorites(ctx context.Context, _ filter.Set, page, limit int) (*domain.Collection[domain.Course], error) {
	return s.api.Favorites(ctx, page, limit)
}
