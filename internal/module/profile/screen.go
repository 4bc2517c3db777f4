package profile

import (
	"context"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/listview"
	"github.com/aulago/aulago/internal/query"
	"github.com/aulago/aulago/internal/session"
)

// AccountScreen is the profile tab: account details plus the favorite-course
// list.
type AccountScreen struct {
	svc       *Service
	favorites *listview.Controller[domain.Course]
}

// NewAccountScreen creates the profile tab screen.
func NewAccountScreen(svc *Service, resolver *query.Resolver, limit int) *AccountScreen {
	return &AccountScreen{
		svc:       svc,
		favorites: listview.NewController(resolver, ResourceFavorites, limit, svc.Favorites),
	}
}

// Session returns the active session record, if any.
func (s *AccountScreen) Session() (session.Record, bool) {
	return s.svc.Session()
}

// Profile loads the user's profile. On failure it returns a user-facing
// message alongside the error.
func (s *AccountScreen) Profile(ctx context.Context) (*domain.Profile, string) {
	p, err := s.svc.Profile(ctx)
	if err != nil {
		return nil, listview.Translate(err)
	}
	return p, ""
}

// Update edits the profile and returns the user-facing error message, empty
// on success.
func (s *AccountScreen) Update(ctx context.Context, req UpdateProfileRequest) (*domain.Profile, string) {
	p, err := s.svc.UpdateProfile(ctx, req)
	if err != nil {
		return nil, listview.Translate(err)
	}
	return p, ""
}

// Favorites renders the favorite-course list.
func (s *AccountScreen) Favorites(ctx context.Context) listview.View[domain.Course] {
	return s.favorites.View(ctx)
}

// FavoritesList exposes the controller for pagination.
func (s *AccountScreen) FavoritesList() *listview.Controller[domain.Course] {
	return s.favorites
}
