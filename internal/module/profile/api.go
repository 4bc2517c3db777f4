package profile

import (
	"context"
	"net/url"
	"strconv"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/transport"
)

// API is the remote surface of the profile/auth service.
type API interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.Profile, error)
	Favorites(ctx context.Context, page, limit int) (*domain.Collection[domain.Course], error)
}

type remoteAPI struct {
	client *transport.Client
}

// NewAPI creates the profile service API over the given transport client.
func NewAPI(client *transport.Client) API {
	return &remoteAPI{client: client}
}

// Login exchanges credentials for a bearer token. The request itself is
// anonymous; the transport simply has no session yet.
func (a *remoteAPI) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := a.client.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the authenticated user's profile.
func (a *remoteAPI) Profile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := a.client.Get(ctx, "/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile edits the user's profile and returns the updated version.
func (a *remoteAPI) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.Profile, error) {
	var p domain.Profile
	if err := a.client.Patch(ctx, "/profile", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Favorites fetches one page of the user's favorite courses.
func (a *remoteAPI) Favorites(ctx context.Context, page, limit int) (*domain.Collection[domain.Course], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var col domain.Collection[domain.Course]
	if err := a.client.Get(ctx, "/profile/favorites", params, &col); err != nil {
		return nil, err
	}
	col.Normalize()
	return &col, nil
}
