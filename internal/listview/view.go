// Package listview turns cached query results into renderable screen state:
// one of four phases (loading, error, empty, populated), pagination controls,
// and user-facing error messages.
package listview

import "fmt"

// Phase is the render state of a list screen.
type Phase int

const (
	// PhaseLoading means no cached data exists yet and a fetch is needed.
	// It is never shown when a stale cached value exists.
	PhaseLoading Phase = iota
	// PhaseError means the fetch failed and a retry control should be shown.
	PhaseError
	// PhaseEmpty means the fetch succeeded with zero items.
	PhaseEmpty
	// PhasePopulated means items and pagination controls should render.
	PhasePopulated
)

// String returns the phase name for logs and tests.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhasePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// Pager is the pagination control state for a populated list.
type Pager struct {
	Page       int
	TotalPages int
}

// Label returns the user-facing pager caption.
func (p Pager) Label() string {
	return fmt.Sprintf("Página %d de %d", p.Page, p.TotalPages)
}

// PrevEnabled reports whether the "Anterior" control is enabled.
func (p Pager) PrevEnabled() bool {
	return p.Page > 1
}

// NextEnabled reports whether the "Siguiente" control is enabled.
func (p Pager) NextEnabled() bool {
	return p.Page < p.TotalPages
}

// View is everything a list screen needs to render.
type View[T any] struct {
	Phase Phase
	Items []T
	Pager Pager
	// Err is the raw failure for PhaseError; Message is its user-facing
	// translation.
	Err     error
	Message string
	// Refreshing is true when the rendered data came from a stale cache
	// entry and a background revalidation is running.
	Refreshing bool
}
