package listview

import (
	"context"

	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/filter"
	"github.com/aulago/aulago/internal/query"
)

// FetchFunc loads one page of a list from the network.
type FetchFunc[T any] func(ctx context.Context, filters filter.Set, page, limit int) (*domain.Collection[T], error)

// Controller orchestrates filter state, the query cache, and the fetcher
// into renderable views for one list. Screens with several sub-lists (active
// vs ended courses, tasks vs exams) hold one Controller per sub-list so each
// keeps its own page counter.
type Controller[T any] struct {
	resolver *query.Resolver
	state    *filter.State
	resource string
	limit    int
	fetch    FetchFunc[T]
}

// NewController creates a Controller for the given cache resource.
func NewController[T any](resolver *query.Resolver, resource string, limit int, fetch FetchFunc[T]) *Controller[T] {
	return &Controller[T]{
		resolver: resolver,
		state:    filter.NewState(),
		resource: resource,
		limit:    limit,
		fetch:    fetch,
	}
}

// SetFilter records a draft filter value; it takes effect on ApplyFilters.
func (c *Controller[T]) SetFilter(name, value string) {
	c.state.SetDraft(name, value)
}

// ApplyFilters commits the draft filters and resets pagination to page 1.
func (c *Controller[T]) ApplyFilters() {
	c.state.Apply()
}

// ClearFilters empties all filters and re-applies immediately.
func (c *Controller[T]) ClearFilters() {
	c.state.Clear()
}

// Filters returns the applied filter set.
func (c *Controller[T]) Filters() filter.Set {
	return c.state.Applied()
}

// Page returns the current page.
func (c *Controller[T]) Page() int {
	return c.state.Page()
}

// SetPage jumps directly to a page, clamped to at least 1. Deep links and
// restored screens use it; in-screen navigation goes through NextPage and
// PrevPage.
func (c *Controller[T]) SetPage(page int) {
	c.state.SetPage(page)
}

// Snapshot renders from the cache without touching the network. With no
// cached entry the screen shows a loading state; a stale entry still renders
// (with Refreshing set) instead of a spinner.
func (c *Controller[T]) Snapshot() View[T] {
	v, fresh, ok := c.resolver.Cache().Get(c.key())
	if !ok {
		return View[T]{Phase: PhaseLoading}
	}
	col, castOK := v.(*domain.Collection[T])
	if !castOK {
		return View[T]{Phase: PhaseLoading}
	}
	return render(col, !fresh)
}

// View resolves the current page through the cache (fetching or revalidating
// as needed) and renders it. A failed fetch renders the error phase with a
// translated message and leaves the cache untouched, so calling View again
// acts as the retry control.
func (c *Controller[T]) View(ctx context.Context) View[T] {
	filters := c.state.Applied()
	page := c.state.Page()

	col, stale, err := query.Resolve(ctx, c.resolver, query.Key(c.resource, filters, page),
		func(ctx context.Context) (*domain.Collection[T], error) {
			return c.fetch(ctx, filters, page, c.limit)
		})
	if err != nil {
		return View[T]{Phase: PhaseError, Err: err, Message: Translate(err)}
	}
	return render(col, stale)
}

// NextPage advances to the next page when one exists and renders it.
func (c *Controller[T]) NextPage(ctx context.Context) View[T] {
	current := c.View(ctx)
	if current.Phase == PhasePopulated && current.Pager.NextEnabled() {
		c.state.SetPage(current.Pager.Page + 1)
	}
	return c.View(ctx)
}

// PrevPage moves back one page when possible and renders it.
func (c *Controller[T]) PrevPage(ctx context.Context) View[T] {
	if c.state.Page() > 1 {
		c.state.SetPage(c.state.Page() - 1)
	}
	return c.View(ctx)
}

func (c *Controller[T]) key() string {
	return query.Key(c.resource, c.state.Applied(), c.state.Page())
}

func render[T any](col *domain.Collection[T], stale bool) View[T] {
	if len(col.Items) == 0 {
		return View[T]{Phase: PhaseEmpty, Refreshing: stale}
	}
	return View[T]{
		Phase:      PhasePopulated,
		Items:      col.Items,
		Pager:      Pager{Page: col.CurrentPage, TotalPages: col.TotalPages},
		Refreshing: stale,
	}
}
