package domain

// Collection is the paginated envelope every list endpoint returns.
type Collection[T any] struct {
	Items       []T `json:"items"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// Normalize repairs a decoded collection in place: a missing items array
// becomes an empty slice (an absent field is an empty result, not an error)
// and pagination counters are clamped to consistent values.
func (c *Collection[T]) Normalize() {
	if c.Items == nil {
		c.Items = []T{}
	}
	if c.TotalItems < 0 {
		c.TotalItems = 0
	}
	if c.TotalPages < 1 {
		c.TotalPages = 1
	}
	if c.CurrentPage < 1 {
		c.CurrentPage = 1
	}
	if c.CurrentPage > c.TotalPages {
		c.CurrentPage = c.TotalPages
	}
}

// HasPrev reports whether a previous page exists.
func (c *Collection[T]) HasPrev() bool {
	return c.CurrentPage > 1
}

// HasNext reports whether a further page exists.
func (c *Collection[T]) HasNext() bool {
	return c.CurrentPage < c.TotalPages
}
