// Package filter holds the search/narrowing state for list queries: the
// filter set sent to the server and the draft→applied state machine that
// drives it from screen controls.
package filter

import (
	"net/url"
	"slices"
	"strings"
	"time"
)

// DateLayout is the wire format for date-valued filters (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// Set maps filter names to values. A filter whose value is the empty string
// is treated as unset: it is omitted from outgoing query parameters and from
// the canonical form rather than sent as empty.
type Set map[string]string

// Date formats a date-valued filter. The zero time yields the empty string,
// i.e. an unset filter.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Compact returns a copy of the set with all empty values removed.
func (s Set) Compact() Set {
	out := make(Set, len(s))
	for k, v := range s {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Params encodes the set into URL query values, omitting empty values.
func (s Set) Params() url.Values {
	v := url.Values{}
	for name, value := range s {
		if strings.TrimSpace(value) == "" {
			continue
		}
		v.Set(name, value)
	}
	return v
}

// Canonical returns a deterministic serialization of the set: non-empty
// entries sorted by name and joined as "name=value&...". Two sets holding
// the same effective filters always produce the same canonical form, which
// makes it safe to embed in cache keys.
func (s Set) Canonical() string {
	names := make([]string, 0, len(s))
	for name, value := range s {
		if strings.TrimSpace(value) == "" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(s[name]))
	}
	return b.String()
}
