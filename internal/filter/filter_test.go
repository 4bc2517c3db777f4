package filter

import (
	"testing"
	"time"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want string
	}{
		{"empty set", Set{}, ""},
		{"nil set", nil, ""},
		{"single filter", Set{"name": "go"}, "name=go"},
		{"sorted by name", Set{"name": "go", "category": "tech"}, "category=tech&name=go"},
		{"empty values omitted", Set{"name": "go", "category": ""}, "name=go"},
		{"whitespace values omitted", Set{"name": "go", "category": "  "}, "name=go"},
		{"values escaped", Set{"name": "go & rust"}, "name=go+%26+rust"},
		{"all empty", Set{"a": "", "b": ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Canonical(); got != tt.want {
				t.Errorf("Canonical() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalDeterministic(t *testing.T) {
	a := Set{"name": "go", "category": "tech", "date_init": "2026-01-01"}
	b := Set{"category": "tech", "date_init": "2026-01-01", "name": "go", "unused": ""}
	if a.Canonical() != b.Canonical() {
		t.Errorf("same effective filters produced different canonical forms: %q vs %q", a.Canonical(), b.Canonical())
	}
}

func TestParams(t *testing.T) {
	s := Set{"name": "go", "category": "", "date_init": "2026-01-01"}
	params := s.Params()
	if got := params.Get("name"); got != "go" {
		t.Errorf("name = %q, want %q", got, "go")
	}
	if _, ok := params["category"]; ok {
		t.Error("empty filter should be omitted from params")
	}
	if got := params.Get("date_init"); got != "2026-01-01" {
		t.Errorf("date_init = %q, want %q", got, "2026-01-01")
	}
}

func TestDate(t *testing.T) {
	if got := Date(time.Time{}); got != "" {
		t.Errorf("zero time = %q, want empty", got)
	}
	d := time.Date(2026, 3, 7, 15, 30, 0, 0, time.UTC)
	if got := Date(d); got != "2026-03-07" {
		t.Errorf("Date() = %q, want %q", got, "2026-03-07")
	}
}

func TestClone(t *testing.T) {
	orig := Set{"name": "go"}
	cp := orig.Clone()
	cp["name"] = "rust"
	if orig["name"] != "go" {
		t.Error("Clone() should not share storage with the original")
	}
}

func TestCompact(t *testing.T) {
	s := Set{"name": "go", "category": "", "status": " "}
	c := s.Compact()
	if len(c) != 1 || c["name"] != "go" {
		t.Errorf("Compact() = %v, want only name", c)
	}
	if len(s) != 3 {
		t.Error("Compact() should not mutate the original")
	}
}
