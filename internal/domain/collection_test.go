package domain

import (
	"encoding/json"
	"testing"
)

func TestCollectionNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Collection[string]
		wantPage int
		wantTot  int
	}{
		{"zero value", Collection[string]{}, 1, 1},
		{"negative counters", Collection[string]{TotalItems: -1, TotalPages: -2, CurrentPage: -3}, 1, 1},
		{"page beyond total clamps", Collection[string]{TotalPages: 3, CurrentPage: 9}, 3, 3},
		{"consistent left alone", Collection[string]{TotalPages: 5, CurrentPage: 2}, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			if tt.in.Items == nil {
				t.Error("nil items must become an empty slice")
			}
			if tt.in.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", tt.in.CurrentPage, tt.wantPage)
			}
			if tt.in.TotalPages != tt.wantTot {
				t.Errorf("TotalPages = %d, want %d", tt.in.TotalPages, tt.wantTot)
			}
		})
	}
}

func TestCollectionDecodeMissingItems(t *testing.T) {
	var c Collection[string]
	if err := json.Unmarshal([]byte(`{"totalItems":0,"totalPages":1,"currentPage":1}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	c.Normalize()
	if c.Items == nil || len(c.Items) != 0 {
		t.Errorf("Items = %v, want empty slice", c.Items)
	}
}

func TestCollectionPaging(t *testing.T) {
	c := Collection[string]{TotalPages: 3, CurrentPage: 1}
	if c.HasPrev() {
		t.Error("first page has no previous")
	}
	if !c.HasNext() {
		t.Error("first of three pages has a next")
	}
	c.CurrentPage = 3
	if !c.HasPrev() || c.HasNext() {
		t.Error("last page: prev yes, next no")
	}
}
