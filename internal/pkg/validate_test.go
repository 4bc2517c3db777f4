package pkg

import (
	"errors"
	"testing"

	"github.com/aulago/aulago/internal/domain"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
	Score int    `json:"max_score" validate:"min=0,max=100"`
	Skip  string `json:"-"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        sampleRequest
		wantErr    bool
		wantFields []string
	}{
		{"valid", sampleRequest{Name: "Ana", Email: "ana@example.com", Score: 50}, false, nil},
		{"missing name", sampleRequest{Email: "ana@example.com"}, true, []string{"name"}},
		{"short name", sampleRequest{Name: "ab", Email: "ana@example.com"}, true, []string{"name"}},
		{"bad email", sampleRequest{Name: "Ana", Email: "not-an-email"}, true, []string{"email"}},
		{"several failures", sampleRequest{Score: 200}, true, []string{"name", "email", "max_score"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}

			var appErr *domain.AppError
			if !errors.As(err, &appErr) {
				t.Fatal("expected *domain.AppError")
			}
			for _, field := range tt.wantFields {
				if _, ok := appErr.Fields[field]; !ok {
					t.Errorf("missing field %q in detail map %v", field, appErr.Fields)
				}
			}
		})
	}
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	err := ValidateStruct(sampleRequest{Name: "Ana", Email: "ana@example.com", Score: -1})
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *domain.AppError, got %v", err)
	}
	if _, ok := appErr.Fields["max_score"]; !ok {
		t.Errorf("field detail should use the JSON tag name, got %v", appErr.Fields)
	}
	if _, ok := appErr.Fields["Score"]; ok {
		t.Error("struct field name must not leak into the detail map")
	}
}

func TestValidateStructPointer(t *testing.T) {
	if err := ValidateStruct(&sampleRequest{Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("unexpected error for valid pointer: %v", err)
	}
}
