package validation_test

import (
	"testing"

	"github.com/joestump/bookmarks-api/internal/validation"
)

type payload struct {
	Title *string `json:"title" validate:"omitempty,notblank,max=10"`
	Link  string  `json:"link" validate:"required,http_url"`
	Email string  `json:"email,omitempty" validate:"omitempty,email"`
}

func ptr(s string) *string { return &s }

func TestStruct(t *testing.T) {
	tests := []struct {
		name string
		in   payload
		want map[string]string
	}{
		{"valid", payload{Link: "https://example.com"}, nil},
		{"valid with title", payload{Title: ptr("hello"), Link: "https://example.com"}, nil},
		{"missing link", payload{}, map[string]string{"link": "is required"}},
		{"bad link", payload{Link: "not a url"}, map[string]string{"link": "must be a valid URL"}},
		{"blank title", payload{Title: ptr("   "), Link: "https://example.com"}, map[string]string{"title": "must not be blank"}},
		{"long title", payload{Title: ptr("01234567890"), Link: "https://example.com"}, map[string]string{"title": "must not exceed 10 characters"}},
		{"bad email", payload{Link: "https://example.com", Email: "nope"}, map[string]string{"email": "must be a valid email address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.Struct(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d errors (%+v), want %d", len(got), got, len(tt.want))
			}
			for _, fe := range got {
				msg, ok := tt.want[fe.Field]
				if !ok {
					t.Errorf("unexpected error on field %q: %s", fe.Field, fe.Error)
					continue
				}
				if fe.Error != msg {
					t.Errorf("field %q error = %q, want %q", fe.Field, fe.Error, msg)
				}
			}
		})
	}
}
