package api_test

import (
	"net/http"
	"testing"

	"github.com/joestump/bookmarks-api/internal/api"
)

func TestUsersAPI_Me(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com")
	token := seedToken(t, env, u.ID)

	rr := do(t, env.Router, http.MethodGet, "/users/me", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var got api.UserResponse
	decode(t, rr, &got)
	if got.ID != u.ID || got.Email != "me@example.com" {
		t.Errorf("got %+v", got)
	}
	if got.FirstName != nil || got.LastName != nil {
		t.Errorf("expected null names, got %v %v", got.FirstName, got.LastName)
	}
}

func TestUsersAPI_Me_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	rr := do(t, env.Router, http.MethodGet, "/users/me", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestUsersAPI_Edit(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "edit@example.com")
	token := seedToken(t, env, u.ID)

	rr := do(t, env.Router, http.MethodPatch, "/users/", token, map[string]any{
		"firstName": "Edith",
		"lastName":  "Finch",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}
	var got api.UserResponse
	decode(t, rr, &got)
	if got.FirstName == nil || *got.FirstName != "Edith" {
		t.Errorf("firstName = %v", got.FirstName)
	}
	if got.LastName == nil || *got.LastName != "Finch" {
		t.Errorf("lastName = %v", got.LastName)
	}
	if got.Email != "edit@example.com" {
		t.Errorf("email changed to %q", got.Email)
	}
}

func TestUsersAPI_Edit_Errors(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env, "taken@example.com")
	u := seedUser(t, env, "free@example.com")
	token := seedToken(t, env, u.ID)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"email taken", map[string]any{"email": "taken@example.com"}, http.StatusConflict, "EMAIL_TAKEN"},
		{"invalid email", map[string]any{"email": "nope"}, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"malformed json", `{`, http.StatusBadRequest, "BAD_REQUEST"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, env.Router, http.MethodPatch, "/users", token, tc.body)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rr.Code, tc.wantStatus, rr.Body.String())
			}
			var got errorResponse
			decode(t, rr, &got)
			if got.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tc.wantCode)
			}
		})
	}
}
