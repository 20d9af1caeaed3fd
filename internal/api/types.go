package api

import (
	"encoding/json"
	"time"

	"github.com/joestump/bookmarks-api/internal/store"
)

// --- Bookmark types ---

// CreateBookmarkRequest is the request body for POST /bookmarks.
type CreateBookmarkRequest struct {
	Title       string  `json:"title" validate:"required,notblank"`
	Link        string  `json:"link" validate:"required,url"`
	Description *string `json:"description"`
}

// EditBookmarkRequest is the request body for PATCH /bookmarks/{id}.
// Every field is optional; a field that is present must still be valid.
// An explicit "description": null clears the description.
type EditBookmarkRequest struct {
	Title       *string        `json:"title" validate:"omitnil,notblank"`
	Link        *string        `json:"link" validate:"omitnil,url"`
	Description NullableString `json:"description" validate:"-"`
}

// NullableString tells an absent JSON field apart from an explicit null.
type NullableString struct {
	Present bool
	Value   *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// BookmarkResponse is the JSON representation of a single bookmark.
type BookmarkResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBookmarkResponse(b *store.Bookmark) *BookmarkResponse {
	if b == nil {
		return nil
	}
	return &BookmarkResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		Title:       b.Title,
		Link:        b.Link,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// --- Auth types ---

// AuthRequest is the request body for POST /auth/signup and /auth/signin.
// bcrypt ignores input past 72 bytes, so longer passwords are refused.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// --- User types ---

// EditUserRequest is the request body for PATCH /users.
type EditUserRequest struct {
	Email     *string `json:"email" validate:"omitnil,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UserResponse is the JSON representation of a user. The password hash is never exposed.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u *store.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
