package domain

import (
	"context"
	"time"
)

// User represents a front-end user account. One-time accounts and the
// additional-attendee records materialized during registration are users too,
// flagged with OneTime.
// swagger:model User
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	StoragePID int64  `json:"storage_pid"`
	OneTime    bool   `json:"one_time"`

	// PasswordHash is empty for additional-attendee records, which can never
	// log in.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}

// PasswordHasher hashes and verifies passwords. Implementations may use
// bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues session tokens. oneTime marks tokens for anonymous
// one-time accounts so the session resolver can rank them below
// authenticated sessions.
type TokenIssuer interface {
	Issue(userID string, oneTime bool, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the user ID it carries
// plus whether it belongs to a one-time account.
type TokenVerifier interface {
	Verify(token string) (userID string, oneTime bool, err error)
}

// OneTimeAccountService creates anonymous guest accounts for visitors who
// register without a full user account.
type OneTimeAccountService interface {
	// CreateOneTimeAccount creates a guest user with generated credentials
	// and returns it together with a session token for it.
	CreateOneTimeAccount(ctx context.Context, email string) (*User, string, error)
}
