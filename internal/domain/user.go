package domain

import (
	"context"
	"time"
)

// User represents an account on the dashboard. Registration state is
// derived from field combinations rather than a status column: an
// unverified user with an OTP code is mid-signup, a verified user with
// an empty password hash has confirmed their email but not yet chosen
// credentials, and a verified user with a password hash or a Google ID
// is fully registered.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string // empty until signup is completed
	GoogleID     string // empty unless the account came from Google OAuth
	OTPCode      string // empty when no code is pending
	OTPExpiresAt *time.Time
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	// Delete removes the user with the given ID. Returns ErrNotFound if
	// no such user exists.
	Delete(ctx context.Context, id int64) error
	// DeleteExpiredUnverified removes unverified users whose OTP expired
	// before the cutoff and returns how many were removed. Verified users
	// are never matched.
	DeleteExpiredUnverified(ctx context.Context, cutoff time.Time) (int64, error)
}
