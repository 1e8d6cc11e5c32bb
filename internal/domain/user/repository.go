package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the credential-store operations. Standard reads omit the
// password digest; GetCredentialsBy* include it for verification flows.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*User, error)
	GetCredentialsByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error

	// UpdatePassword stores a new digest, stamps changedAt and clears any
	// live reset token in one write.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string, changedAt time.Time) error

	// SetResetToken persists the reset digest and expiry without touching the
	// rest of the record; the row may be in a transient state.
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenDigest string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error

	// GetByResetTokenDigest resolves a user whose stored digest matches and
	// whose expiry is still in the future.
	GetByResetTokenDigest(ctx context.Context, tokenDigest string) (*User, error)
}
