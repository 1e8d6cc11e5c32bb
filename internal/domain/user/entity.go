package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// RoleSet is a membership set over the enumerated roles, used by the
// authorization gate.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// User represents a user entity in the domain. Password holds the bcrypt
// digest and is only populated by credential reads; PasswordResetToken is
// always a one-way digest, never the raw token handed to the user.
type User struct {
	ID                   uuid.UUID
	Name                 string
	Email                string
	Photo                *string
	Role                 Role
	Password             string
	PasswordChangedAt    *time.Time
	PasswordResetToken   *string
	PasswordResetExpires *time.Time
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ChangedPasswordAfter reports whether the password was mutated after the
// given token issuance time. Comparison is at second granularity to match
// the token's iat resolution.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}
