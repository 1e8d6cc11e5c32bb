package auth

import (
	"time"

	domainUser "tour-booking-api/internal/domain/user"

	"github.com/google/uuid"
)

type SignupRequest struct {
	Name            string `json:"name" validate:"required,min=5,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// UserResponse is the full public projection of a user; password-related
// fields are never part of it.
type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Photo     *string         `json:"photo,omitempty"`
	Role      domainUser.Role `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}

// LoginProjection is the minimal projection returned by login and reset:
// role and password metadata deliberately excluded.
type LoginProjection struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AuthResult struct {
	Token string
	User  any
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Photo:     u.Photo,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func ToLoginProjection(u *domainUser.User) *LoginProjection {
	return &LoginProjection{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
