package user

import (
	"time"

	domainUser "tour-booking-api/internal/domain/user"

	"github.com/google/uuid"
)

type UpdateMeRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=5,max=150"`
	Email *string `json:"email" validate:"omitempty,email"`
	Photo *string `json:"photo"`
}

type AdminUpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=5,max=150"`
	Email *string `json:"email" validate:"omitempty,email"`
	Photo *string `json:"photo"`
	Role  *string `json:"role" validate:"omitempty,user_role"`
}

type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Photo     *string         `json:"photo,omitempty"`
	Role      domainUser.Role `json:"role"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
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
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
