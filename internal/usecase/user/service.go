package user

import (
	"context"
	"errors"
	"fmt"

	domainUser "tour-booking-api/internal/domain/user"
	"tour-booking-api/internal/logger"
	"tour-booking-api/internal/validator"
	"tour-booking-api/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the user-resource use cases: self-service profile
// management plus the admin CRUD surface.
type Service struct {
	users domainUser.Repository
}

func NewService(users domainUser.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("no user found for the id: %s", userID))
		}
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) List(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}
	return responses, nil
}

// UpdateMe updates profile fields only; password changes go through the
// dedicated password routes.
func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, req *UpdateMeRequest) (*UserResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Photo != nil {
		user.Photo = req.Photo
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, apperrors.Conflict(fmt.Sprintf("duplicate email with value %s, this value already exists", user.Email))
		}
		return nil, err
	}

	return ToUserResponse(user), nil
}

// DeactivateMe soft-deletes the account; the row stays for auditability but
// vanishes from reads.
func (s *Service) DeactivateMe(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.Deactivate(ctx, userID); err != nil {
		return err
	}

	logger.Info("User deactivated own account",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_deactivated"),
	)
	return nil
}

func (s *Service) AdminUpdate(ctx context.Context, userID uuid.UUID, req *AdminUpdateUserRequest) (*UserResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("no user found for the id: %s", userID))
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Photo != nil {
		user.Photo = req.Photo
	}
	if req.Role != nil {
		user.Role = domainUser.Role(*req.Role)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, apperrors.Conflict(fmt.Sprintf("duplicate email with value %s, this value already exists", user.Email))
		}
		return nil, err
	}

	logger.Info("User updated by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("event", "user_admin_updated"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	err := s.users.Delete(ctx, userID)
	if errors.Is(err, domainUser.ErrUserNotFound) {
		return apperrors.NotFound(fmt.Sprintf("no user found for the id: %s", userID))
	}
	return err
}
