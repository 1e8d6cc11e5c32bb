package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	domainUser "tour-booking-api/internal/domain/user"
	"tour-booking-api/internal/logger"
	"tour-booking-api/internal/mail"
	"tour-booking-api/internal/validator"
	"tour-booking-api/pkg/apperrors"
	"tour-booking-api/pkg/token"
	"tour-booking-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the authentication use cases: signup, login and the
// password recovery lifecycle.
type Service struct {
	users       domainUser.Repository
	tokens      *token.JWTManager
	mailer      mail.Mailer
	resetExpiry time.Duration
}

func NewService(
	users domainUser.Repository,
	tokens *token.JWTManager,
	mailer mail.Mailer,
	resetExpiry time.Duration,
) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		resetExpiry: resetExpiry,
	}
}

// Signup creates a user with the default role and logs them in. The password
// is hashed exactly once, here, before the record ever reaches the store.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*AuthResult, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		logger.Warn("Signup attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "signup_failed_duplicate_email"),
		)
		return nil, apperrors.Conflict(fmt.Sprintf("duplicate email with value %s, this value already exists", req.Email))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Roles are never self-assigned through signup.
	user := &domainUser.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     domainUser.RoleUser,
		Active:   true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the pre-check and hit the
		// unique index instead.
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, apperrors.Conflict(fmt.Sprintf("duplicate email with value %s, this value already exists", req.Email))
		}
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "user_signed_up"),
	)

	return &AuthResult{Token: signed, User: ToUserResponse(user)}, nil
}

// Login verifies credentials and issues a token. A missing account and a
// wrong password produce the identical error so the endpoint cannot be used
// to enumerate users.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.BadRequest("please provide email and password")
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetCredentialsByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with unknown email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed"),
			)
			return nil, apperrors.Unauthorized(apperrors.ErrInvalidCredentials.Error())
		}
		return nil, err
	}

	if !user.Active || !utils.CheckPassword(user.Password, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed"),
		)
		return nil, apperrors.Unauthorized(apperrors.ErrInvalidCredentials.Error())
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "login_success"),
	)

	return &AuthResult{Token: signed, User: ToLoginProjection(user)}, nil
}

// ForgotPassword generates a reset token, persists only its digest and mails
// the raw token to the account holder. An undelivered token is never left
// live: delivery failure rolls the stored digest back.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest, resetURLBase string) error {
	if err := validator.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return apperrors.NotFound("there is no user with this email address")
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	raw, digest, err := token.NewResetToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.resetExpiry)
	if err := s.users.SetResetToken(ctx, user.ID, digest, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/%s", resetURLBase, raw)
	body := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s\n"+
			"If you didn't initiate this process, kindly ignore this mail.",
		resetURL,
	)
	msg := mail.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Your password reset token (valid for %d minutes)", int(s.resetExpiry.Minutes())),
		Body:    body,
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Error("Password reset email delivery failed",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_reset_email_failed"),
			zap.Error(err),
		)
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			logger.Error("Failed to roll back reset token after delivery failure",
				zap.String("user_id", user.ID.String()),
				zap.Error(clearErr),
			)
		}
		return apperrors.Wrap(http.StatusInternalServerError, "there was an error sending the email, please try again later", err)
	}

	logger.Info("Password reset token sent",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expiresAt),
		zap.String("event", "password_reset_token_sent"),
	)

	return nil
}

// ResetPassword consumes a raw reset token: it digests the caller-supplied
// value, resolves the matching unexpired record, sets the new password and
// logs the user straight in.
func (s *Service) ResetPassword(ctx context.Context, rawToken string, req *ResetPasswordRequest) (*AuthResult, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	digest := token.HashResetToken(rawToken)
	user, err := s.users.GetByResetTokenDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, domainUser.ErrResetTokenInvalid) {
			return nil, apperrors.NotFound("token is invalid or has expired")
		}
		return nil, err
	}

	if err := s.setPassword(ctx, user.ID, req.Password); err != nil {
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("Password reset completed",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_reset_completed"),
	)

	return &AuthResult{Token: signed, User: ToLoginProjection(user)}, nil
}

// UpdatePassword changes the password of an authenticated user after
// verifying the current one, then issues a fresh token.
func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, req *UpdatePasswordRequest) (*AuthResult, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetCredentialsByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(user.Password, req.PasswordCurrent) {
		return nil, apperrors.Unauthorized("your current password is wrong")
	}

	if err := s.setPassword(ctx, user.ID, req.Password); err != nil {
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("Password updated",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_updated"),
	)

	return &AuthResult{Token: signed, User: ToLoginProjection(user)}, nil
}

// setPassword hashes and stores a new password. The change timestamp is
// backdated one second so a token issued in the same instant stays valid.
func (s *Service) setPassword(ctx context.Context, userID uuid.UUID, password string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	changedAt := time.Now().Add(-time.Second)
	if err := s.users.UpdatePassword(ctx, userID, hashed, changedAt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
