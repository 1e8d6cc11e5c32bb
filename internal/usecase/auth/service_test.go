package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainUser "tour-booking-api/internal/domain/user"
	"tour-booking-api/internal/mail"
	"tour-booking-api/pkg/apperrors"
	"tour-booking-api/pkg/token"
	"tour-booking-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepository struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeUserRepository) add(u *domainUser.User) *domainUser.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepository) Create(_ context.Context, u *domainUser.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	return r.GetByEmail(ctx, email)
}

func (r *fakeUserRepository) GetCredentialsByID(ctx context.Context, id uuid.UUID) (*domainUser.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepository) GetAll(_ context.Context) ([]*domainUser.User, error) {
	all := make([]*domainUser.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, nil
}

func (r *fakeUserRepository) Update(_ context.Context, u *domainUser.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepository) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.Active = false
	return nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return domainUser.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, id uuid.UUID, hash string, changedAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.Password = hash
	u.PasswordChangedAt = &changedAt
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
	return nil
}

func (r *fakeUserRepository) SetResetToken(_ context.Context, id uuid.UUID, digest string, expiresAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordResetToken = &digest
	u.PasswordResetExpires = &expiresAt
	return nil
}

func (r *fakeUserRepository) ClearResetToken(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
	return nil
}

func (r *fakeUserRepository) GetByResetTokenDigest(_ context.Context, digest string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == digest &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(time.Now()) {
			return u, nil
		}
	}
	return nil, domainUser.ErrResetTokenInvalid
}

type fakeMailer struct {
	sent    []mail.Message
	sendErr error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService(repo *fakeUserRepository, mailer *fakeMailer) *Service {
	return NewService(repo, token.NewJWTManager("test-secret", time.Hour), mailer, 30*time.Minute)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hashed
}

func TestService_Signup(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailer{})

	result, err := service.Signup(context.Background(), &SignupRequest{
		Name:            "Jonas Schmedtmann",
		Email:           "jonas@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	response, ok := result.User.(*UserResponse)
	require.True(t, ok)
	assert.Equal(t, "jonas@example.com", response.Email)
	assert.Equal(t, domainUser.RoleUser, response.Role)

	stored, err := repo.GetByEmail(context.Background(), "jonas@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pass1234", stored.Password)
	assert.True(t, utils.CheckPassword(stored.Password, "pass1234"))
	assert.True(t, stored.Active)
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	repo.add(&domainUser.User{Name: "Existing User", Email: "jonas@example.com", Active: true})
	service := newTestService(repo, &fakeMailer{})

	_, err := service.Signup(context.Background(), &SignupRequest{
		Name:            "Jonas Schmedtmann",
		Email:           "jonas@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.StatusCode)
}

// duplicateCreateRepository simulates a concurrent signup: the email pre-check
// sees nothing, but the insert hits the unique index.
type duplicateCreateRepository struct {
	*fakeUserRepository
}

func (r *duplicateCreateRepository) Create(context.Context, *domainUser.User) error {
	return domainUser.ErrUserAlreadyExists
}

func TestService_Signup_ConcurrentDuplicate(t *testing.T) {
	repo := &duplicateCreateRepository{fakeUserRepository: newFakeUserRepository()}
	service := NewService(repo, token.NewJWTManager("test-secret", time.Hour), &fakeMailer{}, 30*time.Minute)

	_, err := service.Signup(context.Background(), &SignupRequest{
		Name:            "Jonas Schmedtmann",
		Email:           "jonas@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "jonas@example.com")
}

func TestService_Signup_PasswordMismatch(t *testing.T) {
	service := newTestService(newFakeUserRepository(), &fakeMailer{})

	_, err := service.Signup(context.Background(), &SignupRequest{
		Name:            "Jonas Schmedtmann",
		Email:           "jonas@example.com",
		Password:        "pass1234",
		PasswordConfirm: "different",
	})
	assert.Error(t, err)
}

func TestService_Login(t *testing.T) {
	repo := newFakeUserRepository()
	repo.add(&domainUser.User{
		Name:     "Jonas Schmedtmann",
		Email:    "jonas@example.com",
		Password: mustHash(t, "pass1234"),
		Role:     domainUser.RoleUser,
		Active:   true,
	})
	service := newTestService(repo, &fakeMailer{})

	result, err := service.Login(context.Background(), &LoginRequest{
		Email:    "jonas@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	projection, ok := result.User.(*LoginProjection)
	require.True(t, ok)
	assert.Equal(t, "jonas@example.com", projection.Email)
}

// A missing account, a wrong password and a deactivated account must be
// indistinguishable to the caller.
func TestService_Login_IdenticalFailures(t *testing.T) {
	repo := newFakeUserRepository()
	repo.add(&domainUser.User{
		Email:    "known@example.com",
		Password: mustHash(t, "pass1234"),
		Active:   true,
	})
	repo.add(&domainUser.User{
		Email:    "inactive@example.com",
		Password: mustHash(t, "pass1234"),
		Active:   false,
	})
	service := newTestService(repo, &fakeMailer{})

	tests := []struct {
		name    string
		request *LoginRequest
	}{
		{name: "unknown email", request: &LoginRequest{Email: "unknown@example.com", Password: "pass1234"}},
		{name: "wrong password", request: &LoginRequest{Email: "known@example.com", Password: "wrong-pass"}},
		{name: "deactivated account", request: &LoginRequest{Email: "inactive@example.com", Password: "pass1234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.request)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 401, appErr.StatusCode)
			assert.Equal(t, apperrors.ErrInvalidCredentials.Error(), appErr.Message)
		})
	}
}

func TestService_Login_MissingFields(t *testing.T) {
	service := newTestService(newFakeUserRepository(), &fakeMailer{})

	_, err := service.Login(context.Background(), &LoginRequest{Email: "jonas@example.com"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestService_ForgotPassword(t *testing.T) {
	repo := newFakeUserRepository()
	stored := repo.add(&domainUser.User{Email: "jonas@example.com", Active: true})
	mailer := &fakeMailer{}
	service := newTestService(repo, mailer)

	err := service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "jonas@example.com",
	}, "http://localhost:8080/api/v1/users/resetPassword")
	require.NoError(t, err)

	require.NotNil(t, stored.PasswordResetToken)
	require.NotNil(t, stored.PasswordResetExpires)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), *stored.PasswordResetExpires, 5*time.Second)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jonas@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "http://localhost:8080/api/v1/users/resetPassword/")

	// The mail carries the raw token, the store only its digest.
	parts := strings.Split(mailer.sent[0].Body, "resetPassword/")
	require.Len(t, parts, 2)
	raw := strings.Fields(parts[1])[0]
	assert.NotEqual(t, raw, *stored.PasswordResetToken)
	assert.Equal(t, token.HashResetToken(raw), *stored.PasswordResetToken)
}

func TestService_ForgotPassword_UnknownEmail(t *testing.T) {
	service := newTestService(newFakeUserRepository(), &fakeMailer{})

	err := service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "unknown@example.com",
	}, "http://localhost:8080/api/v1/users/resetPassword")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestService_ForgotPassword_MailFailureRollsBack(t *testing.T) {
	repo := newFakeUserRepository()
	stored := repo.add(&domainUser.User{Email: "jonas@example.com", Active: true})
	service := newTestService(repo, &fakeMailer{sendErr: errors.New("smtp unreachable")})

	err := service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "jonas@example.com",
	}, "http://localhost:8080/api/v1/users/resetPassword")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.StatusCode)

	assert.Nil(t, stored.PasswordResetToken)
	assert.Nil(t, stored.PasswordResetExpires)
}

func TestService_ResetPassword(t *testing.T) {
	repo := newFakeUserRepository()
	stored := repo.add(&domainUser.User{
		Email:    "jonas@example.com",
		Password: mustHash(t, "old-pass1234"),
		Active:   true,
	})
	mailer := &fakeMailer{}
	service := newTestService(repo, mailer)

	err := service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "jonas@example.com",
	}, "http://localhost:8080/api/v1/users/resetPassword")
	require.NoError(t, err)

	parts := strings.Split(mailer.sent[0].Body, "resetPassword/")
	raw := strings.Fields(parts[1])[0]

	result, err := service.ResetPassword(context.Background(), raw, &ResetPasswordRequest{
		Password:        "new-pass1234",
		PasswordConfirm: "new-pass1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	assert.True(t, utils.CheckPassword(stored.Password, "new-pass1234"))
	assert.Nil(t, stored.PasswordResetToken)
	require.NotNil(t, stored.PasswordChangedAt)

	// The token is single use.
	_, err = service.ResetPassword(context.Background(), raw, &ResetPasswordRequest{
		Password:        "another-pass1234",
		PasswordConfirm: "another-pass1234",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestService_ResetPassword_ExpiredToken(t *testing.T) {
	repo := newFakeUserRepository()
	raw, digest, err := token.NewResetToken()
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	repo.add(&domainUser.User{
		Email:                "jonas@example.com",
		Active:               true,
		PasswordResetToken:   &digest,
		PasswordResetExpires: &expired,
	})
	service := newTestService(repo, &fakeMailer{})

	_, err = service.ResetPassword(context.Background(), raw, &ResetPasswordRequest{
		Password:        "new-pass1234",
		PasswordConfirm: "new-pass1234",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, "token is invalid or has expired", appErr.Message)
}

func TestService_UpdatePassword(t *testing.T) {
	repo := newFakeUserRepository()
	stored := repo.add(&domainUser.User{
		Email:    "jonas@example.com",
		Password: mustHash(t, "old-pass1234"),
		Active:   true,
	})
	service := newTestService(repo, &fakeMailer{})

	result, err := service.UpdatePassword(context.Background(), stored.ID, &UpdatePasswordRequest{
		PasswordCurrent: "old-pass1234",
		Password:        "new-pass1234",
		PasswordConfirm: "new-pass1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	assert.True(t, utils.CheckPassword(stored.Password, "new-pass1234"))
	require.NotNil(t, stored.PasswordChangedAt)
	assert.True(t, stored.PasswordChangedAt.Before(time.Now()))
}

func TestService_UpdatePassword_WrongCurrent(t *testing.T) {
	repo := newFakeUserRepository()
	stored := repo.add(&domainUser.User{
		Email:    "jonas@example.com",
		Password: mustHash(t, "old-pass1234"),
		Active:   true,
	})
	service := newTestService(repo, &fakeMailer{})

	_, err := service.UpdatePassword(context.Background(), stored.ID, &UpdatePasswordRequest{
		PasswordCurrent: "wrong-pass",
		Password:        "new-pass1234",
		PasswordConfirm: "new-pass1234",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Equal(t, "your current password is wrong", appErr.Message)

	assert.True(t, utils.CheckPassword(stored.Password, "old-pass1234"))
}
