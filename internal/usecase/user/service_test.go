package user

import (
	"context"
	"testing"
	"time"

	domainUser "tour-booking-api/internal/domain/user"
	"tour-booking-api/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeRepository) add(u *domainUser.User) *domainUser.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeRepository) Create(_ context.Context, u *domainUser.User) error {
	r.add(u)
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	return r.GetByEmail(ctx, email)
}

func (r *fakeRepository) GetCredentialsByID(ctx context.Context, id uuid.UUID) (*domainUser.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepository) GetAll(_ context.Context) ([]*domainUser.User, error) {
	all := make([]*domainUser.User, 0, len(r.users))
	for _, u := range r.users {
		if u.Active {
			all = append(all, u)
		}
	}
	return all, nil
}

func (r *fakeRepository) Update(_ context.Context, u *domainUser.User) error {
	for _, other := range r.users {
		if other.ID != u.ID && other.Email == u.Email {
			return domainUser.ErrUserAlreadyExists
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepository) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.Active = false
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return domainUser.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepository) UpdatePassword(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

func (r *fakeRepository) SetResetToken(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

func (r *fakeRepository) ClearResetToken(context.Context, uuid.UUID) error { return nil }

func (r *fakeRepository) GetByResetTokenDigest(context.Context, string) (*domainUser.User, error) {
	return nil, domainUser.ErrResetTokenInvalid
}

func TestService_Get_UnknownID(t *testing.T) {
	service := NewService(newFakeRepository())
	unknown := uuid.New()

	_, err := service.Get(context.Background(), unknown)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Contains(t, appErr.Message, unknown.String())
}

func TestService_UpdateMe(t *testing.T) {
	repo := newFakeRepository()
	stored := repo.add(&domainUser.User{
		Name:   "Jonas Schmedtmann",
		Email:  "jonas@example.com",
		Role:   domainUser.RoleUser,
		Active: true,
	})
	service := NewService(repo)

	newName := "Jonas the Explorer"
	response, err := service.UpdateMe(context.Background(), stored.ID, &UpdateMeRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Jonas the Explorer", response.Name)
	assert.Equal(t, "jonas@example.com", response.Email)
	assert.Equal(t, domainUser.RoleUser, response.Role)
}

func TestService_UpdateMe_DuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	repo.add(&domainUser.User{Email: "taken@example.com", Active: true})
	stored := repo.add(&domainUser.User{Email: "jonas@example.com", Active: true})
	service := NewService(repo)

	taken := "taken@example.com"
	_, err := service.UpdateMe(context.Background(), stored.ID, &UpdateMeRequest{Email: &taken})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestService_DeactivateMe(t *testing.T) {
	repo := newFakeRepository()
	stored := repo.add(&domainUser.User{Email: "jonas@example.com", Active: true})
	service := NewService(repo)

	require.NoError(t, service.DeactivateMe(context.Background(), stored.ID))
	assert.False(t, stored.Active)

	// Deactivated accounts disappear from listings.
	responses, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestService_AdminUpdate_ChangesRole(t *testing.T) {
	repo := newFakeRepository()
	stored := repo.add(&domainUser.User{
		Name:   "Future Guide",
		Email:  "guide@example.com",
		Role:   domainUser.RoleUser,
		Active: true,
	})
	service := NewService(repo)

	role := "lead-guide"
	response, err := service.AdminUpdate(context.Background(), stored.ID, &AdminUpdateUserRequest{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, domainUser.RoleLeadGuide, response.Role)
}

func TestService_AdminUpdate_RejectsUnknownRole(t *testing.T) {
	repo := newFakeRepository()
	stored := repo.add(&domainUser.User{Email: "guide@example.com", Active: true})
	service := NewService(repo)

	role := "superadmin"
	_, err := service.AdminUpdate(context.Background(), stored.ID, &AdminUpdateUserRequest{Role: &role})
	assert.Error(t, err)
}

func TestService_Delete_UnknownID(t *testing.T) {
	service := NewService(newFakeRepository())

	err := service.Delete(context.Background(), uuid.New())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}
