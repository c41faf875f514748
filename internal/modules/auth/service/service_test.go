package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	"kweezy.app/server/internal/modules/auth/dto"
	"kweezy.app/server/pkg/apperror"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		user.ID = id
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	u, ok := f.users[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func newAuthFixture() (*fakeUserRepo, AuthService) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	return repo, svc
}

func register(t *testing.T, svc AuthService, username, email string) *dto.UserResponse {
	t.Helper()
	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "hunter22",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAssignsReaderRole(t *testing.T) {
	_, svc := newAuthFixture()

	user := register(t, svc, "alice", "alice@example.com")

	assert.Equal(t, entity.RoleUser, user.Role)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	_, svc := newAuthFixture()
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "hunter22",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	_, svc := newAuthFixture()
	user := register(t, svc, "alice", "alice@example.com")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	_, svc := newAuthFixture()
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, "Invalid credentials.", appErr.Message)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	_, svc := newAuthFixture()
	register(t, svc, "alice", "alice@example.com")
	bob := register(t, svc, "bob", "bob@example.com")

	name := "alice"
	_, err := svc.UpdateProfile(context.Background(), bob.ID, dto.UpdateProfileRequest{Username: &name})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, "Username already taken.", appErr.Message)
}

func TestUpdateProfileRequiresData(t *testing.T) {
	_, svc := newAuthFixture()
	alice := register(t, svc, "alice", "alice@example.com")

	_, err := svc.UpdateProfile(context.Background(), alice.ID, dto.UpdateProfileRequest{})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestUpdateProfileSetsColor(t *testing.T) {
	_, svc := newAuthFixture()
	alice := register(t, svc, "alice", "alice@example.com")

	color := "#ff00aa"
	updated, err := svc.UpdateProfile(context.Background(), alice.ID, dto.UpdateProfileRequest{UsernameColor: &color})

	require.NoError(t, err)
	require.NotNil(t, updated.UsernameColor)
	assert.Equal(t, "#ff00aa", *updated.UsernameColor)
}
