package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"factuur/internal/config"
	"factuur/internal/domain"
)

type fakeUserRepo struct {
	byID       map[uuid.UUID]*domain.User
	byUsername map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[uuid.UUID]*domain.User{},
		byUsername: map[string]*domain.User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := f.byUsername[user.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	user.ID = uuid.New()
	f.byID[user.ID] = user
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "factuur-test",
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "jansen", Password: "wachtwoord123"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "wachtwoord123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("wachtwoord123")))

	pair, err := svc.Login(ctx, LoginInput{Username: "jansen", Password: "wachtwoord123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "jansen", claims.Username)
}

func TestAuthLoginFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "jansen", Password: "wachtwoord123"})
	require.NoError(t, err)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Username: "nobody", Password: "wachtwoord123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Username: "jansen", Password: "verkeerd-wachtwoord"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Username: "jansen", Password: "wachtwoord456"})
		assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	})
}

func TestAuthRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "jansen", Password: "wachtwoord123"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, LoginInput{Username: "jansen", Password: "wachtwoord123"})
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		next, err := svc.RefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, next.AccessToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := svc.ValidateToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
