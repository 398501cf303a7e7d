package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lodge-registration/internal/config"
	"github.com/spec-kit/lodge-registration/internal/domain"
	apperrors "github.com/spec-kit/lodge-registration/pkg/util"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	seq    int
	emails map[string]struct{}
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{emails: make(map[string]struct{})}
}

func (r *fakeAdminRepo) Add(_ context.Context, admin *domain.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	admin.ID = fmt.Sprintf("admin-%d", r.seq)
	admin.CreatedAt = time.Now()
	r.emails[admin.Email] = struct{}{}
	return nil
}

func (r *fakeAdminRepo) IsAdmin(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.emails[email]
	return ok, nil
}

func (r *fakeAdminRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.emails), nil
}

func testAuthConfig(setupToken string) config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 10,
			BcryptCost:            4,
			AdminSetupToken:       setupToken,
		},
	}
}

func newTestAuthService(setupToken string) (*AuthService, *fakeUserRepo, *fakeAdminRepo) {
	users := newFakeUserRepo()
	admins := newFakeAdminRepo()
	svc := NewAuthService(testAuthConfig(setupToken), AuthDependencies{
		UserRepo:  users,
		AdminRepo: admins,
	})
	return svc, users, admins
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService("")

	t.Run("Success", func(t *testing.T) {
		user, token, exp, err := svc.RegisterUser(ctx, "Amina@Example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "amina@example.com", user.Email)
		assert.NotEmpty(t, token)
		assert.True(t, exp.After(time.Now()))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, _, _, err := svc.RegisterUser(ctx, "amina@example.com", "secret1")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "CONFLICT"))
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, _, _, err := svc.RegisterUser(ctx, "binta@example.com", "abc")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService("")
	_, _, _, err := svc.RegisterUser(ctx, "amina@example.com", "secret1")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		user, token, _, err := svc.LoginUser(ctx, "amina@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "amina@example.com", user.Email)

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectTypeUser, claims.Subject)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, _, err := svc.LoginUser(ctx, "amina@example.com", "wrong-pass")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, _, _, err := svc.LoginUser(ctx, "ghost@example.com", "secret1")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
	})
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _, admins := newTestAuthService("")
	_, _, _, err := svc.RegisterUser(ctx, "chair@example.com", "secret1")
	require.NoError(t, err)

	t.Run("ValidCredentialsNotOnAllowList", func(t *testing.T) {
		// authorization failure, not an authentication one: the caller gets
		// "access denied" and no token
		_, token, _, err := svc.LoginAdmin(ctx, "chair@example.com", "secret1")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
		assert.Empty(t, token)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		_, _, _, err := svc.LoginAdmin(ctx, "chair@example.com", "wrong-pass")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
	})

	t.Run("AllowListed", func(t *testing.T) {
		require.NoError(t, admins.Add(ctx, &domain.AdminUser{Email: "chair@example.com"}))

		_, token, _, err := svc.LoginAdmin(ctx, "chair@example.com", "secret1")
		require.NoError(t, err)

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectTypeAdmin, claims.Subject)
	})
}

func TestSetupAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("DisabledWithoutToken", func(t *testing.T) {
		svc, _, _ := newTestAuthService("")
		_, err := svc.SetupAdmin(ctx, "anything", "chair@example.com", "secret1")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
	})

	t.Run("WrongToken", func(t *testing.T) {
		svc, _, _ := newTestAuthService("bootstrap-token")
		_, err := svc.SetupAdmin(ctx, "guess", "chair@example.com", "secret1")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
	})

	t.Run("Success", func(t *testing.T) {
		svc, _, admins := newTestAuthService("bootstrap-token")
		user, err := svc.SetupAdmin(ctx, "bootstrap-token", "chair@example.com", "secret1")
		require.NoError(t, err)

		isAdmin, err := admins.IsAdmin(ctx, user.Email)
		require.NoError(t, err)
		assert.True(t, isAdmin)

		_, token, _, err := svc.LoginAdmin(ctx, "chair@example.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}
