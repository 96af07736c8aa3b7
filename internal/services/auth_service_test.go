package services

import (
	"context"
	"testing"
	"time"

	"constru_backend/internal/auth"
	"constru_backend/internal/config"
	"constru_backend/internal/email"
	"constru_backend/internal/models"
	"constru_backend/internal/repositories"
	"constru_backend/internal/services/dto"
	"constru_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---- fakes ----

type fakeUserRepo struct {
	usersByID    map[string]*models.User
	usersByEmail map[string]*models.User
	created      []*models.User
	verified     []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:    map[string]*models.User{},
		usersByEmail: map[string]*models.User{},
	}
}

func (f *fakeUserRepo) add(user *models.User) {
	f.usersByID[user.ID] = user
	f.usersByEmail[user.Email] = user
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	if user, ok := f.usersByID[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	if user, ok := f.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	for _, user := range f.usersByID {
		if user.VerificationToken == token && token != "" {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByResetToken(db *gorm.DB, token string) (*models.User, error) {
	for _, user := range f.usersByID {
		if user.ResetToken == token && token != "" {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	if _, exists := f.usersByEmail[user.Email]; exists {
		return repositories.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	f.add(user)
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *models.User) error {
	if _, ok := f.usersByID[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	user, ok := f.usersByID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (f *fakeUserRepo) VerifyUser(db *gorm.DB, userID string) error {
	user, ok := f.usersByID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.IsVerified = true
	user.Status = models.UserStatusActive
	user.VerificationToken = ""
	f.verified = append(f.verified, userID)
	return nil
}

func (f *fakeUserRepo) Delete(db *gorm.DB, userID string) error {
	user, ok := f.usersByID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.usersByID, userID)
	delete(f.usersByEmail, user.Email)
	return nil
}

func (f *fakeUserRepo) FindWithFilter(db *gorm.DB, filter repositories.UserFilter) ([]models.User, int64, error) {
	var users []models.User
	for _, user := range f.usersByID {
		users = append(users, *user)
	}
	return users, int64(len(users)), nil
}

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeTokenRepo) Create(db *gorm.DB, token *models.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenRepo) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	if token, ok := f.tokens[tokenString]; ok {
		return token, nil
	}
	return nil, repositories.ErrRefreshTokenNotFound
}

func (f *fakeTokenRepo) RevokeByToken(db *gorm.DB, tokenString string) (bool, error) {
	token, ok := f.tokens[tokenString]
	if !ok || token.Revoked {
		return false, nil
	}
	token.Revoked = true
	return true, nil
}

func (f *fakeTokenRepo) RevokeByUserID(db *gorm.DB, userID string) (bool, error) {
	any := false
	for _, token := range f.tokens {
		if token.UserID == userID && !token.Revoked {
			token.Revoked = true
			any = true
		}
	}
	return any, nil
}

func (f *fakeTokenRepo) IsTokenRevoked(db *gorm.DB, tokenString string) (bool, error) {
	token, ok := f.tokens[tokenString]
	if !ok {
		return true, nil
	}
	return token.Revoked, nil
}

func (f *fakeTokenRepo) CleanExpired(db *gorm.DB, olderThan time.Time) (int64, error) {
	var removed int64
	for key, token := range f.tokens {
		if token.ExpiresAt.Before(olderThan) {
			delete(f.tokens, key)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeTokenRepo) CountActiveByUserID(db *gorm.DB, userID string) (int64, error) {
	var count int64
	for _, token := range f.tokens {
		if token.UserID == userID && !token.Revoked && token.ExpiresAt.After(time.Now()) {
			count++
		}
	}
	return count, nil
}

// ---- helpers ----

func setServiceTestConfig(t *testing.T) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTTL = 60
	cfg.JWT.RefreshTTLHours = 720
	cfg.Recommendations.BehaviorWindowDays = 30
	cfg.Recommendations.CacheTTLMinutes = 15
	cfg.Recommendations.ExpiryDays = 14
	config.AppConfig = cfg
}

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	setServiceTestConfig(t)
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	return NewAuthService(users, tokens, email.NoopProvider{}), users, tokens
}

func activeUser(t *testing.T, users *fakeUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         models.UserRoleCustomer,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	user.ID = "user-" + email
	users.add(user)
	return user
}

// ---- tests ----

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), nil, &dto.RegisterRequest{
		Email: "a@b.com", Password: "short", Name: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	assert.Empty(t, users.created)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), nil, &dto.RegisterRequest{
		Email: "a@b.com", Password: "longenough", Name: "A", Role: "admin",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	activeUser(t, users, "a@b.com", "password123")

	_, err := svc.Register(context.Background(), nil, &dto.RegisterRequest{
		Email: "a@b.com", Password: "password123", Name: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginHappyPath(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	user := activeUser(t, users, "a@b.com", "password123")

	session, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
		Email: "a@b.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, user.ID, session.User.ID)

	// A session row was persisted and is active.
	record, err := tokens.FindByToken(nil, session.RefreshToken)
	require.NoError(t, err)
	assert.False(t, record.Revoked)
	assert.Equal(t, user.ID, record.UserID)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	activeUser(t, users, "a@b.com", "password123")

	_, err1 := svc.Login(context.Background(), nil, &dto.LoginRequest{Email: "a@b.com", Password: "wrong"})
	_, err2 := svc.Login(context.Background(), nil, &dto.LoginRequest{Email: "nobody@b.com", Password: "whatever"})

	assert.ErrorIs(t, err1, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, err2, apperrors.ErrInvalidCredentials)
}

func TestLoginSuspendedUser(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	user := activeUser(t, users, "a@b.com", "password123")
	user.Status = models.UserStatusSuspended

	_, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
		Email: "a@b.com", Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserSuspended)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	activeUser(t, users, "a@b.com", "password123")

	session, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
		Email: "a@b.com", Password: "password123",
	})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), nil, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The old token is revoked, the new one is live.
	revoked, err := tokens.IsTokenRevoked(nil, session.RefreshToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = tokens.IsTokenRevoked(nil, rotated.RefreshToken)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRefreshUnknownRevokedAndExpiredAllFail(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	user := activeUser(t, users, "a@b.com", "password123")

	// Unknown
	_, err := svc.Refresh(context.Background(), nil, "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Revoked
	revokedToken := &models.RefreshToken{
		UserID: user.ID, Token: "revoked-token",
		ExpiresAt: time.Now().Add(time.Hour), Revoked: true,
	}
	require.NoError(t, tokens.Create(nil, revokedToken))
	_, err = svc.Refresh(context.Background(), nil, "revoked-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Expired: fails and is revoked on sight
	expiredToken := &models.RefreshToken{
		UserID: user.ID, Token: "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, tokens.Create(nil, expiredToken))
	_, err = svc.Refresh(context.Background(), nil, "expired-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.True(t, expiredToken.Revoked)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	activeUser(t, users, "a@b.com", "password123")

	session, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
		Email: "a@b.com", Password: "password123",
	})
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), nil, session.RefreshToken))
	// Second and third logouts of the same token still succeed.
	assert.NoError(t, svc.Logout(context.Background(), nil, session.RefreshToken))
	assert.NoError(t, svc.Logout(context.Background(), nil, "completely-unknown"))
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	user := activeUser(t, users, "a@b.com", "password123")

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
			Email: "a@b.com", Password: "password123",
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.LogoutAll(context.Background(), nil, user.ID))

	count, err := tokens.CountActiveByUserID(nil, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVerifyEmail(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), nil, &dto.RegisterRequest{
		Email: "new@b.com", Password: "password123", Name: "New",
	})
	require.NoError(t, err)

	user := users.usersByID[resp.ID]
	token := user.VerificationToken
	require.NotEmpty(t, token)

	require.NoError(t, svc.VerifyEmail(context.Background(), nil, token))
	assert.True(t, user.IsVerified)
	assert.Equal(t, models.UserStatusActive, user.Status)

	// The consumed token no longer verifies.
	err = svc.VerifyEmail(context.Background(), nil, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	user := activeUser(t, users, "a@b.com", "password123")

	// Requesting a reset for an unknown email succeeds silently.
	assert.NoError(t, svc.RequestPasswordReset(context.Background(), nil, "nobody@b.com"))

	require.NoError(t, svc.RequestPasswordReset(context.Background(), nil, "a@b.com"))
	require.NotEmpty(t, user.ResetToken)

	// An open session exists before the reset.
	_, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
		Email: "a@b.com", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), nil, user.ResetToken, "brand-new-pass"))

	// Old password dead, new password works, sessions revoked.
	_, err = svc.Login(context.Background(), nil, &dto.LoginRequest{Email: "a@b.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	count, err := tokens.CountActiveByUserID(nil, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.Login(context.Background(), nil, &dto.LoginRequest{Email: "a@b.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}
