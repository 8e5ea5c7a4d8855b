package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CareerGo/internal/apperr"
	"CareerGo/internal/config"
)

type memUserStore struct {
	users map[primitive.ObjectID]*User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[primitive.ObjectID]*User)}
}

func (m *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range m.users {
		if user.EmailAddress == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) FindByConfirmation(_ context.Context, token, code string) (*User, error) {
	for _, user := range m.users {
		if user.AccountConfirmation.Token == token && user.AccountConfirmation.Code == code {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) FindByResetToken(_ context.Context, token string) (*User, error) {
	for _, user := range m.users {
		if user.PasswordReset.Token != "" && user.PasswordReset.Token == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) Create(_ context.Context, user *User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserStore) Update(_ context.Context, user *User) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(m.users, id)
	return nil
}

type memTokenStore struct {
	tokens map[string]*RefreshToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]*RefreshToken)}
}

func (m *memTokenStore) Create(_ context.Context, token *RefreshToken) error {
	copied := *token
	m.tokens[token.Token] = &copied
	return nil
}

func (m *memTokenStore) Find(_ context.Context, token string) (*RefreshToken, error) {
	stored, ok := m.tokens[token]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (m *memTokenStore) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func (m *memTokenStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var deleted int64
	for key, token := range m.tokens {
		if !token.ExpiresAt.After(before) {
			delete(m.tokens, key)
			deleted++
		}
	}
	return deleted, nil
}

type recordingEmail struct {
	recipients [][]string
	subjects   []string
}

func (r *recordingEmail) SendEmail(to []string, subject, _ string) error {
	r.recipients = append(r.recipients, to)
	r.subjects = append(r.subjects, subject)
	return nil
}

type noopProfiles struct {
	calls int
}

func (n *noopProfiles) EnsureBasicInfo(_ context.Context, _ primitive.ObjectID) error {
	n.calls++
	return nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Env:                "test",
		ClientURL:          "http://localhost:5173",
		AccessTokenSecret:  "access-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenExpiry: 24 * time.Hour,
	}
}

type authFixture struct {
	service  *Service
	users    *memUserStore
	tokens   *memTokenStore
	email    *recordingEmail
	profiles *noopProfiles
}

func newAuthFixture() *authFixture {
	users := newMemUserStore()
	tokens := newMemTokenStore()
	email := &recordingEmail{}
	profiles := &noopProfiles{}
	service := NewServiceWith(users, tokens, email, testConfig(), profiles, zap.NewNop().Sugar())
	return &authFixture{service: service, users: users, tokens: tokens, email: email, profiles: profiles}
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Name:         "Asha Verma",
		EmailAddress: "asha@example.com",
		Password:     "sup3rsecret",
		Consent:      true,
	}
}

func (f *authFixture) registerConfirmed(t *testing.T) *User {
	t.Helper()
	user, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, f.service.VerifyAccount(context.Background(),
		user.AccountConfirmation.Token, user.AccountConfirmation.Code))
	return user
}

func TestRegisterCreatesUnconfirmedUser(t *testing.T) {
	f := newAuthFixture()

	user, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, RoleUser, user.Role)
	assert.False(t, user.AccountConfirmation.Status)
	assert.NotEmpty(t, user.AccountConfirmation.Token)
	assert.Len(t, user.AccountConfirmation.Code, 6)
	assert.Equal(t, 1, f.profiles.calls)
	require.Len(t, f.email.recipients, 1)
	assert.Equal(t, []string{"asha@example.com"}, f.email.recipients[0])
}

func TestRegisterConfirmedDuplicateFails(t *testing.T) {
	f := newAuthFixture()
	f.registerConfirmed(t)

	_, err := f.service.Register(context.Background(), registerRequest())

	require.Error(t, err)
	assert.Equal(t, 422, apperr.Status(err))
}

func TestRegisterUnconfirmedDuplicateIsReplaced(t *testing.T) {
	f := newAuthFixture()
	first, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	second, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.users.users, 1)
}

func TestVerifyAccountWrongCode(t *testing.T) {
	f := newAuthFixture()
	user, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	err = f.service.VerifyAccount(context.Background(), user.AccountConfirmation.Token, "000000x")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestLoginRequiresConfirmation(t *testing.T) {
	f := newAuthFixture()
	_, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.service.Login(context.Background(), LoginRequest{
		EmailAddress: "asha@example.com",
		Password:     "sup3rsecret",
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestLoginIssuesTokenPair(t *testing.T) {
	f := newAuthFixture()
	user := f.registerConfirmed(t)

	result, err := f.service.Login(context.Background(), LoginRequest{
		EmailAddress: "asha@example.com",
		Password:     "sup3rsecret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user.ID.Hex(), result.User.ID)

	claims, err := ValidateJWT(result.AccessToken, "access-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)

	stored, err := f.tokens.Find(context.Background(), result.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.registerConfirmed(t)

	_, err := f.service.Login(context.Background(), LoginRequest{
		EmailAddress: "asha@example.com",
		Password:     "wrong",
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.registerConfirmed(t)

	unknownErr := func() error {
		_, err := f.service.Login(context.Background(), LoginRequest{
			EmailAddress: "nobody@example.com",
			Password:     "secret-pass",
		})
		return err
	}()
	wrongErr := func() error {
		_, err := f.service.Login(context.Background(), LoginRequest{
			EmailAddress: "asha@example.com",
			Password:     "wrong",
		})
		return err
	}()

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, 400, apperr.Status(unknownErr))
	assert.Equal(t, apperr.Status(wrongErr), apperr.Status(unknownErr))
	assert.Equal(t, apperr.MessageOf(wrongErr), apperr.MessageOf(unknownErr))
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	f := newAuthFixture()
	user := f.registerConfirmed(t)
	result, err := f.service.Login(context.Background(), LoginRequest{
		EmailAddress: "asha@example.com",
		Password:     "sup3rsecret",
	})
	require.NoError(t, err)

	accessToken, err := f.service.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)

	claims, err := ValidateJWT(accessToken, "access-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func TestRefreshAfterLogoutFails(t *testing.T) {
	f := newAuthFixture()
	f.registerConfirmed(t)
	result, err := f.service.Login(context.Background(), LoginRequest{
		EmailAddress: "asha@example.com",
		Password:     "sup3rsecret",
	})
	require.NoError(t, err)
	require.NoError(t, f.service.Logout(context.Background(), result.RefreshToken))

	_, err = f.service.Refresh(context.Background(), result.RefreshToken)

	require.Error(t, err)
	assert.Equal(t, 401, apperr.Status(err))
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture()
	user := f.registerConfirmed(t)

	require.NoError(t, f.service.ForgotPassword(context.Background(), "asha@example.com"))
	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordReset.Token)

	require.NoError(t, f.service.ResetPassword(context.Background(), stored.PasswordReset.Token, "brandNewPass1"))

	_, err = f.service.Login(context.Background(), LoginRequest{
		EmailAddress: "asha@example.com",
		Password:     "brandNewPass1",
	})
	require.NoError(t, err)

	// reset record is cleared, so the link is single use
	err = f.service.ResetPassword(context.Background(), stored.PasswordReset.Token, "anotherPass2")
	require.Error(t, err)
}

func TestResetPasswordExpiredLink(t *testing.T) {
	f := newAuthFixture()
	user := f.registerConfirmed(t)
	require.NoError(t, f.service.ForgotPassword(context.Background(), "asha@example.com"))

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	stored.PasswordReset.Expiry = time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, f.users.Update(context.Background(), stored))

	err = f.service.ResetPassword(context.Background(), stored.PasswordReset.Token, "brandNewPass1")
	require.Error(t, err)
	assert.Equal(t, "Link expired", apperr.MessageOf(err))
}

func TestChangePasswordChecks(t *testing.T) {
	f := newAuthFixture()
	user := f.registerConfirmed(t)

	err := f.service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "newPass123", ConfirmPassword: "newPass123",
	})
	require.Error(t, err)

	err = f.service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "sup3rsecret", NewPassword: "newPass123", ConfirmPassword: "different",
	})
	require.Error(t, err)

	err = f.service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "sup3rsecret", NewPassword: "sup3rsecret", ConfirmPassword: "sup3rsecret",
	})
	require.Error(t, err)

	err = f.service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "sup3rsecret", NewPassword: "newPass123", ConfirmPassword: "newPass123",
	})
	require.NoError(t, err)
}

func TestSweeperDeletesExpiredTokens(t *testing.T) {
	tokens := newMemTokenStore()
	require.NoError(t, tokens.Create(context.Background(), &RefreshToken{
		Token: "stale", ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, tokens.Create(context.Background(), &RefreshToken{
		Token: "fresh", ExpiresAt: time.Now().Add(time.Hour),
	}))

	deleted, err := tokens.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(1), deleted)
	stale, _ := tokens.Find(context.Background(), "stale")
	assert.Nil(t, stale)
}
