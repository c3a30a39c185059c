package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/internal/profiles"
	"github.com/pariney/saree-storefront/internal/users"
	pkgAuth "github.com/pariney/saree-storefront/pkg/auth"
	"github.com/pariney/saree-storefront/pkg/auth/session"
	"github.com/pariney/saree-storefront/pkg/config"
	"github.com/pariney/saree-storefront/pkg/db/dbtest"
	"github.com/pariney/saree-storefront/pkg/enums"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	tokens map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]string{}}
}

func (f *fakeSessions) Issue(context.Context) (string, string, error) {
	id := uuid.NewString()
	token := "refresh-" + id
	f.tokens[id] = token
	return id, token, nil
}

func (f *fakeSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.tokens, oldAccessID)
	return f.Issue(ctx)
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	delete(f.tokens, accessID)
	return nil
}

var testJWT = config.JWTConfig{
	Secret:                 "test-secret",
	Issuer:                 "saree-storefront",
	ExpirationMinutes:      15,
	RefreshTokenTTLMinutes: 60,
}

func newTestService(t *testing.T) (Service, *fakeSessions) {
	t.Helper()
	client, conn := dbtest.OpenClient(t)
	sessions := newFakeSessions()
	svc, err := NewService(ServiceParams{
		DB:             client,
		UserRepo:       users.NewRepository(conn),
		ProfileRepo:    profiles.NewRepository(conn),
		SessionManager: sessions,
		Hasher: security.NewHasher(config.PasswordConfig{
			ArgonMemoryKB:    64,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		}),
		JWTConfig: testJWT,
	})
	require.NoError(t, err)
	return svc, sessions
}

func identityFrom(t *testing.T, token string) Identity {
	t.Helper()
	claims, err := pkgAuth.ParseAccessToken(testJWT, token)
	require.NoError(t, err)
	return Identity{UserID: claims.UserID, Email: claims.Email, JTI: claims.ID}
}

func TestRegisterCreatesUserProfileAndSession(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()
	name := "Nandini Rao"

	resp, err := svc.Register(ctx, RegisterRequest{Email: " Nandini@Example.com ", Password: "s3cret!", FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Registration successful", resp.Message)
	assert.Equal(t, "nandini@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Session.RefreshToken)
	assert.Len(t, sessions.tokens, 1)

	identity := identityFrom(t, resp.Session.AccessToken)
	assert.Equal(t, resp.User.ID, identity.UserID)

	me, err := svc.Me(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "user", me["role"])
	require.IsType(t, &name, me["full_name"])
	assert.Equal(t, name, *me["full_name"].(*string))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Email: "DUP@example.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, "User already registered", pkgerrors.As(err).PublicMessage())
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterRequest{Email: "login@example.com", Password: "correct horse"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "LOGIN@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)

	_, err = svc.Login(ctx, LoginRequest{Email: "login@example.com", Password: "wrong"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	assert.Equal(t, "Invalid login credentials", pkgerrors.As(err).PublicMessage())

	_, err = svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "correct horse"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = svc.Login(ctx, LoginRequest{Email: "", Password: "x"})
	assert.Equal(t, "Email and password are required", pkgerrors.As(err).PublicMessage())
}

func TestRefreshRotatesAndLogoutRevokes(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()
	resp, err := svc.Register(ctx, RegisterRequest{Email: "rotate@example.com", Password: "pw"})
	require.NoError(t, err)
	identity := identityFrom(t, resp.Session.AccessToken)

	next, err := svc.Refresh(ctx, identity, resp.Session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Session.AccessToken, next.AccessToken)
	_, stale := sessions.tokens[identity.JTI]
	assert.False(t, stale)

	_, err = svc.Refresh(ctx, identity, resp.Session.RefreshToken)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	rotated := identityFrom(t, next.AccessToken)
	require.NoError(t, svc.Logout(ctx, rotated))
	assert.Empty(t, sessions.tokens)
}

func TestMeWithoutProfile(t *testing.T) {
	svc, _ := newTestService(t)
	identity := Identity{UserID: uuid.New(), Email: "orphan@example.com"}

	me, err := svc.Me(context.Background(), identity)
	require.NoError(t, err)
	assert.Len(t, me, 2)
	assert.Equal(t, "orphan@example.com", me["email"])
}

func TestMeReportsAdminRole(t *testing.T) {
	client, conn := dbtest.OpenClient(t)
	svc, err := NewService(ServiceParams{
		DB:             client,
		UserRepo:       users.NewRepository(conn),
		ProfileRepo:    profiles.NewRepository(conn),
		SessionManager: newFakeSessions(),
		Hasher:         security.NewHasher(config.PasswordConfig{}),
		JWTConfig:      testJWT,
	})
	require.NoError(t, err)
	admin := dbtest.CreateUser(t, conn, "root@example.com", enums.ProfileRoleAdmin)

	me, err := svc.Me(context.Background(), Identity{UserID: admin.ID, Email: admin.Email})
	require.NoError(t, err)
	assert.Equal(t, "admin", me["role"])
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}
