package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/internal/profiles"
	"github.com/pariney/saree-storefront/internal/users"
	pkgAuth "github.com/pariney/saree-storefront/pkg/auth"
	"github.com/pariney/saree-storefront/pkg/auth/session"
	"github.com/pariney/saree-storefront/pkg/config"
	"github.com/pariney/saree-storefront/pkg/db"
	"github.com/pariney/saree-storefront/pkg/db/models"
	"github.com/pariney/saree-storefront/pkg/enums"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "Invalid login credentials"
	alreadyRegisteredMessage  = "User already registered"
	invalidRefreshMessage     = "Invalid refresh token"
)

// Service is the identity provider behind /api/auth.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, identity Identity) error
	Refresh(ctx context.Context, identity Identity, refreshToken string) (*Session, error)
	Me(ctx context.Context, identity Identity) (map[string]any, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type profileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

type sessionManager interface {
	Issue(ctx context.Context) (string, string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	DB             *db.Client
	UserRepo       userRepository
	ProfileRepo    profileRepository
	SessionManager sessionManager
	Hasher         passwordHasher
	JWTConfig      config.JWTConfig
}

type service struct {
	db       *db.Client
	users    userRepository
	profiles profileRepository
	sessions sessionManager
	hasher   passwordHasher
	jwtCfg   config.JWTConfig
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "profile repository is required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager is required")
	}
	if params.Hasher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "password hasher is required")
	}
	return &service{
		db:       params.DB,
		users:    params.UserRepo,
		profiles: params.ProfileRepo,
		sessions: params.SessionManager,
		hasher:   params.Hasher,
		jwtCfg:   params.JWTConfig,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, credentialsRequiredMessage)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	fullName := ""
	if req.FullName != nil {
		fullName = strings.TrimSpace(*req.FullName)
	}
	avatar := ""

	var user *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		profileRepo := profiles.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, alreadyRegisteredMessage)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Store(err, "check user email")
		}

		created, err := userRepo.Create(ctx, email, passwordHash)
		if err != nil {
			if db.IsUniqueViolation(err, "users_email_key") {
				return pkgerrors.New(pkgerrors.CodeValidation, alreadyRegisteredMessage)
			}
			return pkgerrors.Store(err, "create user")
		}

		if err := profileRepo.Create(ctx, &models.Profile{
			ID:        created.ID,
			FullName:  &fullName,
			Role:      enums.ProfileRoleUser,
			AvatarURL: &avatar,
		}); err != nil {
			return pkgerrors.Store(err, "create profile")
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Message: "Registration successful", User: users.FromModel(user), Session: *sess}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, credentialsRequiredMessage)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Store(err, "lookup user")
	}

	valid, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	sess, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Message: "Login successful", User: users.FromModel(user), Session: *sess}, nil
}

func (s *service) Logout(ctx context.Context, identity Identity) error {
	if err := s.sessions.Revoke(ctx, identity.JTI); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) Refresh(ctx context.Context, identity Identity, refreshToken string) (*Session, error) {
	accessID, newRefresh, err := s.sessions.Rotate(ctx, identity.JTI, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, invalidRefreshMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}
	return s.mint(identity.UserID, identity.Email, accessID, newRefresh)
}

func (s *service) Me(ctx context.Context, identity Identity) (map[string]any, error) {
	profile, err := s.profiles.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return me(identity, nil), nil
		}
		return nil, pkgerrors.Store(err, "load profile")
	}
	return me(identity, &profileView{
		FullName:  profile.FullName,
		Role:      profile.Role.String(),
		AvatarURL: profile.AvatarURL,
		CreatedAt: profile.CreatedAt,
	}), nil
}

func (s *service) openSession(ctx context.Context, user *models.User) (*Session, error) {
	accessID, refreshToken, err := s.sessions.Issue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}
	return s.mint(user.ID, user.Email, accessID, refreshToken)
}

func (s *service) mint(userID uuid.UUID, email, accessID, refreshToken string) (*Session, error) {
	now := s.now()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: userID,
		Email:  email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &Session{
		AccessToken:  token,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.jwtCfg.AccessTokenTTL()).Unix(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
