package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/config"
	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/pkg/jwt"
	"github.com/curlykit/PTLab2/internal/pkg/password"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = domain.ErrTokenInvalid
	ErrTokenExpired       = domain.ErrTokenExpired
	ErrUserInactive       = errors.New("user account is inactive")
	ErrAdminNotConfigured = errors.New("admin username and password are required")
)

// AuthService handles admin authentication and account maintenance
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		log:      log,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
}

// Login authenticates an admin account
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.DeletedAt.Valid {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		s.log.Warn().Str("username", user.Username).Msg("login rejected")
		return nil, ErrInvalidCredentials
	}

	// 4. Issue token
	token, expiresAt, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUserByID gets an account by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// EnsureAdmin creates the configured admin when no active admin exists.
// It returns true when an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context) (bool, error) {
	count, err := s.userRepo.CountByRole(ctx, string(domain.RoleAdmin))
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if s.cfg.Admin.Username == "" || s.cfg.Admin.Password == "" {
		s.log.Warn().Msg("no admin account and ADMIN_PASSWORD is not set, admin API is unreachable")
		return false, nil
	}

	if _, err := s.ResetAdmin(ctx, s.cfg.Admin.Username, s.cfg.Admin.Password, false); err != nil {
		return false, err
	}
	return true, nil
}

// ResetAdmin creates the admin account or resets its password, role and
// active flag. With purge set every other account is removed.
func (s *AuthService) ResetAdmin(ctx context.Context, username, plain string, purge bool) (*models.UserResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return nil, ErrAdminNotConfigured
	}
	if err := password.Validate(plain); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			Username: username,
			Password: hashed,
			Role:     string(domain.RoleAdmin),
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info().Str("username", username).Msg("admin account created")
	case err != nil:
		return nil, err
	default:
		user.Password = hashed
		user.Role = string(domain.RoleAdmin)
		user.IsActive = true
		user.DeletedAt = gorm.DeletedAt{}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info().Str("username", username).Msg("admin password reset")
	}

	if purge {
		removed, err := s.userRepo.DeleteExcept(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		s.log.Info().Int64("removed", removed).Msg("other accounts removed")
	}

	return user.ToResponse(), nil
}
