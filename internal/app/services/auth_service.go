package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/edutrack/schoolms/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo     UserStore
	tokenRepo    TokenStore
	studentRepo  StudentStore
	teacherRepo  TeacherStore
	guardianRepo GuardianStore
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	studentRepo StudentStore,
	teacherRepo TeacherStore,
	guardianRepo GuardianStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		studentRepo:  studentRepo,
		teacherRepo:  teacherRepo,
		guardianRepo: guardianRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// validateToken validates a token string
func (s *AuthService) validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.ErrTokenInvalid
	}
	return nil
}

// Login authenticates a user by username or email
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Find user by username, then email
	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	// Password validation
	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("identifier", identifier).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not record last login")
	}

	role := user.Role()
	profile, err := s.ResolveProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User logged in")

	return &dto.AuthResponse{
		Token:        *token,
		User:         dto.NewUserResponse(user),
		RedirectPath: models.DashboardPath(role),
		Profile:      dto.ProfileResponse{Kind: profile.ProfileKind(), Data: profile},
	}, nil
}

// RefreshToken rotates a refresh token: the old one is revoked and a new pair issued
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if err := s.validateToken(refreshToken); err != nil {
		return nil, err
	}

	userID, err := s.tokenRepo.GetUserIDByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			// Also revoke expired token
			_ = s.tokenRepo.RevokeToken(ctx, refreshToken)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Revoke old token so it cannot be replayed
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.validateToken(refreshToken); err != nil {
		return err
	}
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// Me returns the signed-in user with role, landing path and profile
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	profile, err := s.ResolveProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		User:         dto.NewUserResponse(user),
		RedirectPath: models.DashboardPath(user.Role()),
		Profile:      dto.ProfileResponse{Kind: profile.ProfileKind(), Data: profile},
	}, nil
}

// ChangePassword replaces the password after checking the current one. All
// refresh tokens of the user are revoked.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.NewValidationError("currentPassword", "current password is incorrect")
	}
	if !validation.IsStrongPassword(req.NewPassword) {
		return apperrors.NewValidationError("newPassword", "must be at least 8 characters and contain a letter and a digit")
	}
	if req.NewPassword == req.CurrentPassword {
		return apperrors.NewValidationError("newPassword", "must differ from the current password")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Could not revoke tokens after password change")
	}
	return nil
}

// ResolveProfile loads the person record matching the user's classified role.
// A missing record yields NoProfile rather than an error.
func (s *AuthService) ResolveProfile(ctx context.Context, user *models.User) (models.Profile, error) {
	switch user.Role() {
	case models.RoleTeacher:
		t, err := s.teacherRepo.GetByUserID(ctx, user.ID)
		if errors.Is(err, apperrors.ErrTeacherNotFound) {
			return models.NoProfile{}, nil
		}
		if err != nil {
			return nil, err
		}
		return models.TeacherProfile{Teacher: t}, nil

	case models.RoleStudent:
		st, err := s.studentRepo.GetByUserID(ctx, user.ID)
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return models.NoProfile{}, nil
		}
		if err != nil {
			return nil, err
		}
		return models.StudentProfile{Student: st}, nil

	case models.RoleGuardian:
		g, err := s.guardianRepo.GetByUserID(ctx, user.ID)
		if errors.Is(err, apperrors.ErrGuardianNotFound) {
			return models.NoProfile{}, nil
		}
		if err != nil {
			return nil, err
		}
		wards, err := s.guardianRepo.ListWards(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		return models.GuardianProfile{Guardian: g, Wards: wards}, nil
	}
	return models.NoProfile{}, nil
}

// generateTokenResponse issues a token pair and stores the refresh token
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(pair.ExpiresIn),
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: int64(pair.RefreshExpiresIn),
	}, nil
}

// CleanupExpiredTokens removes dead refresh tokens
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.CleanupExpiredTokens(ctx)
}
