package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/external/oauth"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
	"github.com/classpulse/backend/pkg/jwt"
)

// Service handles authentication: credentials login, Google OAuth login,
// and DB-backed refresh sessions
type Service struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	google      *oauth.GoogleProvider
	states      oauth.StateStore
	jwtManager  *jwt.Manager
}

// NewService creates a new auth service. google may be nil when the Google
// provider is disabled.
func NewService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	google *oauth.GoogleProvider,
	states oauth.StateStore,
	jwtManager *jwt.Manager,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		google:      google,
		states:      states,
		jwtManager:  jwtManager,
	}
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	User         *entities.User `json:"user"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
	SessionID    string         `json:"session_id,omitempty"`
}

// Register creates a new credentials-based account
func (s *Service) Register(ctx context.Context, email, name, password string, role entities.UserRole) (*AuthResponse, error) {
	if !role.IsValid() {
		role = entities.RoleProfessor
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, usecaseErrors.ErrEmailAlreadyUsed
	} else if err != entities.ErrUserNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	user := &entities.User{
		Email:        email,
		Name:         name,
		Role:         role,
		IsActive:     true,
		PasswordHash: &hashStr,
		Timezone:     "UTC",
		Language:     "en",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, user, "", "")
}

// Login authenticates with email and password
func (s *Service) Login(ctx context.Context, email, password, ip, userAgent string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == entities.ErrUserNotFound {
			return nil, usecaseErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		// OAuth-only account
		return nil, usecaseErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, usecaseErrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, usecaseErrors.ErrUserNotActive
	}

	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)
	return s.issueTokens(ctx, user, ip, userAgent)
}

// GoogleAuthURL generates the Google consent URL with a one-time state
func (s *Service) GoogleAuthURL(ctx context.Context) (url, state string, err error) {
	if s.google == nil {
		return "", "", entities.ErrOAuthProviderNotSupported
	}
	state, err = s.states.Generate(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}
	return s.google.GetAuthURL(state), state, nil
}

// HandleGoogleCallback completes the OAuth flow: state check, code exchange,
// find-or-create the user, and session issuance
func (s *Service) HandleGoogleCallback(ctx context.Context, code, state, ip, userAgent string) (*AuthResponse, error) {
	if s.google == nil {
		return nil, entities.ErrOAuthProviderNotSupported
	}
	if !s.states.Consume(ctx, state) {
		return nil, entities.ErrOAuthStateMismatch
	}

	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	googleUser, err := s.google.GetUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	user, err := s.userRepo.FindByOAuth(ctx, "google", googleUser.ID)
	switch {
	case err == entities.ErrUserNotFound:
		user, err = s.linkOrCreateGoogleUser(ctx, googleUser, token.RefreshToken)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to find user: %w", err)
	default:
		user.AvatarURL = &googleUser.Picture
		if token.RefreshToken != "" {
			user.OAuthRefreshToken = &token.RefreshToken
		}
		user.Touch()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)
	return s.issueTokens(ctx, user, ip, userAgent)
}

// linkOrCreateGoogleUser links Google identity to an existing account with
// the same email, or creates a fresh account
func (s *Service) linkOrCreateGoogleUser(ctx context.Context, googleUser *oauth.GoogleUserInfo, oauthRefreshToken string) (*entities.User, error) {
	provider := "google"

	existing, err := s.userRepo.FindByEmail(ctx, googleUser.Email)
	if err == nil {
		existing.OAuthProvider = &provider
		existing.OAuthID = &googleUser.ID
		existing.AvatarURL = &googleUser.Picture
		if oauthRefreshToken != "" {
			existing.OAuthRefreshToken = &oauthRefreshToken
		}
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to link accounts: %w", err)
		}
		return existing, nil
	}
	if err != entities.ErrUserNotFound {
		return nil, err
	}

	user := &entities.User{
		Email:         googleUser.Email,
		Name:          googleUser.Name,
		Role:          entities.RoleProfessor,
		IsActive:      true,
		OAuthProvider: &provider,
		OAuthID:       &googleUser.ID,
		AvatarURL:     &googleUser.Picture,
		Timezone:      "UTC",
		Language:      "en",
	}
	if googleUser.Locale != "" {
		user.Language = googleUser.Locale
	}
	if oauthRefreshToken != "" {
		user.OAuthRefreshToken = &oauthRefreshToken
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Refresh exchanges a valid refresh token for a new access token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, usecaseErrors.ErrTokenInvalid
	}

	tokenHash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, usecaseErrors.ErrTokenInvalid
	}
	session, err := s.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, usecaseErrors.ErrSessionNotFound
	}
	if !session.IsValid() || session.UserID != userID {
		return nil, usecaseErrors.ErrSessionExpired
	}
	_ = s.sessionRepo.UpdateLastUsed(ctx, session.ID)

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, usecaseErrors.ErrUserNotActive
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.GetAccessExpiry().Seconds()),
		SessionID:   session.ID.String(),
	}, nil
}

// ValidateAccessToken validates a bearer token and loads its user
func (s *Service) ValidateAccessToken(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, entities.ErrUnauthorized
	}
	return user, nil
}

// Me returns the account for an authenticated user id
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// Logout revokes the session behind a refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	tokenHash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return usecaseErrors.ErrTokenInvalid
	}
	session, err := s.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		return usecaseErrors.ErrSessionNotFound
	}
	return s.sessionRepo.Revoke(ctx, session.ID)
}

// LogoutAll revokes every session of a user
func (s *Service) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.sessionRepo.RevokeAllByUserID(ctx, userID)
}

// issueTokens creates the JWT pair and persists the refresh session.
// Only the SHA-256 hash of the refresh token is stored.
func (s *Service) issueTokens(ctx context.Context, user *entities.User, ip, userAgent string) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	tokenHash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session := entities.NewSession(user.ID, tokenHash, time.Now().Add(s.jwtManager.GetRefreshExpiry()))
	if ip != "" || userAgent != "" {
		session.WithClientInfo(ip, userAgent)
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
		SessionID:    session.ID.String(),
	}, nil
}
