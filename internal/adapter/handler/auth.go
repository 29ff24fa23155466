package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/classpulse/backend/errors"
	authDTO "github.com/classpulse/backend/internal/adapter/dto/auth"
	"github.com/classpulse/backend/internal/adapter/presenter"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/infrastructure/http/middleware"
	"github.com/classpulse/backend/internal/usecase/auth"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// Auth handles authentication HTTP requests
type Auth struct {
	authService *auth.Service
	logger      *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(authService *auth.Service, logger *zap.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a credentials-based account
// POST /v1/auth/register
func (h *Auth) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req authDTO.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	resp, err := h.authService.Register(ctx, req.Email, req.Name, req.Password, entities.UserRole(req.Role))
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrEmailAlreadyUsed) || stdErrors.Is(err, entities.ErrUserAlreadyExists) {
			return HandleError(h.logger, c, errors.ErrUserAlreadyExists(req.Email))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToTokenResponse(resp))
}

// Login authenticates with email and password
// POST /v1/auth/login
func (h *Auth) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req authDTO.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	resp, err := h.authService.Login(ctx, req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToTokenResponse(resp))
}

// GoogleLogin redirects to the Google OAuth consent screen
// GET /v1/auth/google/login
func (h *Auth) GoogleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	url, _, err := h.authService.GoogleAuthURL(ctx)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the OAuth flow
// GET /v1/auth/google/callback
func (h *Auth) GoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing code or state parameter"))
	}

	resp, err := h.authService.HandleGoogleCallback(ctx, code, state, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToTokenResponse(resp))
}

// Refresh exchanges a refresh token for a new access token
// POST /v1/auth/refresh
func (h *Auth) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req authDTO.RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	resp, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToTokenResponse(resp))
}

// Logout revokes the session behind a refresh token
// POST /v1/auth/logout
func (h *Auth) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var req authDTO.LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.authService.Logout(ctx, req.RefreshToken); err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, map[string]bool{"logged_out": true})
}

// LogoutAll revokes every session of the authenticated user
// POST /v1/auth/logout-all
func (h *Auth) LogoutAll(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	if err := h.authService.LogoutAll(ctx, user.ID); err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, map[string]bool{"logged_out": true})
}

// Me returns the authenticated account
// GET /v1/auth/me
func (h *Auth) Me(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	account, err := h.authService.Me(ctx, user.ID)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToUserResponse(account))
}
