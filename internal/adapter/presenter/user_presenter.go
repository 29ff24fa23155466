package presenter

import (
	authDTO "github.com/classpulse/backend/internal/adapter/dto/auth"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/usecase/auth"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *authDTO.UserResponse {
	if u == nil {
		return nil
	}
	return &authDTO.UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		AvatarURL:   u.AvatarURL,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToTokenResponse converts a usecase AuthResponse to the token DTO
func ToTokenResponse(resp *auth.AuthResponse) *authDTO.TokenResponse {
	if resp == nil {
		return nil
	}
	return &authDTO.TokenResponse{
		User:         ToUserResponse(resp.User),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		SessionID:    resp.SessionID,
	}
}
