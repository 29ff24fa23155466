package auth

import "time"

// UserResponse is the public view of an account
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TokenResponse is the authentication result
type TokenResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	ExpiresIn    int64         `json:"expires_in"`
	SessionID    string        `json:"session_id,omitempty"`
}

// AuthURLResponse carries the OAuth consent URL
type AuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
