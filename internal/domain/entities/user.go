package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User represents an account in the system (professors, admins, and
// optionally students with portal access)
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email    string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Role     UserRole  `json:"role" gorm:"type:varchar(50);default:'professor';not null"`
	IsActive bool      `json:"is_active" gorm:"default:true;not null"`

	// Credentials / OAuth
	PasswordHash      *string `json:"-" gorm:"column:password_hash;type:text"`
	OAuthProvider     *string `json:"oauth_provider,omitempty" gorm:"column:oauth_provider;type:varchar(50);index:idx_oauth"`
	OAuthID           *string `json:"oauth_id,omitempty" gorm:"column:oauth_id;type:varchar(255);index:idx_oauth"`
	OAuthRefreshToken *string `json:"-" gorm:"column:oauth_refresh_token;type:text"`

	// Profile
	AvatarURL *string `json:"avatar_url,omitempty" gorm:"type:varchar(500)"`
	Timezone  string  `json:"timezone" gorm:"type:varchar(50);default:'UTC';not null"`
	Language  string  `json:"language" gorm:"type:varchar(10);default:'en';not null"`

	// Status
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty" gorm:"type:timestamp"`

	// Preferences (stored as JSONB in PostgreSQL)
	DashboardPreferences datatypes.JSON `json:"dashboard_preferences" gorm:"type:jsonb;default:'{}'"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleProfessor UserRole = "professor"
	RoleStudent   UserRole = "student"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleProfessor, RoleStudent:
		return true
	default:
		return false
	}
}

// CanManageCourses checks if the user may create and manage courses
func (u *User) CanManageCourses() bool {
	return u.Role == RoleAdmin || u.Role == RoleProfessor
}

// Touch updates the last active timestamp
func (u *User) Touch() {
	now := time.Now()
	u.LastActiveAt = &now
}
