package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Course represents a course owned by a professor
type Course struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Code        string         `gorm:"type:varchar(50);not null;index" json:"code"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Semester    *string        `gorm:"type:varchar(50)" json:"semester,omitempty"`
	IsArchived  bool           `gorm:"default:false" json:"is_archived"`
	Settings    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"settings"`
	CreatedAt   time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return "courses"
}

// IsOwnedBy checks if the course belongs to the given user
func (c *Course) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID == userID
}
