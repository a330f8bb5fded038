package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-side record of a Supabase auth user.
// ID equals the auth user id (JWT sub).
type Profile struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string      `gorm:"size:255;index" json:"email"`
	Name      string      `gorm:"size:255" json:"name"`
	Role      ProfileRole `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time   `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
