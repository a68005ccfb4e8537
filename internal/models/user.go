package models

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
)

// ValidRole reports whether r is one of the defined roles.
func ValidRole(r Role) bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'ADMIN'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Groups []Group      `gorm:"foreignKey:LeaderID" json:"-"`
	Notes  []MemberNote `gorm:"foreignKey:UserID" json:"-"`
}
