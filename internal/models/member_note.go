package models

import "time"

// MemberNote is an append-only log entry on a member, written by a user.
// Deletable only by its author or a super admin.
type MemberNote struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	MemberID  uint64    `gorm:"not null" json:"member_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Note      string    `gorm:"type:text;not null" json:"note"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
