package models

import "time"

// Group is a networking group owned by exactly one leader. The leader
// determines ADMIN-level edit rights for the group and everything under it.
type Group struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	LeaderID         uint64    `gorm:"not null" json:"leader_id"`
	MeetingFrequency string    `gorm:"type:varchar(100)" json:"meeting_frequency"`
	Location         string    `gorm:"type:varchar(255)" json:"location"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	Leader   User          `gorm:"foreignKey:LeaderID" json:"leader,omitempty"`
	Members  []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Meetings []Meeting     `gorm:"foreignKey:GroupID" json:"meetings,omitempty"`
}
