package models

import "time"

// GroupMember links a Member to a Group. Within one group, non-empty member
// categories must be unique under case-insensitive comparison; the group
// service enforces this before every insert.
type GroupMember struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	GroupID  uint64    `gorm:"not null;uniqueIndex:idx_group_members_group_member" json:"group_id"`
	MemberID uint64    `gorm:"not null;uniqueIndex:idx_group_members_group_member" json:"member_id"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	Group  Group  `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
