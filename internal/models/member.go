package models

import "time"

type MembershipType string

const (
	MembershipActive   MembershipType = "ACTIVE"
	MembershipInactive MembershipType = "INACTIVE"
	MembershipPending  MembershipType = "PENDING"
	MembershipExpired  MembershipType = "EXPIRED"
)

// ValidMembershipType reports whether t is one of the defined membership types.
func ValidMembershipType(t MembershipType) bool {
	switch t {
	case MembershipActive, MembershipInactive, MembershipPending, MembershipExpired:
		return true
	}
	return false
}

// Member is a CRM contact. Category is empty when the member has no business
// category; an empty category is exempt from the group exclusivity rule.
type Member struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	FirstName      string         `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName       string         `gorm:"type:varchar(255);not null" json:"last_name"`
	Email          string         `gorm:"type:varchar(255);not null" json:"email"`
	Phone          string         `gorm:"type:varchar(50)" json:"phone"`
	Company        string         `gorm:"type:varchar(255)" json:"company"`
	Category       string         `gorm:"type:varchar(255)" json:"category"`
	MembershipType MembershipType `gorm:"type:varchar(20);not null;default:'PENDING'" json:"membership_type"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	// Relations
	GroupMemberships []GroupMember `gorm:"foreignKey:MemberID" json:"-"`
	Attendance       []Attendance  `gorm:"foreignKey:MemberID" json:"-"`
	MemberNotes      []MemberNote  `gorm:"foreignKey:MemberID" json:"-"`
}

// DisplayName is the "First Last" form used in conflict messages.
func (m Member) DisplayName() string {
	return m.FirstName + " " + m.LastName
}
