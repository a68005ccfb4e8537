package models

import "time"

type Meeting struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	GroupID   uint64    `gorm:"not null" json:"group_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Date      time.Time `gorm:"not null" json:"date"`
	Location  string    `gorm:"type:varchar(255)" json:"location"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Group      Group        `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Attendance []Attendance `gorm:"foreignKey:MeetingID" json:"attendance,omitempty"`
}
