package models

import "time"

type AttendanceStatus string

const (
	StatusAttended  AttendanceStatus = "ATTENDED"
	StatusNoShow    AttendanceStatus = "NO_SHOW"
	StatusCancelled AttendanceStatus = "CANCELLED"
	StatusExcused   AttendanceStatus = "EXCUSED"
)

// ValidAttendanceStatus reports whether s is one of the defined statuses.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case StatusAttended, StatusNoShow, StatusCancelled, StatusExcused:
		return true
	}
	return false
}

// Attendance tracks one member's status for one meeting. CheckedInAt is set
// when the status transitions to ATTENDED and cleared on any other status.
type Attendance struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	MeetingID   uint64           `gorm:"not null;uniqueIndex:idx_attendance_meeting_member" json:"meeting_id"`
	MemberID    uint64           `gorm:"not null;uniqueIndex:idx_attendance_meeting_member" json:"member_id"`
	Status      AttendanceStatus `gorm:"type:varchar(20);not null;default:'ATTENDED'" json:"status"`
	CheckedInAt *time.Time       `json:"checked_in_at"`

	// Relations
	Meeting Meeting `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	Member  Member  `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Attendance) TableName() string {
	return "attendance"
}
