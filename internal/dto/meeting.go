package dto

import (
	"time"

	"github.com/snishiyama/networking-crm/internal/models"
)

// AttendanceDTO represents one attendance record with member detail
type AttendanceDTO struct {
	ID          uint64                  `json:"id"`
	MeetingID   uint64                  `json:"meeting_id"`
	MemberID    uint64                  `json:"member_id"`
	Status      models.AttendanceStatus `json:"status"`
	CheckedInAt *time.Time              `json:"checked_in_at"`
	Member      MemberDTO               `json:"member"`
}

// MeetingDTO represents a meeting with group and attendance detail
type MeetingDTO struct {
	ID         uint64          `json:"id"`
	GroupID    uint64          `json:"group_id"`
	Group      GroupDTO        `json:"group"`
	Title      string          `json:"title"`
	Date       time.Time       `json:"date"`
	Location   string          `json:"location,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Attendance []AttendanceDTO `json:"attendance"`
}

// ToAttendanceDTO converts an attendance record to DTO
func ToAttendanceDTO(attendance models.Attendance) AttendanceDTO {
	return AttendanceDTO{
		ID:          attendance.ID,
		MeetingID:   attendance.MeetingID,
		MemberID:    attendance.MemberID,
		Status:      attendance.Status,
		CheckedInAt: attendance.CheckedInAt,
		Member:      ToMemberDTO(attendance.Member),
	}
}

// ToAttendanceDTOs converts an attendance slice to DTOs
func ToAttendanceDTOs(records []models.Attendance) []AttendanceDTO {
	dtos := make([]AttendanceDTO, len(records))
	for i, record := range records {
		dtos[i] = ToAttendanceDTO(record)
	}
	return dtos
}

// ToMeetingDTO converts a meeting to DTO
func ToMeetingDTO(meeting models.Meeting) MeetingDTO {
	return MeetingDTO{
		ID:         meeting.ID,
		GroupID:    meeting.GroupID,
		Group:      ToGroupDTO(meeting.Group),
		Title:      meeting.Title,
		Date:       meeting.Date,
		Location:   meeting.Location,
		Notes:      meeting.Notes,
		CreatedAt:  meeting.CreatedAt,
		Attendance: ToAttendanceDTOs(meeting.Attendance),
	}
}

// ToMeetingDTOs converts a meeting slice to DTOs
func ToMeetingDTOs(meetings []models.Meeting) []MeetingDTO {
	dtos := make([]MeetingDTO, len(meetings))
	for i, meeting := range meetings {
		dtos[i] = ToMeetingDTO(meeting)
	}
	return dtos
}
