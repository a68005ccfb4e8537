package dto

import (
	"time"

	"github.com/snishiyama/networking-crm/internal/models"
)

// MemberDTO represents a CRM contact in API responses
type MemberDTO struct {
	ID             uint64                `json:"id"`
	FirstName      string                `json:"first_name"`
	LastName       string                `json:"last_name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone,omitempty"`
	Company        string                `json:"company,omitempty"`
	Category       string                `json:"category,omitempty"`
	MembershipType models.MembershipType `json:"membership_type"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ToMemberDTO converts a member to DTO
func ToMemberDTO(member models.Member) MemberDTO {
	return MemberDTO{
		ID:             member.ID,
		FirstName:      member.FirstName,
		LastName:       member.LastName,
		Email:          member.Email,
		Phone:          member.Phone,
		Company:        member.Company,
		Category:       member.Category,
		MembershipType: member.MembershipType,
		Notes:          member.Notes,
		CreatedAt:      member.CreatedAt,
		UpdatedAt:      member.UpdatedAt,
	}
}

// ToMemberDTOs converts a member slice to DTOs
func ToMemberDTOs(members []models.Member) []MemberDTO {
	dtos := make([]MemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToMemberDTO(member)
	}
	return dtos
}

// MeetingRefDTO is the compact meeting reference used in history entries
type MeetingRefDTO struct {
	ID       uint64    `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Location string    `json:"location,omitempty"`
}

// AttendanceHistoryDTO is one attendance entry of a member's history
type AttendanceHistoryDTO struct {
	ID          uint64                  `json:"id"`
	Status      models.AttendanceStatus `json:"status"`
	CheckedInAt *time.Time              `json:"checked_in_at"`
	Meeting     MeetingRefDTO           `json:"meeting"`
}

// GroupHistoryDTO is one group membership entry of a member's history
type GroupHistoryDTO struct {
	ID        uint64    `json:"id"`
	GroupID   uint64    `json:"group_id"`
	GroupName string    `json:"group_name"`
	JoinedAt  time.Time `json:"joined_at"`
}

// MemberHistoryDTO aggregates a member's attendance and group history
type MemberHistoryDTO struct {
	Attendance []AttendanceHistoryDTO `json:"attendance"`
	Groups     []GroupHistoryDTO      `json:"groups"`
}

// ToMemberHistoryDTO converts history rows to the aggregated DTO
func ToMemberHistoryDTO(attendance []models.Attendance, groups []models.GroupMember) MemberHistoryDTO {
	history := MemberHistoryDTO{
		Attendance: make([]AttendanceHistoryDTO, len(attendance)),
		Groups:     make([]GroupHistoryDTO, len(groups)),
	}

	for i, record := range attendance {
		history.Attendance[i] = AttendanceHistoryDTO{
			ID:          record.ID,
			Status:      record.Status,
			CheckedInAt: record.CheckedInAt,
			Meeting: MeetingRefDTO{
				ID:       record.Meeting.ID,
				Title:    record.Meeting.Title,
				Date:     record.Meeting.Date,
				Location: record.Meeting.Location,
			},
		}
	}

	for i, membership := range groups {
		history.Groups[i] = GroupHistoryDTO{
			ID:        membership.ID,
			GroupID:   membership.GroupID,
			GroupName: membership.Group.Name,
			JoinedAt:  membership.JoinedAt,
		}
	}

	return history
}
