package dto

import (
	"time"

	"github.com/snishiyama/networking-crm/internal/models"
)

// LeaderDTO is the compact user reference attached to groups and meetings
type LeaderDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToLeaderDTO converts a user to the compact leader reference
func ToLeaderDTO(user models.User) LeaderDTO {
	return LeaderDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// GroupDTO represents a group in API responses
type GroupDTO struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	LeaderID         uint64    `json:"leader_id"`
	Leader           LeaderDTO `json:"leader"`
	MeetingFrequency string    `json:"meeting_frequency,omitempty"`
	Location         string    `json:"location,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MembershipDTO represents one group membership with member detail
type MembershipDTO struct {
	ID       uint64    `json:"id"`
	GroupID  uint64    `json:"group_id"`
	MemberID uint64    `json:"member_id"`
	JoinedAt time.Time `json:"joined_at"`
	Member   MemberDTO `json:"member"`
}

// GroupDetailDTO represents a group together with its memberships
type GroupDetailDTO struct {
	GroupDTO
	Members []MembershipDTO `json:"members"`
}

// ToGroupDTO converts a group to DTO
func ToGroupDTO(group models.Group) GroupDTO {
	return GroupDTO{
		ID:               group.ID,
		Name:             group.Name,
		Description:      group.Description,
		LeaderID:         group.LeaderID,
		Leader:           ToLeaderDTO(group.Leader),
		MeetingFrequency: group.MeetingFrequency,
		Location:         group.Location,
		CreatedAt:        group.CreatedAt,
		UpdatedAt:        group.UpdatedAt,
	}
}

// ToMembershipDTO converts a membership to DTO
func ToMembershipDTO(membership models.GroupMember) MembershipDTO {
	return MembershipDTO{
		ID:       membership.ID,
		GroupID:  membership.GroupID,
		MemberID: membership.MemberID,
		JoinedAt: membership.JoinedAt,
		Member:   ToMemberDTO(membership.Member),
	}
}

// ToMembershipDTOs converts a membership slice to DTOs
func ToMembershipDTOs(memberships []models.GroupMember) []MembershipDTO {
	dtos := make([]MembershipDTO, len(memberships))
	for i, membership := range memberships {
		dtos[i] = ToMembershipDTO(membership)
	}
	return dtos
}

// ToGroupDetailDTO converts a group and its memberships to the detail DTO
func ToGroupDetailDTO(group models.Group, memberships []models.GroupMember) GroupDetailDTO {
	return GroupDetailDTO{
		GroupDTO: ToGroupDTO(group),
		Members:  ToMembershipDTOs(memberships),
	}
}

// ToGroupDetailDTOs converts groups with preloaded memberships to detail DTOs
func ToGroupDetailDTOs(groups []models.Group) []GroupDetailDTO {
	dtos := make([]GroupDetailDTO, len(groups))
	for i, group := range groups {
		dtos[i] = ToGroupDetailDTO(group, group.Members)
	}
	return dtos
}
