package repository

import (
	"github.com/snishiyama/networking-crm/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users, newest first
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete deletes a user
	Delete(id uint64) error
}

// MemberFilter holds filtering options for listing members
type MemberFilter struct {
	Search         string
	MembershipType *models.MembershipType
	Page           int
	PageSize       int
}

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create creates a new member
	Create(member *models.Member) error

	// FindByID finds a member by ID
	FindByID(id uint64) (*models.Member, error)

	// List retrieves members with filtering and pagination
	List(filter MemberFilter) ([]models.Member, int64, error)

	// Update updates a member
	Update(member *models.Member) error

	// Delete deletes a member and all dependent rows
	Delete(id uint64) error

	// ListAttendanceHistory returns a member's attendance with meeting detail,
	// newest meeting first
	ListAttendanceHistory(memberID uint64) ([]models.Attendance, error)

	// ListGroupHistory returns a member's group memberships with group detail
	ListGroupHistory(memberID uint64) ([]models.GroupMember, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	// Create creates a new group
	Create(group *models.Group) error

	// FindByID finds a group by ID
	FindByID(id uint64) (*models.Group, error)

	// List returns all groups with leader and membership detail
	List() ([]models.Group, error)

	// Update updates a group
	Update(group *models.Group) error

	// Delete deletes a group and all related data
	Delete(id uint64) error

	// AddMember adds a membership row
	AddMember(membership *models.GroupMember) error

	// RemoveMember removes the membership row for (groupID, memberID)
	RemoveMember(groupID, memberID uint64) error

	// FindMembership finds the membership row for (groupID, memberID)
	FindMembership(groupID, memberID uint64) (*models.GroupMember, error)

	// FindMembershipByID finds a membership row with member detail
	FindMembershipByID(id uint64) (*models.GroupMember, error)

	// ListMemberships lists all memberships of a group with member detail
	ListMemberships(groupID uint64) ([]models.GroupMember, error)
}

// MeetingFilter holds filtering options for listing meetings
type MeetingFilter struct {
	GroupID      *uint64
	UpcomingOnly bool
}

// MeetingRepository defines the interface for meeting and attendance data access
type MeetingRepository interface {
	// CreateWithAttendance creates a meeting and one attendance row per
	// member ID within a single transaction
	CreateWithAttendance(meeting *models.Meeting, memberIDs []uint64) error

	// FindByID finds a meeting by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Meeting, error)

	// List retrieves meetings with filtering, newest first
	List(filter MeetingFilter) ([]models.Meeting, error)

	// Update updates a meeting
	Update(meeting *models.Meeting) error

	// Delete deletes a meeting and its attendance rows
	Delete(id uint64) error

	// FindAttendance finds the attendance row for (meetingID, memberID)
	FindAttendance(meetingID, memberID uint64) (*models.Attendance, error)

	// UpdateAttendance saves an attendance row
	UpdateAttendance(attendance *models.Attendance) error

	// ListAttendance lists a meeting's attendance with member detail
	ListAttendance(meetingID uint64) ([]models.Attendance, error)
}

// NoteRepository defines the interface for member note data access
type NoteRepository interface {
	// Create creates a note
	Create(note *models.MemberNote) error

	// FindByID finds a note by ID
	FindByID(id uint64) (*models.MemberNote, error)

	// ListByMember lists a member's notes with author detail, newest first
	ListByMember(memberID uint64) ([]models.MemberNote, error)

	// Delete deletes a note
	Delete(id uint64) error
}
