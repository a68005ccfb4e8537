package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/snishiyama/networking-crm/internal/authz"
	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMeetingNotFound        = errors.New("meeting not found")
	ErrMeetingTitleEmpty      = errors.New("meeting title cannot be empty")
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrInvalidAttendanceState = errors.New("invalid attendance status")
)

// MeetingService provides business logic for meetings and attendance.
// A meeting's mutation rights derive from its group's leader.
type MeetingService struct {
	meetingRepo repository.MeetingRepository
	groupRepo   repository.GroupRepository
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(meetingRepo repository.MeetingRepository, groupRepo repository.GroupRepository) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		groupRepo:   groupRepo,
	}
}

// CreateMeetingInput represents parameters to create a new meeting.
type CreateMeetingInput struct {
	GroupID  uint64
	Title    string
	Date     time.Time
	Location string
	Notes    string
}

// CreateMeeting creates a meeting and seeds an attendance row for every
// current group member. The initial status is ATTENDED with no check-in
// time; it is updated when attendance is actually marked.
func (s *MeetingService) CreateMeeting(input CreateMeetingInput, actor authz.Actor) (*models.Meeting, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrMeetingTitleEmpty
	}

	group, err := s.groupRepo.FindByID(input.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	if !actor.CanMutateOwned(group.LeaderID) {
		return nil, ErrForbidden
	}

	memberships, err := s.groupRepo.ListMemberships(input.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	memberIDs := make([]uint64, len(memberships))
	for i, m := range memberships {
		memberIDs[i] = m.MemberID
	}

	meeting := &models.Meeting{
		GroupID:  input.GroupID,
		Title:    input.Title,
		Date:     input.Date,
		Location: input.Location,
		Notes:    input.Notes,
	}

	if err := s.meetingRepo.CreateWithAttendance(meeting, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	created, err := s.meetingRepo.FindByID(meeting.ID,
		"Group", "Group.Leader", "Attendance", "Attendance.Member")
	if err != nil {
		return nil, fmt.Errorf("failed to load created meeting: %w", err)
	}

	return created, nil
}

// ListMeetings returns meetings matching the filter. Reads are not gated.
func (s *MeetingService) ListMeetings(filter repository.MeetingFilter) ([]models.Meeting, error) {
	meetings, err := s.meetingRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// GetMeeting returns a meeting with group, leader and attendance detail.
func (s *MeetingService) GetMeeting(meetingID uint64) (*models.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(meetingID,
		"Group", "Group.Leader", "Attendance", "Attendance.Member")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return meeting, nil
}

// UpdateMeetingInput holds the patchable meeting fields. Nil means unchanged.
type UpdateMeetingInput struct {
	Title    *string
	Date     *time.Time
	Location *string
	Notes    *string
}

// UpdateMeeting updates a meeting's fields.
func (s *MeetingService) UpdateMeeting(meetingID uint64, input UpdateMeetingInput, actor authz.Actor) (*models.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(meetingID, "Group")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}

	if !actor.CanMutateOwned(meeting.Group.LeaderID) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrMeetingTitleEmpty
		}
		meeting.Title = *input.Title
	}
	if input.Date != nil {
		meeting.Date = *input.Date
	}
	if input.Location != nil {
		meeting.Location = *input.Location
	}
	if input.Notes != nil {
		meeting.Notes = *input.Notes
	}

	if err := s.meetingRepo.Update(meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	updated, err := s.meetingRepo.FindByID(meetingID,
		"Group", "Group.Leader", "Attendance", "Attendance.Member")
	if err != nil {
		return nil, fmt.Errorf("failed to load updated meeting: %w", err)
	}

	return updated, nil
}

// DeleteMeeting removes a meeting and its attendance rows.
func (s *MeetingService) DeleteMeeting(meetingID uint64, actor authz.Actor) error {
	meeting, err := s.meetingRepo.FindByID(meetingID, "Group")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetingNotFound
		}
		return fmt.Errorf("failed to find meeting: %w", err)
	}

	if !actor.CanMutateOwned(meeting.Group.LeaderID) {
		return ErrForbidden
	}

	if err := s.meetingRepo.Delete(meetingID); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	return nil
}

// UpdateAttendance sets one member's status for a meeting. CheckedInAt is
// stamped on ATTENDED and cleared on every other status.
func (s *MeetingService) UpdateAttendance(meetingID, memberID uint64, status models.AttendanceStatus, actor authz.Actor) (*models.Attendance, error) {
	if !models.ValidAttendanceStatus(status) {
		return nil, ErrInvalidAttendanceState
	}

	meeting, err := s.meetingRepo.FindByID(meetingID, "Group")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}

	if !actor.CanMutateOwned(meeting.Group.LeaderID) {
		return nil, ErrForbidden
	}

	attendance, err := s.meetingRepo.FindAttendance(meetingID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}

	attendance.Status = status
	if status == models.StatusAttended {
		now := time.Now()
		attendance.CheckedInAt = &now
	} else {
		attendance.CheckedInAt = nil
	}

	if err := s.meetingRepo.UpdateAttendance(attendance); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}

	return attendance, nil
}

// AttendanceUpdate is one entry of a bulk attendance update.
type AttendanceUpdate struct {
	MemberID uint64                  `json:"memberId" binding:"required"`
	Status   models.AttendanceStatus `json:"status" binding:"required"`
}

// BulkUpdateAttendance applies several status updates to one meeting.
// Entries without a matching attendance row are skipped.
func (s *MeetingService) BulkUpdateAttendance(meetingID uint64, updates []AttendanceUpdate, actor authz.Actor) ([]models.Attendance, error) {
	meeting, err := s.meetingRepo.FindByID(meetingID, "Group")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}

	if !actor.CanMutateOwned(meeting.Group.LeaderID) {
		return nil, ErrForbidden
	}

	for _, update := range updates {
		if !models.ValidAttendanceStatus(update.Status) {
			return nil, ErrInvalidAttendanceState
		}
	}

	for _, update := range updates {
		attendance, err := s.meetingRepo.FindAttendance(meetingID, update.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to find attendance: %w", err)
		}

		attendance.Status = update.Status
		if update.Status == models.StatusAttended {
			now := time.Now()
			attendance.CheckedInAt = &now
		} else {
			attendance.CheckedInAt = nil
		}

		if err := s.meetingRepo.UpdateAttendance(attendance); err != nil {
			return nil, fmt.Errorf("failed to update attendance: %w", err)
		}
	}

	records, err := s.meetingRepo.ListAttendance(meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return records, nil
}
