package repository

import (
	"time"

	"github.com/snishiyama/networking-crm/internal/models"
	"gorm.io/gorm"
)

// GormMeetingRepository is a GORM implementation of MeetingRepository
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &GormMeetingRepository{db: db}
}

// CreateWithAttendance creates a meeting and one attendance row per current
// group member within a single transaction.
func (r *GormMeetingRepository) CreateWithAttendance(meeting *models.Meeting, memberIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return err
		}

		if len(memberIDs) == 0 {
			return nil
		}

		records := make([]models.Attendance, len(memberIDs))
		for i, memberID := range memberIDs {
			records[i] = models.Attendance{
				MeetingID: meeting.ID,
				MemberID:  memberID,
				Status:    models.StatusAttended,
			}
		}

		return tx.Create(&records).Error
	})
}

// FindByID finds a meeting by ID with optional preloading
func (r *GormMeetingRepository) FindByID(id uint64, preload ...string) (*models.Meeting, error) {
	var meeting models.Meeting
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&meeting, id).Error; err != nil {
		return nil, err
	}

	return &meeting, nil
}

// List retrieves meetings with filtering, newest first
func (r *GormMeetingRepository) List(filter MeetingFilter) ([]models.Meeting, error) {
	var meetings []models.Meeting

	query := r.db.Model(&models.Meeting{})

	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}
	if filter.UpcomingOnly {
		query = query.Where("date >= ?", time.Now())
	}

	if err := query.
		Preload("Group").
		Preload("Group.Leader").
		Preload("Attendance").
		Preload("Attendance.Member").
		Order("date DESC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}

	return meetings, nil
}

// Update updates a meeting
func (r *GormMeetingRepository) Update(meeting *models.Meeting) error {
	return r.db.Save(meeting).Error
}

// Delete deletes a meeting and its attendance rows in a transaction
func (r *GormMeetingRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Meeting{}, id).Error
	})
}

// FindAttendance finds the attendance row for (meetingID, memberID)
func (r *GormMeetingRepository) FindAttendance(meetingID, memberID uint64) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := r.db.Where("meeting_id = ? AND member_id = ?", meetingID, memberID).
		First(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

// UpdateAttendance saves an attendance row
func (r *GormMeetingRepository) UpdateAttendance(attendance *models.Attendance) error {
	return r.db.Save(attendance).Error
}

// ListAttendance lists a meeting's attendance with member detail
func (r *GormMeetingRepository) ListAttendance(meetingID uint64) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := r.db.Preload("Member").
		Where("meeting_id = ?", meetingID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
