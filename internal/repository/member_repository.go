package repository

import (
	"github.com/snishiyama/networking-crm/internal/database"
	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/utils"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindByID finds a member by ID
func (r *GormMemberRepository) FindByID(id uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List retrieves members with filtering and pagination
func (r *GormMemberRepository) List(filter MemberFilter) ([]models.Member, int64, error) {
	var members []models.Member

	query := r.db.Model(&models.Member{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.MembershipType != nil {
		query = query.Where("membership_type = ?", *filter.MembershipType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// Update updates a member
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// Delete deletes a member and all dependent rows in a transaction
func (r *GormMemberRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}

		if err := tx.Where("member_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}

		if err := tx.Where("member_id = ?", id).Delete(&models.MemberNote{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Member{}, id).Error
	})
}

// ListAttendanceHistory returns a member's attendance with meeting detail
func (r *GormMemberRepository) ListAttendanceHistory(memberID uint64) ([]models.Attendance, error) {
	var history []models.Attendance
	if err := r.db.Preload("Meeting").
		Joins("JOIN meetings ON meetings.id = attendance.meeting_id").
		Where("attendance.member_id = ?", memberID).
		Order("meetings.date DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// ListGroupHistory returns a member's group memberships with group detail
func (r *GormMemberRepository) ListGroupHistory(memberID uint64) ([]models.GroupMember, error) {
	var memberships []models.GroupMember
	if err := r.db.Preload("Group").
		Where("member_id = ?", memberID).
		Order("joined_at DESC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
