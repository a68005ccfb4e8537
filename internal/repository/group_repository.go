package repository

import (
	"github.com/snishiyama/networking-crm/internal/models"
	"gorm.io/gorm"
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// Create creates a new group
func (r *GormGroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.db.Preload("Leader").First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns all groups with leader and membership detail, newest first
func (r *GormGroupRepository) List() ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Preload("Leader").
		Preload("Members").
		Preload("Members.Member").
		Order("created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Update updates a group
func (r *GormGroupRepository) Update(group *models.Group) error {
	return r.db.Save(group).Error
}

// Delete deletes a group and all related data in a transaction.
// Meetings cascade to their attendance rows.
func (r *GormGroupRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var meetingIDs []uint64
		if err := tx.Model(&models.Meeting{}).
			Where("group_id = ?", id).
			Pluck("id", &meetingIDs).Error; err != nil {
			return err
		}

		if len(meetingIDs) > 0 {
			if err := tx.Where("meeting_id IN ?", meetingIDs).Delete(&models.Attendance{}).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id = ?", id).Delete(&models.Meeting{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Group{}, id).Error
	})
}

// AddMember adds a membership row
func (r *GormGroupRepository) AddMember(membership *models.GroupMember) error {
	return r.db.Create(membership).Error
}

// RemoveMember removes the membership row for (groupID, memberID)
func (r *GormGroupRepository) RemoveMember(groupID, memberID uint64) error {
	return r.db.Where("group_id = ? AND member_id = ?", groupID, memberID).
		Delete(&models.GroupMember{}).Error
}

// FindMembership finds the membership row for (groupID, memberID)
func (r *GormGroupRepository) FindMembership(groupID, memberID uint64) (*models.GroupMember, error) {
	var membership models.GroupMember
	if err := r.db.Where("group_id = ? AND member_id = ?", groupID, memberID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// FindMembershipByID finds a membership row with member detail
func (r *GormGroupRepository) FindMembershipByID(id uint64) (*models.GroupMember, error) {
	var membership models.GroupMember
	if err := r.db.Preload("Member").First(&membership, id).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListMemberships lists all memberships of a group with member detail
func (r *GormGroupRepository) ListMemberships(groupID uint64) ([]models.GroupMember, error) {
	var memberships []models.GroupMember
	if err := r.db.Preload("Member").
		Where("group_id = ?", groupID).
		Order("joined_at DESC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
