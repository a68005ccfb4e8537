package repository

import (
	"github.com/snishiyama/networking-crm/internal/models"
	"gorm.io/gorm"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a note
func (r *GormNoteRepository) Create(note *models.MemberNote) error {
	return r.db.Create(note).Error
}

// FindByID finds a note by ID with author detail
func (r *GormNoteRepository) FindByID(id uint64) (*models.MemberNote, error) {
	var note models.MemberNote
	if err := r.db.Preload("User").First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByMember lists a member's notes with author detail, newest first
func (r *GormNoteRepository) ListByMember(memberID uint64) ([]models.MemberNote, error) {
	var notes []models.MemberNote
	if err := r.db.Preload("User").
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Delete deletes a note
func (r *GormNoteRepository) Delete(id uint64) error {
	return r.db.Delete(&models.MemberNote{}, id).Error
}
