package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/snishiyama/networking-crm/internal/authz"
	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNoteEmpty    = errors.New("note content is required")
)

// NoteService manages the append-only note log on members.
type NoteService struct {
	noteRepo   repository.NoteRepository
	memberRepo repository.MemberRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo repository.NoteRepository, memberRepo repository.MemberRepository) *NoteService {
	return &NoteService{
		noteRepo:   noteRepo,
		memberRepo: memberRepo,
	}
}

// ListNotes returns a member's notes with author detail.
func (s *NoteService) ListNotes(memberID uint64) ([]models.MemberNote, error) {
	notes, err := s.noteRepo.ListByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// AddNote appends a note to a member's log, authored by the given user.
func (s *NoteService) AddNote(memberID, userID uint64, note string) (*models.MemberNote, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, ErrNoteEmpty
	}

	if _, err := s.memberRepo.FindByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	record := &models.MemberNote{
		MemberID: memberID,
		UserID:   userID,
		Note:     note,
	}

	if err := s.noteRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	created, err := s.noteRepo.FindByID(record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created note: %w", err)
	}

	return created, nil
}

// DeleteNote removes a note. Only the note's author or a super admin may
// delete it; the leadership-based guard does not apply to notes.
func (s *NoteService) DeleteNote(noteID uint64, actor authz.Actor) error {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to find note: %w", err)
	}

	if note.UserID != actor.ID && actor.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}

	if err := s.noteRepo.Delete(noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
