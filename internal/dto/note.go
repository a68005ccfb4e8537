package dto

import (
	"time"

	"github.com/snishiyama/networking-crm/internal/models"
)

// MemberNoteDTO represents a note with its author
type MemberNoteDTO struct {
	ID        uint64    `json:"id"`
	MemberID  uint64    `json:"member_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	User      LeaderDTO `json:"user"`
}

// ToMemberNoteDTO converts a note to DTO
func ToMemberNoteDTO(note models.MemberNote) MemberNoteDTO {
	return MemberNoteDTO{
		ID:        note.ID,
		MemberID:  note.MemberID,
		Note:      note.Note,
		CreatedAt: note.CreatedAt,
		User:      ToLeaderDTO(note.User),
	}
}

// ToMemberNoteDTOs converts a note slice to DTOs
func ToMemberNoteDTOs(notes []models.MemberNote) []MemberNoteDTO {
	dtos := make([]MemberNoteDTO, len(notes))
	for i, note := range notes {
		dtos[i] = ToMemberNoteDTO(note)
	}
	return dtos
}
