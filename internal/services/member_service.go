package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMemberFieldsMissing   = errors.New("first name, last name, and email are required")
	ErrInvalidMembershipType = errors.New("invalid membership type")
)

// MemberService provides business logic for CRM contact records.
// Member CRUD is open to every authenticated user; only group membership
// mutations are ownership-gated.
type MemberService struct {
	memberRepo repository.MemberRepository
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo repository.MemberRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
	}
}

// CreateMemberInput represents parameters to create a new member.
type CreateMemberInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Company        string
	Category       string
	MembershipType models.MembershipType
	Notes          string
}

// CreateMember creates a member. MembershipType defaults to PENDING.
func (s *MemberService) CreateMember(input CreateMemberInput) (*models.Member, error) {
	if strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" ||
		strings.TrimSpace(input.Email) == "" {
		return nil, ErrMemberFieldsMissing
	}

	membershipType := input.MembershipType
	if membershipType == "" {
		membershipType = models.MembershipPending
	}
	if !models.ValidMembershipType(membershipType) {
		return nil, ErrInvalidMembershipType
	}

	member := &models.Member{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Company:        input.Company,
		Category:       input.Category,
		MembershipType: membershipType,
		Notes:          input.Notes,
	}

	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// GetMember retrieves a member by ID.
func (s *MemberService) GetMember(memberID uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

// ListMembers returns members matching the filter with the total count.
func (s *MemberService) ListMembers(filter repository.MemberFilter) ([]models.Member, int64, error) {
	if filter.MembershipType != nil && !models.ValidMembershipType(*filter.MembershipType) {
		return nil, 0, ErrInvalidMembershipType
	}

	members, total, err := s.memberRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

// UpdateMemberInput holds the patchable member fields. Nil means unchanged.
type UpdateMemberInput struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Company        *string
	Category       *string
	MembershipType *models.MembershipType
	Notes          *string
}

// UpdateMember patches a member's fields. Changing a member's category does
// not retroactively re-validate existing group memberships; the exclusivity
// rule is enforced when memberships are created.
func (s *MemberService) UpdateMember(memberID uint64, input UpdateMemberInput) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if input.FirstName != nil {
		member.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Company != nil {
		member.Company = *input.Company
	}
	if input.Category != nil {
		member.Category = *input.Category
	}
	if input.MembershipType != nil {
		if !models.ValidMembershipType(*input.MembershipType) {
			return nil, ErrInvalidMembershipType
		}
		member.MembershipType = *input.MembershipType
	}
	if input.Notes != nil {
		member.Notes = *input.Notes
	}

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

// DeleteMember removes a member and all dependent rows.
func (s *MemberService) DeleteMember(memberID uint64) error {
	if _, err := s.memberRepo.FindByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.memberRepo.Delete(memberID); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return nil
}

// GetHistory returns a member's attendance history and group memberships.
func (s *MemberService) GetHistory(memberID uint64) ([]models.Attendance, []models.GroupMember, error) {
	if _, err := s.memberRepo.FindByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, fmt.Errorf("failed to find member: %w", err)
	}

	attendance, err := s.memberRepo.ListAttendanceHistory(memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load attendance history: %w", err)
	}

	groups, err := s.memberRepo.ListGroupHistory(memberID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load group history: %w", err)
	}

	return attendance, groups, nil
}
