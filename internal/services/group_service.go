package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/snishiyama/networking-crm/internal/authz"
	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrForbidden        = errors.New("access denied")
	ErrGroupNotFound    = errors.New("group not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrGroupNameEmpty   = errors.New("group name cannot be empty")
	ErrInvalidLeader    = errors.New("invalid leader specified")
	ErrAlreadyMember    = errors.New("member is already in this group")
	ErrNotAMember       = errors.New("member is not in this group")
)

// CategoryConflictError reports the member blocking an addition under the
// category-exclusivity rule. Callers render a specific message from it, so
// it carries the conflicting member's identity rather than just a kind.
type CategoryConflictError struct {
	MemberID uint64
	Name     string
	Category string
}

func (e *CategoryConflictError) Error() string {
	return fmt.Sprintf("category conflict with %s (%s)", e.Name, e.Category)
}

// Message renders the human-readable explanation returned to API clients.
func (e *CategoryConflictError) Message() string {
	return fmt.Sprintf(
		"Cannot add member. %s is already in this group with the category %q. Only one member per category is allowed in a group.",
		e.Name, e.Category,
	)
}

// GroupService owns group CRUD and the category-exclusivity invariant over
// group memberships: a group holds at most one member per non-empty
// category, compared case-insensitively.
type GroupService struct {
	groupRepo  repository.GroupRepository
	memberRepo repository.MemberRepository
	userRepo   repository.UserRepository

	// mu guards locks; each group gets its own mutex so membership
	// mutations for one group are serialized without blocking others.
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, memberRepo repository.MemberRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		locks:      make(map[uint64]*sync.Mutex),
	}
}

// lockGroup serializes membership mutations per group. Two concurrent adds
// with the same category must not both pass the conflict scan.
func (s *GroupService) lockGroup(groupID uint64) func() {
	s.mu.Lock()
	lock, ok := s.locks[groupID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[groupID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// releaseLock drops a group's mutex once the group is gone, so the lock map
// does not accumulate entries for deleted groups. A stale acquisition racing
// the delete only reaches GroupNotFound.
func (s *GroupService) releaseLock(groupID uint64) {
	s.mu.Lock()
	delete(s.locks, groupID)
	s.mu.Unlock()
}

// CreateGroupInput represents parameters to create a new group.
type CreateGroupInput struct {
	Name             string
	Description      string
	MeetingFrequency string
	Location         string
	LeaderID         uint64
}

// CreateGroup creates a group. Admins always lead the groups they create;
// super admins may assign any existing user as leader.
func (s *GroupService) CreateGroup(input CreateGroupInput, actor authz.Actor) (*models.Group, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrGroupNameEmpty
	}

	leaderID := actor.ID
	if actor.Role == models.RoleSuperAdmin && input.LeaderID != 0 {
		if _, err := s.userRepo.FindByID(input.LeaderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidLeader
			}
			return nil, fmt.Errorf("failed to verify leader: %w", err)
		}
		leaderID = input.LeaderID
	}

	group := &models.Group{
		Name:             input.Name,
		Description:      input.Description,
		MeetingFrequency: input.MeetingFrequency,
		Location:         input.Location,
		LeaderID:         leaderID,
	}

	if err := s.groupRepo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	created, err := s.groupRepo.FindByID(group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created group: %w", err)
	}

	return created, nil
}

// ListGroups returns all groups with leaders and membership detail.
// Reads are not gated: every authenticated user may view every group.
func (s *GroupService) ListGroups() ([]models.Group, error) {
	groups, err := s.groupRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GetGroup returns a group and its memberships.
func (s *GroupService) GetGroup(groupID uint64) (*models.Group, []models.GroupMember, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, fmt.Errorf("failed to find group: %w", err)
	}

	memberships, err := s.groupRepo.ListMemberships(groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list group members: %w", err)
	}

	return group, memberships, nil
}

// UpdateGroupInput holds the patchable group fields. Nil means unchanged.
type UpdateGroupInput struct {
	Name             *string
	Description      *string
	MeetingFrequency *string
	Location         *string
	LeaderID         *uint64
}

// UpdateGroup updates a group. Only super admins may reassign the leader;
// the field is ignored for everyone else.
func (s *GroupService) UpdateGroup(groupID uint64, input UpdateGroupInput, actor authz.Actor) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	if !actor.CanMutateOwned(group.LeaderID) {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrGroupNameEmpty
		}
		group.Name = *input.Name
	}
	if input.Description != nil {
		group.Description = *input.Description
	}
	if input.MeetingFrequency != nil {
		group.MeetingFrequency = *input.MeetingFrequency
	}
	if input.Location != nil {
		group.Location = *input.Location
	}
	if input.LeaderID != nil && actor.Role == models.RoleSuperAdmin {
		if _, err := s.userRepo.FindByID(*input.LeaderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidLeader
			}
			return nil, fmt.Errorf("failed to verify leader: %w", err)
		}
		group.LeaderID = *input.LeaderID
	}

	if err := s.groupRepo.Update(group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	updated, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated group: %w", err)
	}

	return updated, nil
}

// DeleteGroup removes a group, its memberships, its meetings and their
// attendance.
func (s *GroupService) DeleteGroup(groupID uint64, actor authz.Actor) error {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to find group: %w", err)
	}

	if !actor.CanMutateOwned(group.LeaderID) {
		return ErrForbidden
	}

	if err := s.groupRepo.Delete(groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	s.releaseLock(groupID)

	return nil
}

// ListGroupMembers returns the memberships of a group with member detail.
func (s *GroupService) ListGroupMembers(groupID uint64) ([]models.GroupMember, error) {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	memberships, err := s.groupRepo.ListMemberships(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	return memberships, nil
}

// AddMember adds a member to a group after the authorization and
// category-exclusivity checks. The whole check-then-insert sequence runs
// under the group's lock so concurrent adds cannot both pass the scan.
func (s *GroupService) AddMember(groupID, memberID uint64, actor authz.Actor) (*models.GroupMember, error) {
	unlock := s.lockGroup(groupID)
	defer unlock()

	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	if !actor.CanMutateOwned(group.LeaderID) {
		return nil, ErrForbidden
	}

	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if _, err := s.groupRepo.FindMembership(groupID, memberID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	// Category exclusivity: a member without a category is always allowed;
	// otherwise no current member may hold the same category.
	if member.Category != "" {
		memberships, err := s.groupRepo.ListMemberships(groupID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group members: %w", err)
		}

		for _, m := range memberships {
			if m.Member.Category != "" && strings.EqualFold(m.Member.Category, member.Category) {
				return nil, &CategoryConflictError{
					MemberID: m.Member.ID,
					Name:     m.Member.DisplayName(),
					Category: m.Member.Category,
				}
			}
		}
	}

	membership := &models.GroupMember{
		GroupID:  groupID,
		MemberID: memberID,
		JoinedAt: time.Now(),
	}

	if err := s.groupRepo.AddMember(membership); err != nil {
		return nil, fmt.Errorf("failed to add member to group: %w", err)
	}

	created, err := s.groupRepo.FindMembershipByID(membership.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created membership: %w", err)
	}

	return created, nil
}

// RemoveMember removes a member from a group. Attendance rows for past
// meetings are history and stay untouched.
func (s *GroupService) RemoveMember(groupID, memberID uint64, actor authz.Actor) error {
	unlock := s.lockGroup(groupID)
	defer unlock()

	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to find group: %w", err)
	}

	if !actor.CanMutateOwned(group.LeaderID) {
		return ErrForbidden
	}

	if _, err := s.groupRepo.FindMembership(groupID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAMember
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if err := s.groupRepo.RemoveMember(groupID, memberID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
