package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/snishiyama/networking-crm/internal/constants"
	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken     = errors.New("username already exists")
	ErrEmailTaken        = errors.New("email already exists")
	ErrInvalidRole       = errors.New("invalid role")
	ErrPasswordTooShort  = errors.New("password too short")
	ErrCannotModifySelf  = errors.New("cannot modify your own account through this endpoint")
	ErrNoProfileChanges  = errors.New("no changes to update")
	ErrUserFieldsMissing = errors.New("username, email, password, and role are required")
)

// UserService provides the admin user-management surface and self-service
// profile updates. Admin mutations are restricted to super admins at the
// route layer; the self-modification rule lives here because it depends on
// the target, not the role.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns all users.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUserInput represents parameters to create a new user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

// CreateUser creates a group-leader or super-admin account.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(input.Username) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" ||
		input.Role == "" {
		return nil, ErrUserFieldsMissing
	}
	if !models.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if err := s.checkUsernameFree(input.Username, 0); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(input.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), constants.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUserInput holds the patchable user fields. Nil means unchanged.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Role     *models.Role
	Password *string
}

// UpdateUser updates another user's account. Updating your own account
// through the admin surface is rejected regardless of role.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput, actorID uint64) (*models.User, error) {
	if id == actorID {
		return nil, ErrCannotModifySelf
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username != nil && *input.Username != user.Username {
		if err := s.checkUsernameFree(*input.Username, id); err != nil {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := s.checkEmailFree(*input.Email, id); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), constants.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser deletes another user's account. Self-deletion is rejected.
func (s *UserService) DeleteUser(id, actorID uint64) error {
	if id == actorID {
		return ErrCannotModifySelf
	}

	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// UpdateProfileInput holds the self-service profile fields. Nil means
// unchanged.
type UpdateProfileInput struct {
	Username *string
	Email    *string
}

// UpdateProfile updates the caller's own username or email.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	changed := false

	if input.Username != nil && *input.Username != user.Username {
		if err := s.checkUsernameFree(*input.Username, userID); err != nil {
			return nil, err
		}
		user.Username = *input.Username
		changed = true
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := s.checkEmailFree(*input.Email, userID); err != nil {
			return nil, err
		}
		user.Email = *input.Email
		changed = true
	}

	if !changed {
		return nil, ErrNoProfileChanges
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func (s *UserService) checkUsernameFree(username string, selfID uint64) error {
	existing, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing.ID != selfID {
		return ErrUsernameTaken
	}
	return nil
}

func (s *UserService) checkEmailFree(email string, selfID uint64) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != selfID {
		return ErrEmailTaken
	}
	return nil
}
