package services

import (
	"context"
	"errors"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"fiber-admin/utils/xerrors"
	"strings"

	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

type CreateUserInput struct {
	Username       string `json:"username" validate:"required,min=3"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           string `json:"role" validate:"omitempty,oneof=Employee Manager"`
	EmployeeNumber string `json:"employee_number"`
	BuName         string `json:"bu_name"`
	BuCode         string `json:"bu_code"`
	Plant          string `json:"plant"`
	ImageProfile   string `json:"image_profile"`
}

type UpdateUserInput struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"omitempty,min=6"` // opsional saat update
	Role           string `json:"role" validate:"omitempty,oneof=Employee Manager"`
	EmployeeNumber string `json:"employee_number"`
	BuName         string `json:"bu_name"`
	BuCode         string `json:"bu_code"`
	Plant          string `json:"plant"`
	ImageProfile   string `json:"image_profile"`
	IsActive       *bool  `json:"is_active"`
}

type Preferences struct {
	ThemeMode   string `json:"themeMode" validate:"required,oneof=light dark"`
	DenseLayout bool   `json:"denseLayout"`
}

type UserService struct {
	repo     *repositories.UserRepository
	log      *zap.Logger
	validate *validator.Validate
}

func NewUserService(repo *repositories.UserRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, log: log, validate: validator.New()}
}

// Create user
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput, actor int) (*models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	if _, err := s.repo.GetByLogin(ctx, input.Username); err == nil {
		return nil, xerrors.Validation("username already exists")
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByLogin(ctx, input.Email); err == nil {
		return nil, xerrors.Validation("email already exists")
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = models.RoleEmployee
	}

	user := models.User{
		Username:       strings.TrimSpace(input.Username),
		Password:       hashed,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          strings.TrimSpace(input.Email),
		Role:           role,
		EmployeeNumber: input.EmployeeNumber,
		BuName:         input.BuName,
		BuCode:         input.BuCode,
		Plant:          input.Plant,
		ImageProfile:   input.ImageProfile,
		IsActive:       true,
		ThemeMode:      "light",
		CreatedBy:      actor,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.Int("created_by", actor))
	return &user, nil
}

// Get user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Get all users
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Update user
func (s *UserService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput, actor int) (*models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(user.Email, input.Email) {
		if other, err := s.repo.GetByLogin(ctx, input.Email); err == nil && other.ID != user.ID {
			return nil, xerrors.Validation("email already exists")
		}
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = strings.TrimSpace(input.Email)
	user.EmployeeNumber = input.EmployeeNumber
	user.BuName = input.BuName
	user.BuCode = input.BuCode
	user.Plant = input.Plant
	user.ImageProfile = input.ImageProfile
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != "" {
		hashed, err := HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	user.UpdatedBy = actor

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete user
func (s *UserService) DeleteUser(ctx context.Context, id uint, actor int) error {
	if int(id) == actor {
		return xerrors.Validation("cannot delete your own account")
	}
	return s.repo.Delete(ctx, id, actor)
}

func (s *UserService) GetPreferences(ctx context.Context, userID uint) (Preferences, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	mode := user.ThemeMode
	if mode == "" {
		mode = "light"
	}
	return Preferences{ThemeMode: mode, DenseLayout: user.DenseLayout}, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, userID uint, prefs Preferences) (Preferences, error) {
	if err := s.validate.Struct(prefs); err != nil {
		return Preferences{}, xerrors.Validation(err.Error())
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	user.ThemeMode = prefs.ThemeMode
	user.DenseLayout = prefs.DenseLayout
	if err := s.repo.Update(ctx, user); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}
