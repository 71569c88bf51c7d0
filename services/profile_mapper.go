package services

import (
	"fiber-admin/config"
	"fiber-admin/models"
	"fiber-admin/utils/xerrors"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

// RawUser dan RawMenu mengikuti payload legacy (kolom uppercase).
type RawUser struct {
	UserID         uint   `json:"USER_ID" validate:"required"`
	Username       string `json:"USERNAME" validate:"required"`
	FirstName      string `json:"FIRST_NAME" validate:"required"`
	MiddleName     string `json:"MIDDLE_NAME"`
	LastName       string `json:"LAST_NAME"`
	Email          string `json:"EMAIL" validate:"required"`
	EmployeeNumber string `json:"EMPLOYEE_NUMBER"`
	BuName         string `json:"BU_NAME"`
	BuCode         string `json:"BU_CODE"`
	Plant          string `json:"PLANT"`
	UserImg        string `json:"USER_IMG"`
	UserType       string `json:"USER_TYPE"`
	IsActivate     int    `json:"IS_ACTIVATE"`
}

type RawMenu struct {
	MenuID       uint   `json:"MENU_ID" validate:"required"`
	MenuName     string `json:"MENU_NAME" validate:"required"`
	MenuPath     string `json:"MENU_PATH" validate:"required"`
	MenuSequence int    `json:"MENU_SEQUENCE"`
	MenuParent   *uint  `json:"MENU_PARENT"`
	MenuSystem   string `json:"MENU_SYSTEM"`
	MenuIcon     string `json:"MENU_ICON"`
	IsActive     int    `json:"IS_ACTIVE"`
}

type RawPayload struct {
	User []RawUser `json:"user" validate:"required,min=1,dive"`
	Menu []RawMenu `json:"menu" validate:"dive"`
}

// UserProfile adalah bentuk user yang dipakai navigation shell di frontend.
type UserProfile struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Role         string            `json:"role"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	ImageProfile string            `json:"imageProfile"`
	BuName       string            `json:"buName"`
	BuCode       string            `json:"buCode"`
	Email        string            `json:"email"`
	Plant        string            `json:"plant"`
	ThemeMode    string            `json:"themeMode"`
	DenseLayout  bool              `json:"denseLayout"`
	ListMenu     []models.MenuNode `json:"listMenu"`
}

var payloadValidator = validator.New()

func (m RawMenu) record() models.MenuRecord {
	return models.MenuRecord{
		ID:       m.MenuID,
		Name:     m.MenuName,
		Path:     m.MenuPath,
		Sequence: strconv.Itoa(m.MenuSequence),
		ParentID: m.MenuParent,
		Icon:     m.MenuIcon,
	}
}

// MapPayload converts a legacy payload into the profile shape. Only the
// first user entry is used.
func MapPayload(payload RawPayload) (UserProfile, error) {
	if len(payload.User) == 0 {
		return UserProfile{}, xerrors.Validation("payload missing user data")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return UserProfile{}, xerrors.Validation(err.Error())
	}

	records := make([]models.MenuRecord, 0, len(payload.Menu))
	for _, m := range payload.Menu {
		records = append(records, m.record())
	}
	tree, err := BuildMenuTree(records)
	if err != nil {
		return UserProfile{}, err
	}

	raw := payload.User[0]
	role := raw.UserType
	if role == "" {
		role = models.RoleEmployee
	}
	return UserProfile{
		ID:           raw.UserID,
		Name:         strings.TrimSpace(raw.FirstName + " " + raw.LastName),
		Role:         role,
		FirstName:    raw.FirstName,
		LastName:     raw.LastName,
		ImageProfile: raw.UserImg,
		BuName:       raw.BuName,
		BuCode:       raw.BuCode,
		Email:        raw.Email,
		Plant:        raw.Plant,
		ThemeMode:    "light",
		ListMenu:     tree,
	}, nil
}

// MapMenus converts legacy menu rows into models ready for import. Row ids
// are kept so parent references survive; a cyclic set is rejected.
func MapMenus(raw []RawMenu) ([]models.Menu, error) {
	menus := make([]models.Menu, 0, len(raw))
	records := make([]models.MenuRecord, 0, len(raw))
	for i, m := range raw {
		if err := payloadValidator.Struct(m); err != nil {
			return nil, xerrors.Validation("menu row " + strconv.Itoa(i+1) + ": " + err.Error())
		}
		system := m.MenuSystem
		if system == "" {
			system = config.MenuSystem
		}
		parent := m.MenuParent
		if parent != nil && *parent == 0 {
			parent = nil
		}
		menus = append(menus, models.Menu{
			Name:     m.MenuName,
			Path:     m.MenuPath,
			Icon:     m.MenuIcon,
			Sequence: m.MenuSequence,
			ParentID: parent,
			System:   system,
			IsActive: m.IsActive == 1,
		})
		menus[len(menus)-1].ID = m.MenuID
		records = append(records, m.record())
	}
	if _, err := BuildMenuTree(records); err != nil {
		return nil, err
	}
	return menus, nil
}

func ProfileFromUser(u models.User, tree []models.MenuNode) UserProfile {
	if tree == nil {
		tree = []models.MenuNode{}
	}
	return UserProfile{
		ID:           u.ID,
		Name:         strings.TrimSpace(u.FirstName + " " + u.LastName),
		Role:         u.Role,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ImageProfile: u.ImageProfile,
		BuName:       u.BuName,
		BuCode:       u.BuCode,
		Email:        u.Email,
		Plant:        u.Plant,
		ThemeMode:    u.ThemeMode,
		DenseLayout:  u.DenseLayout,
		ListMenu:     tree,
	}
}
