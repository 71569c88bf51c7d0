package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
)

type User struct {
	gorm.Model
	Username       string `json:"username" gorm:"unique;size:100"`
	Password       string `json:"-"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" gorm:"unique;size:150"`
	Role           string `json:"role" gorm:"size:20;default:'Employee'"`
	EmployeeNumber string `json:"employee_number"`
	BuName         string `json:"bu_name"`
	BuCode         string `json:"bu_code"`
	Plant          string `json:"plant"`
	ImageProfile   string `json:"image_profile"`
	IsActive       bool   `json:"is_active"`
	ThemeMode      string `json:"theme_mode" gorm:"size:10;default:'light'"`
	DenseLayout    bool   `json:"dense_layout"`
	CreatedBy      int    `json:"-"`
	UpdatedBy      int    `json:"-"`
	DeletedBy      int    `json:"-"`
}

// DisplayName dipakai untuk kolom SubmittedBy di approval request.
func (u User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name + " (" + u.Role + ")"
}

func (u User) IsManager() bool {
	return u.Role == RoleManager
}

type UserSession struct {
	ID             uint      `gorm:"primaryKey"`
	SessionID      string    `gorm:"uniqueIndex;size:64"`
	UserID         uint      `gorm:"index"`
	IPAddress      string    `gorm:"size:64"`
	UserAgent      string    `gorm:"size:255"`
	IsActive       bool      `gorm:"index"`
	LastActivityAt time.Time
	ExpiresAt      time.Time
	CreatedAt      time.Time
}
