package models

import "time"

// Workflow hanya dibaca oleh halaman daftar workflow, editor tidak ada di backend.
type Workflow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;unique"`
	Active    bool      `json:"active" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
