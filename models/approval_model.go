package models

import (
	"fiber-admin/controllers/idgen"
	"fiber-admin/types"
	"time"

	"gorm.io/gorm"
)

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "Pending"
	StatusApproved ApprovalStatus = "Approved"
	StatusRejected ApprovalStatus = "Rejected"
)

func (s ApprovalStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type ApprovalRequest struct {
	ID            types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	SubmittedBy   string            `json:"submittedBy"`
	SubmittedByID uint              `json:"submittedById" gorm:"index"`
	ApproverID    uint              `json:"approverId" gorm:"index"`
	Details       string            `json:"details" gorm:"type:text"`
	Status        ApprovalStatus    `json:"status" gorm:"size:20;index;default:'Pending'"`
	DecidedAt     *time.Time        `json:"decidedAt,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (r *ApprovalRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == 0 {
		r.ID = types.SnowflakeID(idgen.GenerateID())
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return
}
