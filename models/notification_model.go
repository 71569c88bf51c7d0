package models

import "time"

type NotificationType string

const (
	NotifyApprove NotificationType = "approve"
	NotifyReject  NotificationType = "reject"
	NotifyInfo    NotificationType = "info"
	NotifyTask    NotificationType = "task"
)

type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"-" gorm:"index"`
	Type      NotificationType `json:"type" gorm:"size:20"`
	Text      string           `json:"text"`
	Link      string           `json:"link"`
	Unread    bool             `json:"unread" gorm:"index"`
	CreatedAt time.Time        `json:"createdAt"`
}
