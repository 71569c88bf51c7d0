package services

import (
	"context"
	"fiber-admin/models"
	"fiber-admin/repositories"
)

type DashboardSummary struct {
	Submitted           map[models.ApprovalStatus]int64 `json:"submitted"`
	Assigned            map[models.ApprovalStatus]int64 `json:"assigned"`
	UnreadNotifications int64                           `json:"unreadNotifications"`
}

type DashboardService struct {
	approvals     repositories.ApprovalRepository
	notifications *NotificationService
}

func NewDashboardService(approvals repositories.ApprovalRepository, notifications *NotificationService) *DashboardService {
	return &DashboardService{approvals: approvals, notifications: notifications}
}

func emptyStatusCounts() map[models.ApprovalStatus]int64 {
	return map[models.ApprovalStatus]int64{
		models.StatusPending:  0,
		models.StatusApproved: 0,
		models.StatusRejected: 0,
	}
}

// Summary menghitung request milik user dan yang menunggu keputusan user.
func (s *DashboardService) Summary(ctx context.Context, userID uint) (DashboardSummary, error) {
	out := DashboardSummary{Submitted: emptyStatusCounts(), Assigned: emptyStatusCounts()}

	rows, err := s.approvals.Summary(ctx, userID)
	if err != nil {
		return out, err
	}
	for _, r := range rows {
		switch r.Scope {
		case "submitted":
			out.Submitted[r.Status] = r.Total
		case "assigned":
			out.Assigned[r.Status] = r.Total
		}
	}

	out.UnreadNotifications, err = s.notifications.CountUnread(ctx, userID)
	return out, err
}
