package repositories

import (
	"context"
	"fiber-admin/models"
	"fiber-admin/types"
	"fiber-admin/utils/xerrors"
	"time"

	"gorm.io/gorm"
)

type ApprovalFilter struct {
	SubmittedByID uint
	ApproverID    uint
	// InvolvingUserID matches requests submitted by or assigned to the user.
	InvolvingUserID uint
	Status          models.ApprovalStatus
}

type ApprovalRepository interface {
	Create(ctx context.Context, req *models.ApprovalRequest) error
	GetByID(ctx context.Context, id types.SnowflakeID) (*models.ApprovalRequest, error)
	List(ctx context.Context, filter ApprovalFilter) ([]models.ApprovalRequest, error)
	// UpdateStatus only moves a Pending request; a request that is no longer
	// Pending yields xerrors.ErrAlreadyDecided.
	UpdateStatus(ctx context.Context, id types.SnowflakeID, status models.ApprovalStatus, decidedAt time.Time) error
	Summary(ctx context.Context, userID uint) ([]ApprovalSummaryRow, error)
}

// ApprovalSummaryRow: Scope "submitted" atau "assigned".
type ApprovalSummaryRow struct {
	Scope  string
	Status models.ApprovalStatus
	Total  int64
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, req *models.ApprovalRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *approvalRepository) GetByID(ctx context.Context, id types.SnowflakeID) (*models.ApprovalRequest, error) {
	var req models.ApprovalRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, notFound(err, "approval request")
	}
	return &req, nil
}

func (r *approvalRepository) List(ctx context.Context, filter ApprovalFilter) ([]models.ApprovalRequest, error) {
	q := r.db.WithContext(ctx).Model(&models.ApprovalRequest{})
	if filter.SubmittedByID != 0 {
		q = q.Where("submitted_by_id = ?", filter.SubmittedByID)
	}
	if filter.ApproverID != 0 {
		q = q.Where("approver_id = ?", filter.ApproverID)
	}
	if filter.InvolvingUserID != 0 {
		q = q.Where("submitted_by_id = ? OR approver_id = ?", filter.InvolvingUserID, filter.InvolvingUserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var requests []models.ApprovalRequest
	err := q.Order("created_at desc").Order("id desc").Find(&requests).Error
	return requests, err
}

func (r *approvalRepository) UpdateStatus(ctx context.Context, id types.SnowflakeID, status models.ApprovalStatus, decidedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ApprovalRequest{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Updates(map[string]interface{}{"status": status, "decided_at": decidedAt})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}

		var count int64
		if err := tx.Model(&models.ApprovalRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return xerrors.NotFound("approval request")
		}
		return xerrors.ErrAlreadyDecided
	})
}

func (r *approvalRepository) Summary(ctx context.Context, userID uint) ([]ApprovalSummaryRow, error) {
	sql := `WITH submitted AS (
			SELECT 'submitted' AS scope, status, COUNT(*) AS total
			FROM approval_requests WHERE submitted_by_id = ? GROUP BY status
		), assigned AS (
			SELECT 'assigned' AS scope, status, COUNT(*) AS total
			FROM approval_requests WHERE approver_id = ? GROUP BY status
		)

		SELECT scope, status, total FROM submitted
		UNION ALL
		SELECT scope, status, total FROM assigned`

	var rows []ApprovalSummaryRow
	err := r.db.WithContext(ctx).Raw(sql, userID, userID).Scan(&rows).Error
	return rows, err
}
