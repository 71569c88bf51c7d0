package repositories

import (
	"context"
	"fiber-admin/models"

	"gorm.io/gorm"
)

type WorkflowRepository struct {
	DB *gorm.DB
}

func NewWorkflowRepository(DB *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{DB: DB}
}

func (r *WorkflowRepository) List(ctx context.Context, activeOnly bool) ([]models.Workflow, error) {
	q := r.DB.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var workflows []models.Workflow
	err := q.Order("id asc").Find(&workflows).Error
	return workflows, err
}
