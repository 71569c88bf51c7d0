package services

import (
	"context"
	"fiber-admin/models"
	"fiber-admin/repositories"
)

type WorkflowService struct {
	repo *repositories.WorkflowRepository
}

func NewWorkflowService(repo *repositories.WorkflowRepository) *WorkflowService {
	return &WorkflowService{repo: repo}
}

func (s *WorkflowService) List(ctx context.Context, activeOnly bool) ([]models.Workflow, error) {
	items, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Workflow{}
	}
	return items, nil
}
