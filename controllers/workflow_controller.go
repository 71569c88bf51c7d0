package controllers

import (
	"fiber-admin/services"

	"github.com/gofiber/fiber/v2"
)

type WorkflowController struct {
	svc *services.WorkflowService
}

func NewWorkflowController(svc *services.WorkflowService) *WorkflowController {
	return &WorkflowController{svc: svc}
}

// ListWorkflows ?active=true
func (c *WorkflowController) ListWorkflows(ctx *fiber.Ctx) error {
	items, err := c.svc.List(ctx.UserContext(), ctx.QueryBool("active", false))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, items, "")
}
