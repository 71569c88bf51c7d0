package controllers

import (
	"fiber-admin/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	svc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{svc: svc}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	summary, err := c.svc.Summary(ctx.UserContext(), CurrentUserID(ctx))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, summary, "Dashboard found")
}
