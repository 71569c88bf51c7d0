package controllers

import (
	"fiber-admin/models"
	"fiber-admin/services"
	"fiber-admin/types"

	"github.com/gofiber/fiber/v2"
)

type ApprovalController struct {
	svc *services.ApprovalService
}

func NewApprovalController(svc *services.ApprovalService) *ApprovalController {
	return &ApprovalController{svc: svc}
}

// ListApprovals ?scope=mine|assigned|all&status=
func (c *ApprovalController) ListApprovals(ctx *fiber.Ctx) error {
	scope := services.ApprovalScope(ctx.Query("scope", string(services.ScopeMine)))
	status := models.ApprovalStatus(ctx.Query("status"))

	items, err := c.svc.List(ctx.UserContext(), CurrentUserID(ctx), scope, status)
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, items, "")
}

func (c *ApprovalController) GetApproval(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	req, err := c.svc.Get(ctx.UserContext(), CurrentUserID(ctx), id)
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, req, "")
}

func (c *ApprovalController) SubmitApproval(ctx *fiber.Ctx) error {
	var input services.SubmitApprovalInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	req, err := c.svc.Submit(ctx.UserContext(), CurrentUserID(ctx), input)
	if err != nil {
		return Fail(ctx, err)
	}
	return Created(ctx, req, "Request submitted")
}

// DecideApproval body: {decision: Approved|Rejected}
func (c *ApprovalController) DecideApproval(ctx *fiber.Ctx) error {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var input struct {
		Decision models.ApprovalStatus `json:"decision"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}

	req, err := c.svc.ApplyDecision(ctx.UserContext(), id, CurrentUserID(ctx), input.Decision)
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, req, "Request "+string(req.Status))
}
