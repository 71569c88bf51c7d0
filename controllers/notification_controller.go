package controllers

import (
	"fiber-admin/services"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	svc *services.NotificationService
}

func NewNotificationController(svc *services.NotificationService) *NotificationController {
	return &NotificationController{svc: svc}
}

// ListNotifications ?unread=true&limit=&offset=
func (c *NotificationController) ListNotifications(ctx *fiber.Ctx) error {
	items, err := c.svc.List(ctx.UserContext(), CurrentUserID(ctx),
		ctx.QueryBool("unread", false),
		ctx.QueryInt("limit", 0),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, items, "")
}

func (c *NotificationController) CountUnread(ctx *fiber.Ctx) error {
	count, err := c.svc.CountUnread(ctx.UserContext(), CurrentUserID(ctx))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, fiber.Map{"unread": count}, "")
}

func (c *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	if err := c.svc.MarkRead(ctx.UserContext(), CurrentUserID(ctx), id); err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, nil, "")
}

func (c *NotificationController) MarkAllRead(ctx *fiber.Ctx) error {
	n, err := c.svc.MarkAllRead(ctx.UserContext(), CurrentUserID(ctx))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, fiber.Map{"updated": n}, "")
}
