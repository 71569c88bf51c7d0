package controllers

import (
	"fiber-admin/services"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{svc: svc}
}

func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var userInput services.CreateUserInput
	if err := ctx.BodyParser(&userInput); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	user, err := c.svc.CreateUser(ctx.UserContext(), userInput, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return Created(ctx, user, "User created successfully")
}

func (c *UserController) GetUserByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	user, err := c.svc.GetUserByID(ctx.UserContext(), id)
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, user, "")
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	users, err := c.svc.GetAllUsers(ctx.UserContext())
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, users, "")
}

func (c *UserController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	var userInput services.UpdateUserInput
	if err := ctx.BodyParser(&userInput); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	user, err := c.svc.UpdateUser(ctx.UserContext(), id, userInput, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, user, "User updated successfully")
}

func (c *UserController) DeleteUser(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	if err := c.svc.DeleteUser(ctx.UserContext(), id, int(CurrentUserID(ctx))); err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, nil, "User deleted successfully")
}

func (c *UserController) GetPreferences(ctx *fiber.Ctx) error {
	prefs, err := c.svc.GetPreferences(ctx.UserContext(), CurrentUserID(ctx))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, prefs, "")
}

func (c *UserController) UpdatePreferences(ctx *fiber.Ctx) error {
	var prefs services.Preferences
	if err := ctx.BodyParser(&prefs); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	saved, err := c.svc.UpdatePreferences(ctx.UserContext(), CurrentUserID(ctx), prefs)
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, saved, "Preferences saved")
}
