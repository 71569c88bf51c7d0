package controllers

import (
	"fiber-admin/config"
	"fiber-admin/services"

	"github.com/gofiber/fiber/v2"
)

type MenuController struct {
	svc *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{svc: svc}
}

// GetMenuTree ?system= default MENU_SYSTEM
func (mc *MenuController) GetMenuTree(ctx *fiber.Ctx) error {
	tree, err := mc.svc.GetMenuTree(ctx.UserContext(), ctx.Query("system", config.MenuSystem))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, tree, "")
}

func (mc *MenuController) GetAllMenus(ctx *fiber.Ctx) error {
	menus, err := mc.svc.GetAll(ctx.UserContext())
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, menus, "")
}

func (mc *MenuController) GetMenuByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	menu, err := mc.svc.GetByID(ctx.UserContext(), id)
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, menu, "")
}

func (mc *MenuController) CreateMenu(ctx *fiber.Ctx) error {
	var input services.MenuInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	menu, err := mc.svc.Create(ctx.UserContext(), input, config.MenuSystem, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return Created(ctx, menu, "Menu created successfully")
}

func (mc *MenuController) UpdateMenu(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	var input services.MenuInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	menu, err := mc.svc.Update(ctx.UserContext(), id, input, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, menu, "Menu updated successfully")
}

func (mc *MenuController) DeleteMenu(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	if err := mc.svc.Delete(ctx.UserContext(), id); err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, nil, "Menu deleted successfully")
}

// ImportMenus body: array RawMenu (format legacy)
func (mc *MenuController) ImportMenus(ctx *fiber.Ctx) error {
	var rows []services.RawMenu
	if err := ctx.BodyParser(&rows); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	n, err := mc.svc.Import(ctx.UserContext(), rows)
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, fiber.Map{"imported": n}, "Menus imported successfully")
}
