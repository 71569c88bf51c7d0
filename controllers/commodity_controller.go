package controllers

import (
	"fiber-admin/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CommodityController struct {
	svc *services.CommodityService
}

func NewCommodityController(svc *services.CommodityService) *CommodityController {
	return &CommodityController{svc: svc}
}

// Groups

func (c *CommodityController) GetGroups(ctx *fiber.Ctx) error {
	groups, err := c.svc.GetGroups(ctx.UserContext())
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, groups, "")
}

func (c *CommodityController) CreateGroup(ctx *fiber.Ctx) error {
	var input services.CommodityGroupInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	group, err := c.svc.CreateGroup(ctx.UserContext(), input, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return Created(ctx, group, "Group created successfully")
}

func (c *CommodityController) UpdateGroup(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	var input services.CommodityGroupInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	group, err := c.svc.UpdateGroup(ctx.UserContext(), id, input, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, group, "Group updated successfully")
}

func (c *CommodityController) DeleteGroup(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	if err := c.svc.DeleteGroup(ctx.UserContext(), id); err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, nil, "Group deleted successfully")
}

func (c *CommodityController) ExportGroups(ctx *fiber.Ctx) error {
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="commodity_groups.xlsx"`)

	if err := c.svc.ExportGroups(ctx.UserContext(), ctx.Response().BodyWriter()); err != nil {
		ctx.Set("Content-Type", fiber.MIMEApplicationJSON)
		ctx.Set("Content-Disposition", "")
		ctx.Response().ResetBody()
		return Fail(ctx, err)
	}
	return nil
}

// Maps

// GetMaps ?grp_key=
func (c *CommodityController) GetMaps(ctx *fiber.Ctx) error {
	maps, err := c.svc.GetMaps(ctx.UserContext(), ctx.Query("grp_key"))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, maps, "")
}

func (c *CommodityController) CreateMap(ctx *fiber.Ctx) error {
	var input services.CommodityMapInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	m, err := c.svc.CreateMap(ctx.UserContext(), input, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return Created(ctx, m, "Commodity mapped successfully")
}

func (c *CommodityController) UpdateMap(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	var input services.CommodityMapInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	m, err := c.svc.UpdateMap(ctx.UserContext(), id, input, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, m, "Commodity map updated successfully")
}

func (c *CommodityController) DeleteMap(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	if err := c.svc.DeleteMap(ctx.UserContext(), id); err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, nil, "Commodity map deleted successfully")
}

// ImportMaps form-data field "file" (.xlsx)
func (c *CommodityController) ImportMaps(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return badRequest(ctx, "Failed to get file")
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return badRequest(ctx, "Only Excel files (.xlsx) are allowed")
	}

	content, err := file.Open()
	if err != nil {
		return Fail(ctx, err)
	}
	defer content.Close()

	result, err := c.svc.ImportMaps(ctx.UserContext(), content, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, result, "Import finished")
}

// Users

func (c *CommodityController) GetUsers(ctx *fiber.Ctx) error {
	users, err := c.svc.GetUsers(ctx.UserContext())
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, users, "")
}

func (c *CommodityController) CreateUser(ctx *fiber.Ctx) error {
	var input services.CommodityUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	u, err := c.svc.CreateUser(ctx.UserContext(), input, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return Created(ctx, u, "Commodity user created successfully")
}

func (c *CommodityController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	var input services.CommodityUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}
	u, err := c.svc.UpdateUser(ctx.UserContext(), id, input, int(CurrentUserID(ctx)))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, u, "Commodity user updated successfully")
}

func (c *CommodityController) DeleteUser(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return Fail(ctx, err)
	}
	if err := c.svc.DeleteUser(ctx.UserContext(), id); err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, nil, "Commodity user deleted successfully")
}
