package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"
	"fiber-admin/middleware"
	"fiber-admin/models"

	"github.com/gofiber/fiber/v2"
)

func SetupMenuRoutes(app *fiber.App, menuController *controllers.MenuController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/menus", auth)
	api.Get("/tree", menuController.GetMenuTree)
	api.Get("/", menuController.GetAllMenus)
	api.Get("/:id", menuController.GetMenuByID)

	manager := middleware.RequireRole(models.RoleManager)
	api.Post("/import", manager, menuController.ImportMenus)
	api.Post("/", manager, menuController.CreateMenu)
	api.Put("/:id", manager, menuController.UpdateMenu)
	api.Delete("/:id", manager, menuController.DeleteMenu)
}
