package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"
	"fiber-admin/middleware"
	"fiber-admin/models"

	"github.com/gofiber/fiber/v2"
)

func SetupCommodityRoutes(app *fiber.App, c *controllers.CommodityController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/commodities", auth)
	manager := middleware.RequireRole(models.RoleManager)

	groups := api.Group("/groups")
	groups.Get("/", c.GetGroups)
	groups.Get("/export", c.ExportGroups)
	groups.Post("/", manager, c.CreateGroup)
	groups.Put("/:id", manager, c.UpdateGroup)
	groups.Delete("/:id", manager, c.DeleteGroup)

	maps := api.Group("/maps")
	maps.Get("/", c.GetMaps)
	maps.Post("/import", manager, c.ImportMaps)
	maps.Post("/", manager, c.CreateMap)
	maps.Put("/:id", manager, c.UpdateMap)
	maps.Delete("/:id", manager, c.DeleteMap)

	users := api.Group("/users")
	users.Get("/", c.GetUsers)
	users.Post("/", manager, c.CreateUser)
	users.Put("/:id", manager, c.UpdateUser)
	users.Delete("/:id", manager, c.DeleteUser)
}
