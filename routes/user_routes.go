package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"
	"fiber-admin/middleware"
	"fiber-admin/models"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userController *controllers.UserController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/users", auth, middleware.RequireRole(models.RoleManager))
	api.Post("/", userController.CreateUser)
	api.Get("/:id", userController.GetUserByID)
	api.Get("/", userController.GetAllUsers)
	api.Put("/:id", userController.UpdateUser)
	api.Delete("/:id", userController.DeleteUser)

	// prefix "/user" juga cocok dengan "/users" kalau dipasang sebagai Use, jadi auth per route
	profile := app.Group(config.MAIN_ROUTES + "/user")
	profile.Get("/preferences", auth, userController.GetPreferences)
	profile.Put("/preferences", auth, userController.UpdatePreferences)
}
