package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", authController.Login)
	api.Get("/getuserprofile", auth, authController.GetUserProfile)
	api.Get("/getuserimage", auth, authController.GetUserImage)
	api.Get("/logout", auth, authController.Logout)
}
