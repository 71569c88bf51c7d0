package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, dashboardController *controllers.DashboardController, auth fiber.Handler) {
	app.Get(config.MAIN_ROUTES+"/dashboard", auth, dashboardController.GetDashboard)
}
