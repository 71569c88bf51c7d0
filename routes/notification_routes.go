package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, c *controllers.NotificationController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/notifications", auth)
	api.Get("/", c.ListNotifications)
	api.Get("/count", c.CountUnread)
	api.Post("/read-all", c.MarkAllRead)
	api.Post("/:id/read", c.MarkRead)
}
