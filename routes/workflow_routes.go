package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupWorkflowRoutes(app *fiber.App, workflowController *controllers.WorkflowController, auth fiber.Handler) {
	app.Get(config.MAIN_ROUTES+"/workflows", auth, workflowController.ListWorkflows)
}
