package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"

	"github.com/gofiber/fiber/v2"
)

// decision tidak dibatasi role, service yang cek approver_id
func SetupApprovalRoutes(app *fiber.App, approvalController *controllers.ApprovalController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/approvals", auth)
	api.Get("/", approvalController.ListApprovals)
	api.Get("/:id", approvalController.GetApproval)
	api.Post("/", approvalController.SubmitApproval)
	api.Post("/:id/decision", approvalController.DecideApproval)
}
