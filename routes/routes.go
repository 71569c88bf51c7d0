package routes

import (
	"fiber-admin/config"
	"fiber-admin/controllers"
	"fiber-admin/metrics"
	"fiber-admin/middleware"
	"fiber-admin/repositories"
	"fiber-admin/services"
	"fiber-admin/utils/mailer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	DB     *gorm.DB
	Cache  services.MenuCache // nil = tanpa cache
	Mailer mailer.Mailer
	Log    *zap.Logger
}

// NewApp merakit repository, service, controller dan semua route.
func NewApp(opts Options) *fiber.App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	mail := opts.Mailer
	if mail == nil {
		mail = mailer.New(log)
	}

	app := fiber.New(fiber.Config{
		AppName:      "fiber-admin",
		ErrorHandler: controllers.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	config.SetupCORS(app)

	userRepo := repositories.NewUserRepository(opts.DB)
	menuRepo := repositories.NewMenuRepository(opts.DB)
	approvalRepo := repositories.NewApprovalRepository(opts.DB)
	commodityRepo := repositories.NewCommodityRepository(opts.DB)
	notificationRepo := repositories.NewNotificationRepository(opts.DB)

	menuService := services.NewMenuService(menuRepo, opts.Cache, config.MenuCacheTTL, log.Named("menu"))
	authService := services.NewAuthService(userRepo, menuService, log.Named("auth"))
	notificationService := services.NewNotificationService(notificationRepo, log.Named("notification"))
	approvalService := services.NewApprovalService(approvalRepo, userRepo, notificationService, mail, log.Named("approval"))
	userService := services.NewUserService(userRepo, log.Named("user"))
	commodityService := services.NewCommodityService(commodityRepo, log.Named("commodity"))
	dashboardService := services.NewDashboardService(approvalRepo, notificationService)
	workflowService := services.NewWorkflowService(repositories.NewWorkflowRepository(opts.DB))

	auth := middleware.AuthMiddleware(authService, log)

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		sqlDB, err := opts.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx.UserContext())
		}
		if err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(controllers.Response{Status: false, Message: "database unavailable"})
		}
		return controllers.OK(ctx, "ok", "")
	})
	app.Get("/metrics", func(ctx *fiber.Ctx) error {
		_ = metrics.UpdateDatabaseConnections(opts.DB)
		return ctx.Next()
	}, adaptor.HTTPHandler(metrics.Handler()))

	SetupAuthRoutes(app, controllers.NewAuthController(authService), auth)
	SetupMenuRoutes(app, controllers.NewMenuController(menuService), auth)
	SetupApprovalRoutes(app, controllers.NewApprovalController(approvalService), auth)
	SetupUserRoutes(app, controllers.NewUserController(userService), auth)
	SetupCommodityRoutes(app, controllers.NewCommodityController(commodityService), auth)
	SetupNotificationRoutes(app, controllers.NewNotificationController(notificationService), auth)
	SetupDashboardRoutes(app, controllers.NewDashboardController(dashboardService), auth)
	SetupWorkflowRoutes(app, controllers.NewWorkflowController(workflowService), auth)

	return app
}
