package controllers

import (
	"fiber-admin/config"
	"fiber-admin/services"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// Login body: {user, passwd, type}. data berisi token string.
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input services.LoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return badRequest(ctx, "Invalid request")
	}

	token, err := c.svc.Login(ctx.UserContext(), input, services.ClientInfo{
		IP:        ctx.IP(),
		UserAgent: string(ctx.Request().Header.UserAgent()),
	})
	if err != nil {
		return Fail(ctx, err)
	}

	ctx.Cookie(config.GetTokenCookie(token))
	return OK(ctx, token, "Login successfully")
}

func (c *AuthController) GetUserProfile(ctx *fiber.Ctx) error {
	profile, err := c.svc.Profile(ctx.UserContext(), CurrentUserID(ctx))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, profile, "")
}

func (c *AuthController) GetUserImage(ctx *fiber.Ctx) error {
	image, err := c.svc.ProfileImage(ctx.UserContext(), CurrentUserID(ctx))
	if err != nil {
		return Fail(ctx, err)
	}
	return OK(ctx, image, "")
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	sessionID, _ := ctx.Locals("sessionID").(string)
	if err := c.svc.Logout(ctx.UserContext(), sessionID); err != nil {
		return Fail(ctx, err)
	}

	// Hapus token dari cookie
	ctx.Cookie(config.GetTokenCookie(""))
	return OK(ctx, nil, "Logout successful")
}
