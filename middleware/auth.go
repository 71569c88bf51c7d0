package middleware

import (
	"fiber-admin/controllers"
	"fiber-admin/services"
	"fiber-admin/utils/xerrors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware membaca Bearer token (atau cookie "token"), cek signature
// dan session aktif, lalu menyimpan userID, sessionID dan role ke Locals.
func AuthMiddleware(auth *services.AuthService, log *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw, err := bearerToken(ctx)
		if err != nil {
			return controllers.Fail(ctx, err)
		}

		claims, err := auth.ParseToken(raw)
		if err != nil {
			return controllers.Fail(ctx, err)
		}

		if err := auth.ValidateSession(ctx.UserContext(), claims); err != nil {
			log.Debug("session rejected", zap.String("session_id", claims.SessionID), zap.Error(err))
			return controllers.Fail(ctx, err)
		}

		ctx.Locals("userID", claims.UserID)
		ctx.Locals("sessionID", claims.SessionID)
		ctx.Locals("role", claims.Role)
		return ctx.Next()
	}
}

func bearerToken(ctx *fiber.Ctx) (string, error) {
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if cookie := ctx.Cookies("token"); cookie != "" {
			return cookie, nil
		}
		return "", xerrors.ErrInvalidSession
	}

	// Ambil token dari "Bearer <token>"
	tokenParts := strings.Fields(authHeader)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
		return "", xerrors.ErrInvalidSession
	}
	return tokenParts[1], nil
}

// RequireRole dipakai setelah AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("role").(string)
		for _, r := range roles {
			if r == role {
				return ctx.Next()
			}
		}
		return controllers.Fail(ctx, xerrors.ErrUnauthorized)
	}
}
