package middleware

import (
	"fiber-admin/controllers"
	"fiber-admin/metrics"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// RequestLogger menulis satu baris log per request dan mencatat metrics.
// Dipasang setelah requestid.New().
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		chainErr := ctx.Next()

		status := ctx.Response().StatusCode()
		if chainErr != nil {
			status = controllers.StatusFor(chainErr)
		}
		latency := time.Since(start)
		// label prometheus disimpan permanen, ctx.Method() menunjuk ke buffer fasthttp yang dipakai ulang
		method := utils.CopyString(ctx.Method())
		metrics.RecordHTTPRequest(method, status, latency.Seconds())

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", ctx.Path()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", ctx.IP()),
		}
		if rid, ok := ctx.Locals("requestid").(string); ok {
			fields = append(fields, zap.String("request_id", rid))
		}
		if uid := controllers.CurrentUserID(ctx); uid != 0 {
			fields = append(fields, zap.Uint("user_id", uid))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return chainErr
	}
}
