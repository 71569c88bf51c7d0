package controllers

import (
	"errors"
	"fiber-admin/utils/xerrors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response adalah envelope yang dibaca frontend (res.data.status, res.data.data).
type Response struct {
	Status  bool        `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func OK(ctx *fiber.Ctx, data interface{}, message string) error {
	return ctx.Status(fiber.StatusOK).JSON(Response{Status: true, Data: data, Message: message})
}

func Created(ctx *fiber.Ctx, data interface{}, message string) error {
	return ctx.Status(fiber.StatusCreated).JSON(Response{Status: true, Data: data, Message: message})
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, xerrors.ErrInvalidCredentials),
		errors.Is(err, xerrors.ErrInvalidSession):
		return fiber.StatusUnauthorized
	case errors.Is(err, xerrors.ErrInactiveUser),
		errors.Is(err, xerrors.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, xerrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, xerrors.ErrMenuCycle):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, xerrors.ErrConflict),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict
	case errors.Is(err, xerrors.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail menulis error dalam envelope yang sama. Error 5xx tidak dibocorkan ke client.
func Fail(ctx *fiber.Ctx, err error) error {
	code := StatusFor(err)
	message := err.Error()
	if code >= fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return ctx.Status(code).JSON(Response{Status: false, Data: nil, Message: message})
}

// ErrorHandler dipasang di fiber.Config untuk error yang lolos dari handler.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if StatusFor(err) >= fiber.StatusInternalServerError {
			log.Error("unhandled error",
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.Error(err),
			)
		}
		return Fail(ctx, err)
	}
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return Fail(ctx, xerrors.Validation(message))
}

// CurrentUserID diisi AuthMiddleware
func CurrentUserID(ctx *fiber.Ctx) uint {
	id, _ := ctx.Locals("userID").(uint)
	return id
}

func paramID(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, xerrors.Validation("invalid id " + strconv.Quote(ctx.Params("id")))
	}
	return uint(id), nil
}
