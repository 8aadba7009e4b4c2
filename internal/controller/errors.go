package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/inda20plusplus/maltebl-chess/internal/model"
	"github.com/inda20plusplus/maltebl-chess/internal/service"
)

// statusFor maps service and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrGameFull):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrMalformedInput):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrWrongTurn):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrEmptySquare),
		errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrIllegalPromotion):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
