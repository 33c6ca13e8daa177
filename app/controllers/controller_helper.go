package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
)

var validate = validator.New()

// respondError maps the error taxonomy onto HTTP statuses with a structured
// JSON body. Upstream failures keep the upstream payload in "details" for
// diagnostics; nothing ever returns a bare stack trace.
func respondError(c *fiber.Ctx, err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": ve.Error(),
		})
	}

	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": nf.Error(),
		})
	}

	var ie *apperr.IntegrityError
	if errors.As(err, &ie) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": ie.Error(),
		})
	}

	var ue *apperr.UpstreamError
	if errors.As(err, &ue) {
		body := fiber.Map{
			"success": false,
			"message": ue.Error(),
		}
		if ue.Detail != "" {
			body["details"] = ue.Detail
		}
		return c.Status(fiber.StatusBadGateway).JSON(body)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
