package exts

import (
	"errors"

	"git.solsynth.dev/hypernet/polls/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

// ServiceError maps domain errors onto their HTTP status, unknown errors pass through.
func ServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrChoiceNotFound),
		errors.Is(err, services.ErrVoteNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidWindow),
		errors.Is(err, services.ErrBlankQuestion),
		errors.Is(err, services.ErrBlankChoice),
		errors.Is(err, services.ErrInvalidChoice),
		errors.Is(err, services.ErrMissingSelection):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrVotingClosed):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		return err
	}
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := utils.StatusMessage(status)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   utils.StatusMessage(status),
		"message": message,
	})
}
