package admin

import (
	"git.solsynth.dev/hypernet/polls/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"git.solsynth.dev/hypernet/polls/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type choiceRequest struct {
	ChoiceText string `json:"choice_text" validate:"required,max=200"`
}

func createChoice(c *fiber.Ctx) error {
	if err := exts.EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
		return err
	}
	questionId, _ := c.ParamsInt("questionId", 0)

	var data choiceRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	question, err := services.GetQuestion(uint(questionId))
	if err != nil {
		return exts.ServiceError(err)
	}

	choice, err := services.AddChoice(question, data.ChoiceText)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(choice)
}

func updateChoice(c *fiber.Ctx) error {
	if err := exts.EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
		return err
	}
	questionId, _ := c.ParamsInt("questionId", 0)
	choiceId, _ := c.ParamsInt("choiceId", 0)

	var data choiceRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	choice, err := services.GetChoice(uint(questionId), uint(choiceId))
	if err != nil {
		return exts.ServiceError(err)
	}

	if choice, err = services.EditChoice(choice, data.ChoiceText); err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(choice)
}

func deleteChoice(c *fiber.Ctx) error {
	if err := exts.EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
		return err
	}
	questionId, _ := c.ParamsInt("questionId", 0)
	choiceId, _ := c.ParamsInt("choiceId", 0)

	choice, err := services.GetChoice(uint(questionId), uint(choiceId))
	if err != nil {
		return exts.ServiceError(err)
	}

	if err := services.DeleteChoice(choice); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
