package admin

import (
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/polls/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"git.solsynth.dev/hypernet/polls/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const (
	defaultTake = 20
	maxTake     = 100
)

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if len(raw) == 0 {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s: %v", key, err))
	}
	return &value, nil
}

func listQuestions(c *fiber.Ctx) error {
	if err := exts.EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
		return err
	}

	take := lo.Clamp(c.QueryInt("take", defaultTake), 1, maxTake)
	offset := max(c.QueryInt("offset", 0), 0)

	filter := services.QuestionFilter{Probe: c.Query("probe")}
	var err error
	if filter.PublishedAfter, err = queryTime(c, "published_after"); err != nil {
		return err
	}
	if filter.PublishedBefore, err = queryTime(c, "published_before"); err != nil {
		return err
	}

	items, count, err := services.ListQuestions(filter, take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	return c.JSON(fiber.Map{
		"count": count,
		"data": lo.Map(items, func(item models.Question, _ int) api.QuestionPayload {
			return api.NewQuestionPayload(item, now)
		}),
	})
}

func getQuestion(c *fiber.Ctx) error {
	if err := exts.EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
		return err
	}
	questionId, _ := c.ParamsInt("questionId", 0)

	question, err := services.GetQuestion(uint(questionId))
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(api.NewQuestionPayload(question, time.Now()))
}

func createQuestion(c *fiber.Ctx) error {
	if err := exts.EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
		return err
	}

	var data struct {
		QuestionText string     `json:"question_text" validate:"required,max=200"`
		PubDate      time.Time  `json:"pub_date" validate:"required"`
		EndDate      *time.Time `json:"end_date"`
		Choices      []string   `json:"choices" validate:"dive,max=200"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	question := models.Question{
		QuestionText: data.QuestionText,
		PubDate:      data.PubDate,
	}
	if data.EndDate != nil {
		question.EndDate = *data.EndDate
	}

	now := time.Now()
	question, err := services.NewQuestion(question, data.Choices, now)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(api.NewQuestionPayload(question, now))
}

func updateQuestion(c *fiber.Ctx) error {
	if err := exts.EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
		return err
	}
	questionId, _ := c.ParamsInt("questionId", 0)

	var data struct {
		QuestionText string    `json:"question_text" validate:"required,max=200"`
		PubDate      time.Time `json:"pub_date" validate:"required"`
		EndDate      time.Time `json:"end_date" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	question, err := services.GetQuestion(uint(questionId))
	if err != nil {
		return exts.ServiceError(err)
	}

	if question, err = services.EditQuestion(question, data.QuestionText, data.PubDate, data.EndDate); err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(api.NewQuestionPayload(question, time.Now()))
}

func deleteQuestion(c *fiber.Ctx) error {
	if err := exts.EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
		return err
	}
	questionId, _ := c.ParamsInt("questionId", 0)

	question, err := services.GetQuestion(uint(questionId))
	if err != nil {
		return exts.ServiceError(err)
	}

	if err := services.DeleteQuestion(question); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
