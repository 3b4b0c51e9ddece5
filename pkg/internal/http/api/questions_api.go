package api

import (
	"errors"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"git.solsynth.dev/hypernet/polls/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const VotingClosedNotice = "Voting is not allowed!"

func listQuestions(c *fiber.Ctx) error {
	now := time.Now()

	items, err := services.ListPublishedQuestions(now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data": lo.Map(items, func(item models.Question, _ int) QuestionPayload {
			return NewQuestionPayload(item, now)
		}),
		"notice": lo.EmptyableToPtr(exts.ConsumeNotice(c)),
	})
}

func getQuestionDetail(c *fiber.Ctx) error {
	questionId, _ := c.ParamsInt("questionId", 0)
	now := time.Now()

	var accountId *uint
	if account, ok := exts.GetAccount(c); ok {
		accountId = &account.ID
	}

	detail, err := services.GetQuestionDetail(uint(questionId), accountId, now)
	if errors.Is(err, services.ErrVotingClosed) {
		exts.SetNotice(c, VotingClosedNotice)
		return c.Redirect(questionsURL())
	} else if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(newDetailPayload(detail, now, nil))
}

func getQuestionResults(c *fiber.Ctx) error {
	questionId, _ := c.ParamsInt("questionId", 0)
	now := time.Now()

	results, err := services.GetQuestionResults(uint(questionId), now)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(QuestionResultsPayload{
		QuestionPayload: NewQuestionPayload(results.Question, now),
		TotalVotes:      results.TotalVotes,
	})
}
