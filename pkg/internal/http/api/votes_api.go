package api

import (
	"errors"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/polls/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const MissingSelectionMessage = "You didn't select a choice."

func voteQuestion(c *fiber.Ctx) error {
	questionId, _ := c.ParamsInt("questionId", 0)

	account, ok := exts.GetAccount(c)
	if !ok {
		return c.Redirect(loginURL(questionURL(uint(questionId))))
	}

	var data struct {
		Choice *uint `json:"choice" form:"choice"`
	}
	if err := c.BodyParser(&data); err != nil {
		// A malformed selection is handled like no selection at all.
		data.Choice = nil
	}

	now := time.Now()
	vote, isUpdate, err := services.CastVote(uint(questionId), account.ID, data.Choice, now)
	switch {
	case errors.Is(err, services.ErrVotingClosed):
		exts.SetNotice(c, VotingClosedNotice)
		return c.Redirect(questionsURL())
	case errors.Is(err, services.ErrMissingSelection), errors.Is(err, services.ErrInvalidChoice):
		detail, err := services.GetQuestionDetail(uint(questionId), &account.ID, now)
		if err != nil {
			return exts.ServiceError(err)
		}
		return c.Status(fiber.StatusBadRequest).
			JSON(newDetailPayload(detail, now, lo.ToPtr(MissingSelectionMessage)))
	case err != nil:
		return exts.ServiceError(err)
	}

	log.Info().
		Uint("question", vote.QuestionID).
		Uint("account", account.ID).
		Bool("update", isUpdate).
		Str("request", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("Accepted a vote.")

	return c.Redirect(resultsURL(vote.QuestionID), fiber.StatusSeeOther)
}

func getMyVote(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	account, _ := exts.GetAccount(c)

	questionId, _ := c.ParamsInt("questionId", 0)

	vote, err := services.GetAccountVote(uint(questionId), account.ID)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(vote)
}
