package api

import (
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"git.solsynth.dev/hypernet/polls/pkg/internal/services"
)

type QuestionPayload struct {
	models.Question

	Window models.WindowState `json:"window"`
}

func NewQuestionPayload(question models.Question, now time.Time) QuestionPayload {
	return QuestionPayload{Question: question, Window: question.Window(now)}
}

type QuestionDetailPayload struct {
	QuestionPayload

	PreviousChoice *models.Choice `json:"previous_choice"`
	ErrorMessage   *string        `json:"error_message,omitempty"`
}

type QuestionResultsPayload struct {
	QuestionPayload

	TotalVotes int64 `json:"total_votes"`
}

func newDetailPayload(detail services.QuestionDetail, now time.Time, errorMessage *string) QuestionDetailPayload {
	return QuestionDetailPayload{
		QuestionPayload: NewQuestionPayload(detail.Question, now),
		PreviousChoice:  detail.PreviousChoice,
		ErrorMessage:    errorMessage,
	}
}
