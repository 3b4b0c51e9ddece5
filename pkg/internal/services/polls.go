package services

import (
	"errors"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/database"
	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionDetail struct {
	Question       models.Question
	PreviousChoice *models.Choice
}

type QuestionResults struct {
	Question   models.Question
	TotalVotes int64
}

// CastVote records the account's choice for a question, replacing any earlier vote.
// The returned flag tells whether an existing vote was overwritten.
func CastVote(questionID, accountID uint, choiceID *uint, now time.Time) (models.Vote, bool, error) {
	var vote models.Vote
	var isUpdate bool

	err := database.C.Transaction(func(tx *gorm.DB) error {
		question, err := getQuestion(tx, questionID)
		if err != nil {
			return err
		}
		if !question.CanVote(now) {
			return ErrVotingClosed
		}
		if choiceID == nil {
			return ErrMissingSelection
		}
		choice, err := getChoice(tx, question.ID, *choiceID)
		if errors.Is(err, ErrChoiceNotFound) {
			return ErrInvalidChoice
		} else if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Vote{}).
			Where("question_id = ? AND account_id = ?", question.ID, accountID).
			Count(&existing).Error; err != nil {
			return err
		}
		isUpdate = existing > 0

		// The unique index on (question_id, account_id) turns a racing second insert into an update.
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "question_id"}, {Name: "account_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"choice_id":  choice.ID,
				"updated_at": now.UTC(),
				"deleted_at": nil,
			}),
		}).Create(&models.Vote{
			QuestionID: question.ID,
			AccountID:  accountID,
			ChoiceID:   choice.ID,
		}).Error; err != nil {
			return err
		}

		return tx.Preload("Choice").
			Where("question_id = ? AND account_id = ?", question.ID, accountID).
			First(&vote).Error
	})
	if err != nil {
		return vote, isUpdate, err
	}

	log.Debug().
		Uint("question", questionID).
		Uint("account", accountID).
		Uint("choice", vote.ChoiceID).
		Bool("update", isUpdate).
		Msg("Vote recorded.")

	return vote, isUpdate, nil
}

func GetAccountVote(questionID, accountID uint) (models.Vote, error) {
	var vote models.Vote
	if err := database.C.Preload("Choice").
		Where("question_id = ? AND account_id = ?", questionID, accountID).
		First(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vote, ErrVoteNotFound
		}
		return vote, err
	}
	return vote, nil
}

// GetQuestionDetail loads the voting form context. The previous choice is nil for
// anonymous callers and for accounts that have not voted on this question yet.
func GetQuestionDetail(questionID uint, accountID *uint, now time.Time) (QuestionDetail, error) {
	question, err := GetQuestion(questionID)
	if err != nil {
		return QuestionDetail{}, err
	}
	if !question.CanVote(now) {
		return QuestionDetail{Question: question}, ErrVotingClosed
	}

	detail := QuestionDetail{Question: question}
	if accountID == nil {
		return detail, nil
	}

	vote, err := GetAccountVote(question.ID, *accountID)
	if errors.Is(err, ErrVoteNotFound) {
		return detail, nil
	} else if err != nil {
		return detail, err
	}
	detail.PreviousChoice = vote.Choice

	return detail, nil
}

func GetQuestionResults(questionID uint, now time.Time) (QuestionResults, error) {
	question, err := GetPublishedQuestion(questionID, now)
	if err != nil {
		return QuestionResults{}, err
	}

	var tallies []struct {
		ChoiceID uint
		Count    int64
	}
	if err := database.C.Model(&models.Vote{}).
		Select("choice_id, COUNT(*) AS count").
		Where("question_id = ?", question.ID).
		Group("choice_id").
		Scan(&tallies).Error; err != nil {
		return QuestionResults{}, err
	}

	byChoices := make(map[uint]int64, len(tallies))
	for _, tally := range tallies {
		byChoices[tally.ChoiceID] = tally.Count
	}
	for idx := range question.Choices {
		question.Choices[idx].VoteCount = lo.ToPtr(byChoices[question.Choices[idx].ID])
	}

	return QuestionResults{
		Question: question,
		TotalVotes: lo.SumBy(question.Choices, func(item models.Choice) int64 {
			return lo.FromPtr(item.VoteCount)
		}),
	}, nil
}
