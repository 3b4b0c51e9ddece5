package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/database"
	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const PublishedQuestionsLimit = 5

type QuestionFilter struct {
	Probe           string
	PublishedAfter  *time.Time
	PublishedBefore *time.Time
}

func preloadChoices(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// ListPublishedQuestions returns the latest published questions, newest first.
// Every call runs a fresh query, so the listing can be restarted at will.
func ListPublishedQuestions(now time.Time) ([]models.Question, error) {
	var questions []models.Question
	err := database.C.
		Where("pub_date <= ?", now.UTC()).
		Order("pub_date DESC").
		Order("id DESC").
		Limit(PublishedQuestionsLimit).
		Find(&questions).Error

	return questions, err
}

func getQuestion(tx *gorm.DB, id uint) (models.Question, error) {
	var question models.Question
	if err := preloadChoices(tx).Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return question, ErrQuestionNotFound
		}
		return question, err
	}
	return question, nil
}

func GetQuestion(id uint) (models.Question, error) {
	return getQuestion(database.C, id)
}

// GetPublishedQuestion hides questions whose publish date is still ahead.
func GetPublishedQuestion(id uint, now time.Time) (models.Question, error) {
	question, err := GetQuestion(id)
	if err != nil {
		return question, err
	}
	if !question.IsPublished(now) {
		return question, ErrQuestionNotFound
	}
	return question, nil
}

func (v QuestionFilter) apply(tx *gorm.DB) *gorm.DB {
	if len(v.Probe) > 0 {
		tx = tx.Where("question_text LIKE ?", "%"+v.Probe+"%")
	}
	if v.PublishedAfter != nil {
		tx = tx.Where("pub_date >= ?", v.PublishedAfter.UTC())
	}
	if v.PublishedBefore != nil {
		tx = tx.Where("pub_date <= ?", v.PublishedBefore.UTC())
	}
	return tx
}

func ListQuestions(filter QuestionFilter, take int, offset int) ([]models.Question, int64, error) {
	var count int64
	if err := filter.apply(database.C.Model(&models.Question{})).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var questions []models.Question
	if err := preloadChoices(filter.apply(database.C)).
		Order("pub_date DESC").
		Order("id DESC").
		Offset(offset).
		Limit(take).
		Find(&questions).Error; err != nil {
		return nil, count, err
	}

	return questions, count, nil
}

func ValidateQuestion(question models.Question) error {
	if len(question.QuestionText) == 0 {
		return ErrBlankQuestion
	}
	if question.EndDate.Before(question.PubDate) {
		return ErrInvalidWindow
	}
	return nil
}

// NewQuestion creates the question together with its choices. A missing end date
// falls back to the creation time, blank choice slots are skipped.
func NewQuestion(question models.Question, choices []string, now time.Time) (models.Question, error) {
	if question.EndDate.IsZero() {
		question.EndDate = now
	}
	question.QuestionText = strings.TrimSpace(question.QuestionText)
	question.PubDate = question.PubDate.UTC()
	question.EndDate = question.EndDate.UTC()
	if err := ValidateQuestion(question); err != nil {
		return question, err
	}

	question.Choices = lo.FilterMap(choices, func(item string, _ int) (models.Choice, bool) {
		item = strings.TrimSpace(item)
		return models.Choice{ChoiceText: item}, len(item) > 0
	})

	if err := database.C.Create(&question).Error; err != nil {
		return question, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

func EditQuestion(question models.Question, text string, pubDate, endDate time.Time) (models.Question, error) {
	question.QuestionText = strings.TrimSpace(text)
	question.PubDate = pubDate.UTC()
	question.EndDate = endDate.UTC()
	if err := ValidateQuestion(question); err != nil {
		return question, err
	}

	if err := database.C.Model(&question).Select("QuestionText", "PubDate", "EndDate").Updates(&question).Error; err != nil {
		return question, err
	}
	return question, nil
}

// DeleteQuestion removes the question with everything hanging off it.
// Votes are dropped for good, questions and choices stay soft deleted
// until the cleanup job purges them.
func DeleteQuestion(question models.Question) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("question_id = ?", question.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
}
