package services

import (
	"errors"
	"strings"

	"git.solsynth.dev/hypernet/polls/pkg/internal/database"
	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"gorm.io/gorm"
)

func getChoice(tx *gorm.DB, questionID, choiceID uint) (models.Choice, error) {
	var choice models.Choice
	if err := tx.Where("id = ? AND question_id = ?", choiceID, questionID).First(&choice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return choice, ErrChoiceNotFound
		}
		return choice, err
	}
	return choice, nil
}

func GetChoice(questionID, choiceID uint) (models.Choice, error) {
	return getChoice(database.C, questionID, choiceID)
}

func AddChoice(question models.Question, text string) (models.Choice, error) {
	choice := models.Choice{
		ChoiceText: strings.TrimSpace(text),
		QuestionID: question.ID,
	}
	if len(choice.ChoiceText) == 0 {
		return choice, ErrBlankChoice
	}
	if err := database.C.Create(&choice).Error; err != nil {
		return choice, err
	}
	return choice, nil
}

func EditChoice(choice models.Choice, text string) (models.Choice, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return choice, ErrBlankChoice
	}
	choice.ChoiceText = text
	if err := database.C.Model(&choice).Update("choice_text", choice.ChoiceText).Error; err != nil {
		return choice, err
	}
	return choice, nil
}

// DeleteChoice also drops the votes cast for it, those voters are back to not voted.
func DeleteChoice(choice models.Choice) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("choice_id = ?", choice.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&choice).Error
	})
}
