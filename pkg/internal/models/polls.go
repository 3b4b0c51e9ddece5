package models

import "time"

type Question struct {
	BaseModel

	QuestionText string    `json:"question_text" gorm:"size:200"`
	PubDate      time.Time `json:"pub_date" gorm:"index"`
	EndDate      time.Time `json:"end_date"`
	Choices      []Choice  `json:"choices,omitempty"`
	Votes        []Vote    `json:"-"`
}

type Choice struct {
	BaseModel

	ChoiceText string `json:"choice_text" gorm:"size:200"`
	QuestionID uint   `json:"question_id" gorm:"index"`

	// Derived from the vote rows, left nil outside the result queries.
	VoteCount *int64 `json:"votes,omitempty" gorm:"-"`
}

// Vote is the current choice of one account for one question.
// Re-voting overwrites the row instead of appending a new one.
type Vote struct {
	BaseModel

	QuestionID uint    `json:"question_id" gorm:"uniqueIndex:idx_vote_question_account"`
	AccountID  uint    `json:"account_id" gorm:"uniqueIndex:idx_vote_question_account"`
	ChoiceID   uint    `json:"choice_id" gorm:"index"`
	Choice     *Choice `json:"choice,omitempty"`
}
