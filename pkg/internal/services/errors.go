package services

import "errors"

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrChoiceNotFound   = errors.New("choice not found")
	ErrVoteNotFound     = errors.New("vote not found")
	ErrVotingClosed     = errors.New("voting is not allowed")
	ErrMissingSelection = errors.New("no choice selected")
	ErrInvalidChoice    = errors.New("choice does not belong to this question")
	ErrInvalidWindow    = errors.New("end date must not be before publish date")
	ErrBlankQuestion    = errors.New("question text must not be blank")
	ErrBlankChoice      = errors.New("choice text must not be blank")
)
