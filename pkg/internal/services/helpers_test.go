package services

import (
	"fmt"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
)

func createTestQuestion(t *testing.T, text string, now time.Time, pubOffset, endOffset time.Duration, choices int) models.Question {
	t.Helper()

	var labels []string
	for i := 1; i <= choices; i++ {
		labels = append(labels, fmt.Sprintf("test choice %d", i))
	}

	question, err := NewQuestion(models.Question{
		QuestionText: text,
		PubDate:      now.Add(pubOffset),
		EndDate:      now.Add(endOffset),
	}, labels, now)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return question
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
