package services

import (
	"testing"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/database/dbtest"
	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
)

func TestPurgeDeletedRecords(t *testing.T) {
	db := dbtest.Setup(t)
	now := time.Now().UTC().Truncate(time.Second)
	kept := createTestQuestion(t, "Kept", now, -days(1), days(1), 2)
	removed := createTestQuestion(t, "Removed", now, -days(1), days(1), 3)

	if err := DeleteQuestion(removed); err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}

	count, err := PurgeDeletedRecords(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("PurgeDeletedRecords() error = %v", err)
	}
	if count != 0 {
		t.Errorf("records deleted within the retention must stay, purged %d", count)
	}

	count, err = PurgeDeletedRecords(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("PurgeDeletedRecords() error = %v", err)
	}
	if count != 4 {
		t.Errorf("expected the question and its 3 choices to be purged, purged %d", count)
	}

	var questions, choices int64
	db.Unscoped().Model(&models.Question{}).Count(&questions)
	db.Unscoped().Model(&models.Choice{}).Count(&choices)
	if questions != 1 || choices != 2 {
		t.Errorf("expected only %q to remain, got %d questions and %d choices", kept.QuestionText, questions, choices)
	}
}
