package services

import (
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/database"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const DefaultCleanupRetention = 7 * 24 * time.Hour

func DoAutoDatabaseCleanup() {
	retention := viper.GetDuration("cleanup.retention")
	if retention <= 0 {
		retention = DefaultCleanupRetention
	}
	deadline := time.Now().Add(-retention)

	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")
	count, err := PurgeDeletedRecords(deadline)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when cleaning up database...")
		return
	}
	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}

// PurgeDeletedRecords hard deletes rows soft deleted before the deadline,
// children first so foreign keys never point at a purged parent.
func PurgeDeletedRecords(deadline time.Time) (int64, error) {
	var count int64
	for _, model := range lo.Reverse(append([]any{}, database.AutoMaintainRange...)) {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", deadline).
			Delete(model)
		if tx.Error != nil {
			return count, tx.Error
		}
		count += tx.RowsAffected
	}
	return count, nil
}
