package database

import (
	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"gorm.io/gorm"
)

// AutoMaintainRange lists the models in parent-to-child order.
var AutoMaintainRange = []any{
	&models.Question{},
	&models.Choice{},
	&models.Vote{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(AutoMaintainRange...); err != nil {
		return err
	}

	return nil
}
