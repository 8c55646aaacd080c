package repository

import (
	"gorm.io/gorm"

	"github.com/fixitlab/buyback-api/models"
)

type syncLogRepository struct {
	*BaseRepository[models.SyncLog, models.SyncLogFilter]
}

func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{
		BaseRepository: NewBaseRepository[models.SyncLog, models.SyncLogFilter](db),
	}
}
