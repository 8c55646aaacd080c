package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixitlab/buyback-api/models"
)

type adminRepository struct {
	*BaseRepository[models.Admin, models.AdminFilter]
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{
		BaseRepository: NewBaseRepository[models.Admin, models.AdminFilter](db),
	}
}

func (r *adminRepository) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.getDB(ctx).Where("username = ?", username).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
