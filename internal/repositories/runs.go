package repositories

import (
	"context"
	"time"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"gorm.io/gorm"
)

type Runs struct {
	db *gorm.DB
}

func NewRunsRepository(db *gorm.DB) *Runs {
	return &Runs{db: db}
}

func (repo *Runs) Add(ctx context.Context, run models.SearchRun) error {
	return repo.db.WithContext(ctx).Create(&run).Error
}

func (repo *Runs) Recent(ctx context.Context, limit int) ([]models.SearchRun, error) {

	var runs []models.SearchRun
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (repo *Runs) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {

	result := repo.db.WithContext(ctx).Where("created_at < ?", expirationTime).
		Delete(&models.SearchRun{})
	return result.RowsAffected, result.Error
}
