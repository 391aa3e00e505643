package db

import (
	"time"

	"github.com/lunarialabs/lunaria/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

// ListByUser returns the user's cycles in chronological order with their
// day logs preloaded, oldest day first.
func (repo *CycleRepository) ListByUser(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Preload("Days", func(query *gorm.DB) *gorm.DB {
			return query.Order("date ASC, id ASC")
		}).
		Order("start_date ASC, created_at ASC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) Create(record *models.Cycle) error {
	return repo.database.Create(record).Error
}

func (repo *CycleRepository) UpdateLength(cycleID string, length int) error {
	return repo.database.Model(&models.Cycle{}).Where("id = ?", cycleID).Update("length", length).Error
}

func (repo *CycleRepository) Close(cycleID string, endDate time.Time, periodLength int) error {
	return repo.database.Model(&models.Cycle{}).Where("id = ?", cycleID).Updates(map[string]any{
		"end_date":      endDate,
		"period_length": periodLength,
	}).Error
}

func (repo *CycleRepository) FindDay(cycleID string, dayStart time.Time, dayEnd time.Time) (models.CycleDay, bool, error) {
	entry := models.CycleDay{}
	result := repo.database.
		Where("cycle_id = ? AND date >= ? AND date < ?", cycleID, dayStart, dayEnd).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CycleDay{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleDay{}, false, nil
	}
	return entry, true, nil
}

func (repo *CycleRepository) CreateDay(entry *models.CycleDay) error {
	return repo.database.Create(entry).Error
}

func (repo *CycleRepository) SaveDay(entry *models.CycleDay) error {
	return repo.database.Save(entry).Error
}

func (repo *CycleRepository) DeleteDay(cycleID string, dayStart time.Time, dayEnd time.Time) error {
	return repo.database.
		Where("cycle_id = ? AND date >= ? AND date < ?", cycleID, dayStart, dayEnd).
		Delete(&models.CycleDay{}).Error
}
