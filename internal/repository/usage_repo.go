package repository

import (
	"go-pricing-sim/internal/model"

	"gorm.io/gorm"
)

type UsageRepository interface {
	Create(entry *model.UsageEntry) error
	FindRecent(limit int) ([]model.UsageEntry, error)
}

type usageRepo struct {
	db *gorm.DB
}

func NewUsageRepo(db *gorm.DB) UsageRepository {
	return &usageRepo{db}
}

func (r *usageRepo) Create(entry *model.UsageEntry) error {
	return r.db.Create(entry).Error
}

func (r *usageRepo) FindRecent(limit int) ([]model.UsageEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []model.UsageEntry
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
