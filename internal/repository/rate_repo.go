package repository

import (
	"go-pricing-sim/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateRepository interface {
	FindAll() ([]model.DailyRate, error)
	FindActive() ([]model.DailyRate, error)
	FindByID(id uuid.UUID) (*model.DailyRate, error)
	Create(rate *model.DailyRate) error
	Update(rate *model.DailyRate) error
	Delete(id uuid.UUID) error
}

type rateRepo struct {
	db *gorm.DB
}

func NewRateRepo(db *gorm.DB) RateRepository {
	return &rateRepo{db}
}

func (r *rateRepo) FindAll() ([]model.DailyRate, error) {
	var rates []model.DailyRate
	err := r.db.Order("role_name ASC").Find(&rates).Error
	return rates, err
}

func (r *rateRepo) FindActive() ([]model.DailyRate, error) {
	var rates []model.DailyRate
	err := r.db.Where("is_active = ?", true).Order("role_name ASC").Find(&rates).Error
	return rates, err
}

func (r *rateRepo) FindByID(id uuid.UUID) (*model.DailyRate, error) {
	var rate model.DailyRate
	if err := r.db.First(&rate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepo) Create(rate *model.DailyRate) error {
	return r.db.Create(rate).Error
}

func (r *rateRepo) Update(rate *model.DailyRate) error {
	return r.db.Save(rate).Error
}

func (r *rateRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.DailyRate{}, "id = ?", id).Error
}
