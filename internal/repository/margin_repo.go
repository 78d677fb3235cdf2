package repository

import (
	"go-pricing-sim/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarginRepository interface {
	FindAll() ([]model.Margin, error)
	FindActive() ([]model.Margin, error)
	FindByID(id uuid.UUID) (*model.Margin, error)
	// FindByPercentage returns the live row with that percentage, used
	// for the duplicate check at write time.
	FindByPercentage(percentage int) (*model.Margin, error)
	Create(margin *model.Margin) error
	Update(margin *model.Margin) error
	Delete(id uuid.UUID) error
}

type marginRepo struct {
	db *gorm.DB
}

func NewMarginRepo(db *gorm.DB) MarginRepository {
	return &marginRepo{db}
}

func (r *marginRepo) FindAll() ([]model.Margin, error) {
	var margins []model.Margin
	err := r.db.Order("percentage ASC").Find(&margins).Error
	return margins, err
}

func (r *marginRepo) FindActive() ([]model.Margin, error) {
	var margins []model.Margin
	err := r.db.Where("is_active = ?", true).Order("percentage ASC").Find(&margins).Error
	return margins, err
}

func (r *marginRepo) FindByID(id uuid.UUID) (*model.Margin, error) {
	var margin model.Margin
	if err := r.db.First(&margin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &margin, nil
}

func (r *marginRepo) FindByPercentage(percentage int) (*model.Margin, error) {
	var margin model.Margin
	if err := r.db.Where("percentage = ?", percentage).First(&margin).Error; err != nil {
		return nil, err
	}
	return &margin, nil
}

func (r *marginRepo) Create(margin *model.Margin) error {
	return r.db.Create(margin).Error
}

func (r *marginRepo) Update(margin *model.Margin) error {
	return r.db.Save(margin).Error
}

func (r *marginRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Margin{}, "id = ?", id).Error
}
