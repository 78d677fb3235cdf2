package repository

import (
	"go-pricing-sim/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientTypeRepository interface {
	FindAll() ([]model.ClientType, error)
	FindByID(id uuid.UUID) (*model.ClientType, error)
	Create(clientType *model.ClientType) error
	Update(clientType *model.ClientType) error
	Delete(id uuid.UUID) error
}

type clientTypeRepo struct {
	db *gorm.DB
}

func NewClientTypeRepo(db *gorm.DB) ClientTypeRepository {
	return &clientTypeRepo{db}
}

func (r *clientTypeRepo) FindAll() ([]model.ClientType, error) {
	var types []model.ClientType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *clientTypeRepo) FindByID(id uuid.UUID) (*model.ClientType, error) {
	var clientType model.ClientType
	if err := r.db.First(&clientType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &clientType, nil
}

func (r *clientTypeRepo) Create(clientType *model.ClientType) error {
	return r.db.Create(clientType).Error
}

func (r *clientTypeRepo) Update(clientType *model.ClientType) error {
	return r.db.Save(clientType).Error
}

func (r *clientTypeRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.ClientType{}, "id = ?", id).Error
}
