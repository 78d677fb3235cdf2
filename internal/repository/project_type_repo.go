package repository

import (
	"go-pricing-sim/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectTypeRepository interface {
	FindAll() ([]model.ProjectType, error)
	FindByID(id uuid.UUID) (*model.ProjectType, error)
	Create(projectType *model.ProjectType) error
	Update(projectType *model.ProjectType) error
	Delete(id uuid.UUID) error
}

type projectTypeRepo struct {
	db *gorm.DB
}

func NewProjectTypeRepo(db *gorm.DB) ProjectTypeRepository {
	return &projectTypeRepo{db}
}

func (r *projectTypeRepo) FindAll() ([]model.ProjectType, error) {
	var types []model.ProjectType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *projectTypeRepo) FindByID(id uuid.UUID) (*model.ProjectType, error) {
	var projectType model.ProjectType
	if err := r.db.First(&projectType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &projectType, nil
}

func (r *projectTypeRepo) Create(projectType *model.ProjectType) error {
	return r.db.Create(projectType).Error
}

func (r *projectTypeRepo) Update(projectType *model.ProjectType) error {
	return r.db.Save(projectType).Error
}

func (r *projectTypeRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.ProjectType{}, "id = ?", id).Error
}
