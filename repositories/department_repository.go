package repositories

import (
	"ts-knowledge-base/models"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(department *models.Department) error
	GetByID(id uint) (*models.Department, error)
	GetAll() ([]models.Department, error)
	Update(department *models.Department) error
	Delete(id uint) error
	CountMembers(id uint) (int64, error)
	WithTx(tx *gorm.DB) DepartmentRepository
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) WithTx(tx *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: tx}
}

func (r *departmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

func (r *departmentRepository) GetByID(id uint) (*models.Department, error) {
	var department models.Department
	err := r.db.Preload("TeamLeader").Preload("Members").First(&department, id).Error
	return &department, err
}

func (r *departmentRepository) GetAll() ([]models.Department, error) {
	var departments []models.Department
	err := r.db.Preload("TeamLeader").Order("name").Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) Update(department *models.Department) error {
	return r.db.Save(department).Error
}

func (r *departmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Department{}, id).Error
}

func (r *departmentRepository) CountMembers(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("department_id = ?", id).Count(&count).Error
	return count, err
}
