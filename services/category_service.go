package services

import (
	"errors"

	"ts-knowledge-base/helper"
	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"

	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(req models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(id uint, req models.UpdateCategoryRequest) (*models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetTree() ([]*models.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(req models.CreateCategoryRequest) (*models.Category, error) {
	if req.ParentID != nil {
		if _, err := s.categoryRepo.GetByID(*req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorValidation{Message: "parent category not found"}
			}
			return nil, err
		}
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        helper.Slugify(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
		Order:       req.Order,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a category with this name already exists"}
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "category not found"}
		}
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			return nil, models.ErrorValidation{Message: "category cannot be its own parent"}
		}
		if _, err := s.categoryRepo.GetByID(*req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorValidation{Message: "parent category not found"}
			}
			return nil, err
		}
		category.ParentID = req.ParentID
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.Order != nil {
		category.Order = *req.Order
	}

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a category with this name already exists"}
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "category not found"}
	}
	return category, err
}

func (s *categoryService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetTree projects the flat parent-id rows into a nested structure at
// read time; the hierarchy is never stored.
func (s *categoryService) GetTree() ([]*models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	var roots []*models.Category
	for i := range categories {
		c := &categories[i]
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Subcategories = append(parent.Subcategories, c)
		} else {
			roots = append(roots, c)
		}
	}

	return roots, nil
}

func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "category not found"}
		}
		return err
	}

	count, err := s.categoryRepo.CountEntries(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrorValidation{Message: "category still has entries"}
	}

	return s.categoryRepo.Delete(id)
}
