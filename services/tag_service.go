package services

import (
	"errors"
	"strings"

	"ts-knowledge-base/helper"
	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"

	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(req models.CreateTagRequest) (*models.Tag, error)
	GetTags() ([]models.Tag, error)
	GetTag(id uint) (*models.Tag, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// CreateTag is insert-first: a duplicate-key error means the tag already
// exists, which is reported as a conflict rather than racing a separate
// exists-check.
func (s *tagService) CreateTag(req models.CreateTagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.ErrorValidation{Message: "tag name is required"}
	}

	tag := &models.Tag{
		Name:        name,
		Slug:        helper.Slugify(name),
		Description: req.Description,
		IsFeatured:  req.IsFeatured,
	}

	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "tag already exists"}
		}
		return nil, err
	}

	return tag, nil
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}

func (s *tagService) GetTag(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "tag not found"}
	}
	return tag, err
}
