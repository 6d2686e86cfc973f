package repositories

import (
	"fmt"

	"ts-knowledge-base/models"

	"gorm.io/gorm"
)

type EntryRepository interface {
	Create(entry *models.TroubleshootingEntry) error
	GetByID(id uint) (*models.TroubleshootingEntry, error)
	GetBySlug(slug string) (*models.TroubleshootingEntry, error)
	GetList(params models.EntryListParams) ([]models.TroubleshootingEntry, int64, error)
	Update(entry *models.TroubleshootingEntry) error
	UpdateVoteCounts(id uint, upvotes, downvotes int64) error
	UpdateCommentsCount(id uint, count int64) error
	IncrementViews(id uint) error
	ReplaceTags(entry *models.TroubleshootingEntry, tags []models.Tag) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) EntryRepository
}

type entryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) WithTx(tx *gorm.DB) EntryRepository {
	return &entryRepository{db: tx}
}

func (r *entryRepository) Create(entry *models.TroubleshootingEntry) error {
	return r.db.Create(entry).Error
}

func (r *entryRepository) GetByID(id uint) (*models.TroubleshootingEntry, error) {
	var entry models.TroubleshootingEntry
	err := r.db.Preload("Author").
		Preload("Category").
		Preload("Tags").
		Preload("VerifiedBy").
		First(&entry, id).Error
	return &entry, err
}

func (r *entryRepository) GetBySlug(slug string) (*models.TroubleshootingEntry, error) {
	var entry models.TroubleshootingEntry
	err := r.db.Preload("Author").
		Preload("Category").
		Preload("Tags").
		Preload("VerifiedBy").
		Where("slug = ?", slug).
		First(&entry).Error
	return &entry, err
}

var entrySortColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"upvotes_count": true,
	"views_count":   true,
	"priority":      true,
	"title":         true,
}

func (r *entryRepository) GetList(params models.EntryListParams) ([]models.TroubleshootingEntry, int64, error) {
	var entries []models.TroubleshootingEntry
	var total int64

	query := r.db.Model(&models.TroubleshootingEntry{}).
		Preload("Author").
		Preload("Category").
		Preload("Tags")

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CategoryID > 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.AuthorID > 0 {
		query = query.Where("author_id = ?", params.AuthorID)
	}
	if params.Verified != nil {
		query = query.Where("is_verified = ?", *params.Verified)
	}
	if params.TagID > 0 {
		query = query.Joins("JOIN entry_tags ON entry_tags.troubleshooting_entry_id = troubleshooting_entries.id").
			Where("entry_tags.tag_id = ?", params.TagID)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR problem_description ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	if !entrySortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	offset := (params.Page - 1) * params.Limit
	err := query.Offset(offset).Limit(params.Limit).Find(&entries).Error

	return entries, total, err
}

func (r *entryRepository) Update(entry *models.TroubleshootingEntry) error {
	return r.db.Save(entry).Error
}

// UpdateVoteCounts writes the recomputed counters without touching
// updated_at; a vote is not an edit.
func (r *entryRepository) UpdateVoteCounts(id uint, upvotes, downvotes int64) error {
	return r.db.Model(&models.TroubleshootingEntry{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"upvotes_count":   upvotes,
			"downvotes_count": downvotes,
		}).Error
}

func (r *entryRepository) UpdateCommentsCount(id uint, count int64) error {
	return r.db.Model(&models.TroubleshootingEntry{}).
		Where("id = ?", id).
		UpdateColumn("comments_count", count).Error
}

func (r *entryRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.TroubleshootingEntry{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (r *entryRepository) ReplaceTags(entry *models.TroubleshootingEntry, tags []models.Tag) error {
	return r.db.Model(entry).Association("Tags").Replace(tags)
}

func (r *entryRepository) Delete(id uint) error {
	return r.db.Delete(&models.TroubleshootingEntry{}, id).Error
}
