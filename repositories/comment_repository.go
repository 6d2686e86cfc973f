package repositories

import (
	"ts-knowledge-base/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	ListByEntry(entryID uint) ([]models.Comment, error)
	Update(comment *models.Comment) error
	UpdateVoteCounts(id uint, upvotes, downvotes int64) error
	CountActiveByEntry(entryID uint) (int64, error)
	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, id).Error
	return &comment, err
}

// ListByEntry returns the flat comment set for an entry, soft-deleted
// rows included so reply chains stay intact. Sibling order is engagement
// first, then age.
func (r *commentRepository) ListByEntry(entryID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("entry_id = ?", entryID).
		Preload("Author").
		Order("upvotes_count desc, created_at asc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) UpdateVoteCounts(id uint, upvotes, downvotes int64) error {
	return r.db.Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"upvotes_count":   upvotes,
			"downvotes_count": downvotes,
		}).Error
}

func (r *commentRepository) CountActiveByEntry(entryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("entry_id = ? AND is_deleted = ?", entryID, false).
		Count(&count).Error
	return count, err
}
