package repositories

import (
	"errors"

	"ts-knowledge-base/models"

	"gorm.io/gorm"
)

// EntryRevisionRepository is append-only: revisions are never updated or
// deleted once written.
type EntryRevisionRepository interface {
	Create(revision *models.EntryRevision) error
	MaxRevisionNumber(entryID uint) (int, error)
	GetByEntry(entryID uint) ([]models.EntryRevision, error)
	WithTx(tx *gorm.DB) EntryRevisionRepository
}

type entryRevisionRepository struct {
	db *gorm.DB
}

func NewEntryRevisionRepository(db *gorm.DB) EntryRevisionRepository {
	return &entryRevisionRepository{db: db}
}

func (r *entryRevisionRepository) WithTx(tx *gorm.DB) EntryRevisionRepository {
	return &entryRevisionRepository{db: tx}
}

func (r *entryRevisionRepository) Create(revision *models.EntryRevision) error {
	return r.db.Create(revision).Error
}

// MaxRevisionNumber returns 0 when the entry has no revisions yet.
func (r *entryRevisionRepository) MaxRevisionNumber(entryID uint) (int, error) {
	var revision models.EntryRevision
	err := r.db.Where("entry_id = ?", entryID).
		Order("revision_number desc").
		First(&revision).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return revision.RevisionNumber, nil
}

func (r *entryRevisionRepository) GetByEntry(entryID uint) ([]models.EntryRevision, error) {
	var revisions []models.EntryRevision
	err := r.db.Where("entry_id = ?", entryID).
		Preload("RevisedBy").
		Order("revision_number desc").
		Find(&revisions).Error
	return revisions, err
}
