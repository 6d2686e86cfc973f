package repositories

import (
	"ts-knowledge-base/models"

	"gorm.io/gorm"
)

type AttachmentRepository interface {
	Create(attachment *models.Attachment) error
	GetByID(id uint) (*models.Attachment, error)
	ListByEntry(entryID uint) ([]models.Attachment, error)
	Delete(id uint) error
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

func (r *attachmentRepository) GetByID(id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	err := r.db.Preload("UploadedBy").First(&attachment, id).Error
	return &attachment, err
}

func (r *attachmentRepository) ListByEntry(entryID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.Where("entry_id = ?", entryID).
		Preload("UploadedBy").
		Order("uploaded_at").
		Find(&attachments).Error
	return attachments, err
}

func (r *attachmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Attachment{}, id).Error
}
