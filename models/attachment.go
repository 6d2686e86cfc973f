package models

import "time"

type AttachmentType string

const (
	AttachmentImage    AttachmentType = "IMAGE"
	AttachmentDocument AttachmentType = "DOCUMENT"
	AttachmentVideo    AttachmentType = "VIDEO"
	AttachmentAudio    AttachmentType = "AUDIO"
	AttachmentArchive  AttachmentType = "ARCHIVE"
	AttachmentOther    AttachmentType = "OTHER"
)

func (t AttachmentType) Valid() bool {
	switch t {
	case AttachmentImage, AttachmentDocument, AttachmentVideo, AttachmentAudio, AttachmentArchive, AttachmentOther:
		return true
	}
	return false
}

// Attachment stores file metadata only; the bytes live in object storage
// under StorageKey. Size and type are fixed at creation.
type Attachment struct {
	ID               uint           `json:"id" gorm:"primarykey"`
	EntryID          uint           `json:"entry_id" gorm:"not null;index"`
	StorageKey       string         `json:"-" gorm:"uniqueIndex;not null"`
	OriginalFilename string         `json:"original_filename" gorm:"not null"`
	FileType         AttachmentType `json:"file_type"`
	FileSize         int64          `json:"file_size"`
	MimeType         string         `json:"mime_type"`
	Description      string         `json:"description"`
	UploadedByID     uint           `json:"uploaded_by_id"`
	UploadedBy       *User          `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID"`
	UploadedAt       time.Time      `json:"uploaded_at" gorm:"autoCreateTime"`
}
