package models

import (
	"time"

	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type EntryStatus string

const (
	StatusDraft         EntryStatus = "DRAFT"
	StatusPublished     EntryStatus = "PUBLISHED"
	StatusArchived      EntryStatus = "ARCHIVED"
	StatusPendingReview EntryStatus = "PENDING_REVIEW"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived, StatusPendingReview:
		return true
	}
	return false
}

type TroubleshootingEntry struct {
	ID                 uint        `json:"id" gorm:"primarykey"`
	Title              string      `json:"title" gorm:"not null"`
	Slug               string      `json:"slug" gorm:"uniqueIndex;not null"`
	ProblemDescription string      `json:"problem_description" gorm:"type:text;not null"`
	Solution           string      `json:"solution" gorm:"type:text"`

	StepsToReproduce   string `json:"steps_to_reproduce" gorm:"type:text"`
	EnvironmentDetails string `json:"environment_details" gorm:"type:text"`
	ErrorMessages      string `json:"error_messages" gorm:"type:text"`
	Prerequisites      string `json:"prerequisites" gorm:"type:text"`
	EstimatedTime      *int   `json:"estimated_time,omitempty"`

	CategoryID uint     `json:"category_id" gorm:"not null"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID"`
	Tags       []Tag    `json:"tags" gorm:"many2many:entry_tags;"`

	AuthorID uint        `json:"author_id" gorm:"not null"`
	Author   User        `json:"author" gorm:"foreignKey:AuthorID"`
	Priority Priority    `json:"priority" gorm:"default:'MEDIUM'"`
	Status   EntryStatus `json:"status" gorm:"default:'PUBLISHED'"`

	IsVerified        bool       `json:"is_verified" gorm:"default:false"`
	VerifiedByID      *uint      `json:"verified_by_id,omitempty"`
	VerifiedBy        *User      `json:"verified_by,omitempty" gorm:"foreignKey:VerifiedByID"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	VerificationNotes string     `json:"verification_notes"`

	ViewsCount     int `json:"views_count" gorm:"default:0"`
	UpvotesCount   int `json:"upvotes_count" gorm:"default:0"`
	DownvotesCount int `json:"downvotes_count" gorm:"default:0"`
	CommentsCount  int `json:"comments_count" gorm:"default:0"`

	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Score is derived on read, never stored.
func (e *TroubleshootingEntry) Score() int {
	return e.UpvotesCount - e.DownvotesCount
}
