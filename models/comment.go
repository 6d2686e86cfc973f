package models

import "time"

type Comment struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	EntryID    uint      `json:"entry_id" gorm:"not null;index"`
	ParentID   *uint     `json:"parent_id,omitempty"`
	AuthorID   uint      `json:"author_id" gorm:"not null"`
	Author     *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content    string    `json:"content" gorm:"type:text"`
	IsSolution bool      `json:"is_solution" gorm:"default:false"`

	UpvotesCount   int `json:"upvotes_count" gorm:"default:0"`
	DownvotesCount int `json:"downvotes_count" gorm:"default:0"`

	IsEdited  bool `json:"is_edited" gorm:"default:false"`
	IsDeleted bool `json:"is_deleted" gorm:"default:false"`

	// Replies is a read-time projection assembled from ParentID; it is
	// never persisted.
	Replies []*Comment `json:"replies,omitempty" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
