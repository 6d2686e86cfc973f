package models

import "time"

type VoteType string

const (
	VoteUp   VoteType = "UP"
	VoteDown VoteType = "DOWN"
)

func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote holds at most one row per (entry, user); revotes mutate VoteType
// in place instead of inserting a second row.
type Vote struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	EntryID   uint      `json:"entry_id" gorm:"not null;uniqueIndex:idx_vote_entry_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_vote_entry_user"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	VoteType  VoteType  `json:"vote_type" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
