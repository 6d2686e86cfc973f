package models

import "time"

type CommentVote struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CommentID uint      `json:"comment_id" gorm:"not null;uniqueIndex:idx_comment_vote_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_comment_vote_user"`
	VoteType  VoteType  `json:"vote_type" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
