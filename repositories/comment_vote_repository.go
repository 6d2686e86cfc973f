package repositories

import (
	"ts-knowledge-base/models"

	"gorm.io/gorm"
)

type CommentVoteRepository interface {
	GetByUserAndComment(userID, commentID uint) (*models.CommentVote, error)
	Create(vote *models.CommentVote) error
	Update(vote *models.CommentVote) error
	CountByType(commentID uint, voteType models.VoteType) (int64, error)
	WithTx(tx *gorm.DB) CommentVoteRepository
}

type commentVoteRepository struct {
	db *gorm.DB
}

func NewCommentVoteRepository(db *gorm.DB) CommentVoteRepository {
	return &commentVoteRepository{db: db}
}

func (r *commentVoteRepository) WithTx(tx *gorm.DB) CommentVoteRepository {
	return &commentVoteRepository{db: tx}
}

func (r *commentVoteRepository) GetByUserAndComment(userID, commentID uint) (*models.CommentVote, error) {
	var vote models.CommentVote
	err := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&vote).Error
	return &vote, err
}

func (r *commentVoteRepository) Create(vote *models.CommentVote) error {
	return r.db.Create(vote).Error
}

func (r *commentVoteRepository) Update(vote *models.CommentVote) error {
	return r.db.Save(vote).Error
}

func (r *commentVoteRepository) CountByType(commentID uint, voteType models.VoteType) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentVote{}).
		Where("comment_id = ? AND vote_type = ?", commentID, voteType).
		Count(&count).Error
	return count, err
}
