package repositories

import (
	"ts-knowledge-base/models"

	"gorm.io/gorm"
)

type VoteRepository interface {
	GetByUserAndEntry(userID, entryID uint) (*models.Vote, error)
	Create(vote *models.Vote) error
	Update(vote *models.Vote) error
	CountByType(entryID uint, voteType models.VoteType) (int64, error)
	WithTx(tx *gorm.DB) VoteRepository
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) WithTx(tx *gorm.DB) VoteRepository {
	return &voteRepository{db: tx}
}

func (r *voteRepository) GetByUserAndEntry(userID, entryID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("user_id = ? AND entry_id = ?", userID, entryID).First(&vote).Error
	return &vote, err
}

func (r *voteRepository) Create(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

func (r *voteRepository) Update(vote *models.Vote) error {
	return r.db.Save(vote).Error
}

func (r *voteRepository) CountByType(entryID uint, voteType models.VoteType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).
		Where("entry_id = ? AND vote_type = ?", entryID, voteType).
		Count(&count).Error
	return count, err
}
