package services

import (
	"errors"

	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"

	"gorm.io/gorm"
)

type VoteService interface {
	CastVote(userID, entryID uint, voteType models.VoteType) (*models.VoteResult, error)
	CastCommentVote(userID, commentID uint, voteType models.VoteType) (*models.CommentVote, error)
	GetUserVote(userID, entryID uint) (*models.Vote, error)
}

type voteService struct {
	db              *gorm.DB
	entryRepo       repositories.EntryRepository
	voteRepo        repositories.VoteRepository
	commentRepo     repositories.CommentRepository
	commentVoteRepo repositories.CommentVoteRepository
}

func NewVoteService(
	db *gorm.DB,
	entryRepo repositories.EntryRepository,
	voteRepo repositories.VoteRepository,
	commentRepo repositories.CommentRepository,
	commentVoteRepo repositories.CommentVoteRepository,
) VoteService {
	return &voteService{
		db:              db,
		entryRepo:       entryRepo,
		voteRepo:        voteRepo,
		commentRepo:     commentRepo,
		commentVoteRepo: commentVoteRepo,
	}
}

// CastVote upserts the (user, entry) vote and rewrites both counters
// from the authoritative vote set inside the same transaction. Counters
// are recomputed, not incremented, so any prior drift heals itself.
// Casting the same type twice is an idempotent success.
func (s *voteService) CastVote(userID, entryID uint, voteType models.VoteType) (*models.VoteResult, error) {
	if !voteType.Valid() {
		return nil, models.ErrorValidation{Message: "vote_type must be UP or DOWN"}
	}

	var result models.VoteResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entryRepo := s.entryRepo.WithTx(tx)
		voteRepo := s.voteRepo.WithTx(tx)

		entry, err := entryRepo.GetByID(entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrorNotFound{Message: "entry not found"}
			}
			return err
		}

		vote, err := voteRepo.GetByUserAndEntry(userID, entryID)
		switch {
		case err == nil:
			if vote.VoteType != voteType {
				vote.VoteType = voteType
				if err := voteRepo.Update(vote); err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = &models.Vote{EntryID: entryID, UserID: userID, VoteType: voteType}
			if err := voteRepo.Create(vote); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return models.ErrorConflict{Message: "vote was cast concurrently, retry the operation"}
				}
				return err
			}
		default:
			return err
		}

		upvotes, err := voteRepo.CountByType(entryID, models.VoteUp)
		if err != nil {
			return err
		}
		downvotes, err := voteRepo.CountByType(entryID, models.VoteDown)
		if err != nil {
			return err
		}

		if err := entryRepo.UpdateVoteCounts(entry.ID, upvotes, downvotes); err != nil {
			return err
		}

		result = models.VoteResult{
			Vote:      vote,
			Upvotes:   int(upvotes),
			Downvotes: int(downvotes),
			Score:     int(upvotes - downvotes),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// CastCommentVote applies the same upsert-and-recount discipline to
// comment votes.
func (s *voteService) CastCommentVote(userID, commentID uint, voteType models.VoteType) (*models.CommentVote, error) {
	if !voteType.Valid() {
		return nil, models.ErrorValidation{Message: "vote_type must be UP or DOWN"}
	}

	var result *models.CommentVote

	err := s.db.Transaction(func(tx *gorm.DB) error {
		commentRepo := s.commentRepo.WithTx(tx)
		commentVoteRepo := s.commentVoteRepo.WithTx(tx)

		comment, err := commentRepo.GetByID(commentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrorNotFound{Message: "comment not found"}
			}
			return err
		}

		vote, err := commentVoteRepo.GetByUserAndComment(userID, commentID)
		switch {
		case err == nil:
			if vote.VoteType != voteType {
				vote.VoteType = voteType
				if err := commentVoteRepo.Update(vote); err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = &models.CommentVote{CommentID: commentID, UserID: userID, VoteType: voteType}
			if err := commentVoteRepo.Create(vote); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return models.ErrorConflict{Message: "vote was cast concurrently, retry the operation"}
				}
				return err
			}
		default:
			return err
		}

		upvotes, err := commentVoteRepo.CountByType(commentID, models.VoteUp)
		if err != nil {
			return err
		}
		downvotes, err := commentVoteRepo.CountByType(commentID, models.VoteDown)
		if err != nil {
			return err
		}

		if err := commentRepo.UpdateVoteCounts(comment.ID, upvotes, downvotes); err != nil {
			return err
		}

		result = vote
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *voteService) GetUserVote(userID, entryID uint) (*models.Vote, error) {
	vote, err := s.voteRepo.GetByUserAndEntry(userID, entryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vote, nil
}
