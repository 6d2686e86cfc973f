package services

import (
	"errors"

	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(entryID, authorID uint, req models.CreateCommentRequest) (*models.Comment, error)
	UpdateComment(commentID uint, req models.UpdateCommentRequest) (*models.Comment, error)
	SoftDeleteComment(commentID uint) (*models.Comment, error)
	GetComment(commentID uint) (*models.Comment, error)
	GetTree(entryID uint) ([]*models.Comment, error)
}

type commentService struct {
	db          *gorm.DB
	entryRepo   repositories.EntryRepository
	commentRepo repositories.CommentRepository
}

func NewCommentService(db *gorm.DB, entryRepo repositories.EntryRepository, commentRepo repositories.CommentRepository) CommentService {
	return &commentService{db: db, entryRepo: entryRepo, commentRepo: commentRepo}
}

// CreateComment validates that a parent, when given, is a comment on the
// same entry; cross-entry parenting is rejected outright.
func (s *commentService) CreateComment(entryID, authorID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	var created *models.Comment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entryRepo := s.entryRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)

		entry, err := entryRepo.GetByID(entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrorNotFound{Message: "entry not found"}
			}
			return err
		}

		if req.ParentID != nil {
			parent, err := commentRepo.GetByID(*req.ParentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrorValidation{Message: "parent comment not found"}
				}
				return err
			}
			if parent.EntryID != entry.ID {
				return models.ErrorValidation{Message: "parent comment belongs to a different entry"}
			}
		}

		comment := &models.Comment{
			EntryID:    entry.ID,
			ParentID:   req.ParentID,
			AuthorID:   authorID,
			Content:    req.Content,
			IsSolution: req.IsSolution,
		}
		if err := commentRepo.Create(comment); err != nil {
			return err
		}

		if err := refreshCommentsCount(entryRepo, commentRepo, entry.ID); err != nil {
			return err
		}

		created = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(created.ID)
}

// UpdateComment overwrites the content and marks the comment edited.
// The flag is set unconditionally, even when the new content equals the
// old: an edit is a declared intent, not a diff.
func (s *commentService) UpdateComment(commentID uint, req models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "comment not found"}
		}
		return nil, err
	}
	if comment.IsDeleted {
		return nil, models.ErrorValidation{Message: "cannot edit a deleted comment"}
	}

	comment.Content = req.Content
	comment.IsEdited = true

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// SoftDeleteComment hides the comment without removing the row, so
// replies keep a valid parent. The deletion never cascades.
func (s *commentService) SoftDeleteComment(commentID uint) (*models.Comment, error) {
	var deleted *models.Comment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entryRepo := s.entryRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)

		comment, err := commentRepo.GetByID(commentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrorNotFound{Message: "comment not found"}
			}
			return err
		}

		comment.IsDeleted = true
		if err := commentRepo.Update(comment); err != nil {
			return err
		}

		if err := refreshCommentsCount(entryRepo, commentRepo, comment.EntryID); err != nil {
			return err
		}

		deleted = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func (s *commentService) GetComment(commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "comment not found"}
	}
	return comment, err
}

// GetTree loads the entry's comments flat and assembles the nested
// structure in memory via a parent-id index, so one fetch yields a fully
// resolved tree. Soft-deleted comments stay in place to keep reply
// chains addressable.
func (s *commentService) GetTree(entryID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByEntry(entryID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Comment, len(comments))
	for i := range comments {
		byID[comments[i].ID] = &comments[i]
	}

	var roots []*models.Comment
	for i := range comments {
		c := &comments[i]
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		} else {
			// Parent was hard-removed out of band; surface the reply at
			// the top level rather than dropping it.
			roots = append(roots, c)
		}
	}

	return roots, nil
}

func refreshCommentsCount(entryRepo repositories.EntryRepository, commentRepo repositories.CommentRepository, entryID uint) error {
	count, err := commentRepo.CountActiveByEntry(entryID)
	if err != nil {
		return err
	}
	return entryRepo.UpdateCommentsCount(entryID, count)
}
