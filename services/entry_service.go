package services

import (
	"errors"
	"strings"
	"time"

	"ts-knowledge-base/helper"
	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"

	"gorm.io/gorm"
)

type EntryService interface {
	CreateEntry(authorID uint, req models.CreateEntryRequest) (*models.TroubleshootingEntry, error)
	UpdateEntry(entryID, editorID uint, req models.UpdateEntryRequest) (*models.TroubleshootingEntry, error)
	GetEntry(id uint) (*models.TroubleshootingEntry, error)
	GetEntryBySlug(slug string) (*models.TroubleshootingEntry, error)
	GetEntries(params models.EntryListParams) ([]models.TroubleshootingEntry, int64, error)
	DeleteEntry(id uint) error
	VerifyEntry(entryID, verifierID uint, notes string) (*models.TroubleshootingEntry, error)
	GetRevisions(entryID uint) ([]models.EntryRevision, error)
	RecordView(id uint) error
}

type entryService struct {
	db           *gorm.DB
	entryRepo    repositories.EntryRepository
	revisionRepo repositories.EntryRevisionRepository
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
}

func NewEntryService(
	db *gorm.DB,
	entryRepo repositories.EntryRepository,
	revisionRepo repositories.EntryRevisionRepository,
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
) EntryService {
	return &entryService{
		db:           db,
		entryRepo:    entryRepo,
		revisionRepo: revisionRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

func (s *entryService) CreateEntry(authorID uint, req models.CreateEntryRequest) (*models.TroubleshootingEntry, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, models.ErrorValidation{Message: "invalid priority"}
	}
	status := req.Status
	if status == "" {
		status = models.StatusPublished
	}
	if !status.Valid() {
		return nil, models.ErrorValidation{Message: "invalid status"}
	}

	var created *models.TroubleshootingEntry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entryRepo := s.entryRepo.WithTx(tx)
		categoryRepo := s.categoryRepo.WithTx(tx)
		tagRepo := s.tagRepo.WithTx(tx)

		if _, err := categoryRepo.GetByID(req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrorValidation{Message: "category not found"}
			}
			return err
		}

		entry := &models.TroubleshootingEntry{
			Title:              req.Title,
			Slug:               helper.Slugify(req.Title),
			ProblemDescription: req.ProblemDescription,
			Solution:           req.Solution,
			StepsToReproduce:   req.StepsToReproduce,
			EnvironmentDetails: req.EnvironmentDetails,
			ErrorMessages:      req.ErrorMessages,
			Prerequisites:      req.Prerequisites,
			EstimatedTime:      req.EstimatedTime,
			CategoryID:         req.CategoryID,
			AuthorID:           authorID,
			Priority:           priority,
			Status:             status,
		}
		if status == models.StatusPublished {
			now := time.Now()
			entry.PublishedAt = &now
		}

		if err := entryRepo.Create(entry); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.ErrorConflict{Message: "an entry with this title already exists"}
			}
			return err
		}

		if len(req.TagNames) > 0 {
			tags, err := resolveTags(tagRepo, req.TagNames)
			if err != nil {
				return err
			}
			if err := entryRepo.ReplaceTags(entry, tags); err != nil {
				return err
			}
			if err := refreshTagUsage(tagRepo, tags); err != nil {
				return err
			}
		}

		if err := refreshCategoryCount(categoryRepo, req.CategoryID); err != nil {
			return err
		}

		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.entryRepo.GetByID(created.ID)
}

// UpdateEntry runs the full edit as one transaction: snapshot the
// pre-update state into the revision ledger, apply the changed fields,
// then replace tag associations if tag names were supplied. A failure at
// any step leaves the entry, its tags, and the ledger untouched.
func (s *entryService) UpdateEntry(entryID, editorID uint, req models.UpdateEntryRequest) (*models.TroubleshootingEntry, error) {
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, models.ErrorValidation{Message: "invalid priority"}
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, models.ErrorValidation{Message: "invalid status"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entryRepo := s.entryRepo.WithTx(tx)
		revisionRepo := s.revisionRepo.WithTx(tx)
		categoryRepo := s.categoryRepo.WithTx(tx)
		tagRepo := s.tagRepo.WithTx(tx)

		entry, err := entryRepo.GetByID(entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrorNotFound{Message: "entry not found"}
			}
			return err
		}

		previousCategoryID := entry.CategoryID

		if err := recordRevision(revisionRepo, entry, editorID, req.ChangeSummary); err != nil {
			return err
		}

		if req.Title != nil {
			entry.Title = *req.Title
		}
		if req.ProblemDescription != nil {
			entry.ProblemDescription = *req.ProblemDescription
		}
		if req.Solution != nil {
			entry.Solution = *req.Solution
		}
		if req.StepsToReproduce != nil {
			entry.StepsToReproduce = *req.StepsToReproduce
		}
		if req.EnvironmentDetails != nil {
			entry.EnvironmentDetails = *req.EnvironmentDetails
		}
		if req.ErrorMessages != nil {
			entry.ErrorMessages = *req.ErrorMessages
		}
		if req.Prerequisites != nil {
			entry.Prerequisites = *req.Prerequisites
		}
		if req.EstimatedTime != nil {
			entry.EstimatedTime = req.EstimatedTime
		}
		if req.Priority != nil {
			entry.Priority = *req.Priority
		}
		if req.CategoryID != nil {
			if _, err := categoryRepo.GetByID(*req.CategoryID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrorValidation{Message: "category not found"}
				}
				return err
			}
			entry.CategoryID = *req.CategoryID
		}
		if req.Status != nil {
			if *req.Status == models.StatusPublished && entry.Status != models.StatusPublished {
				now := time.Now()
				entry.PublishedAt = &now
			}
			entry.Status = *req.Status
		}

		if err := entryRepo.Update(entry); err != nil {
			return err
		}

		if req.TagNames != nil {
			tags, err := resolveTags(tagRepo, *req.TagNames)
			if err != nil {
				return err
			}
			if err := entryRepo.ReplaceTags(entry, tags); err != nil {
				return err
			}
			if err := refreshTagUsage(tagRepo, tags); err != nil {
				return err
			}
		}

		if entry.CategoryID != previousCategoryID {
			if err := refreshCategoryCount(categoryRepo, previousCategoryID); err != nil {
				return err
			}
			if err := refreshCategoryCount(categoryRepo, entry.CategoryID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.entryRepo.GetByID(entryID)
}

// recordRevision appends the entry's pre-update snapshot to the ledger.
// The revision number is the prior maximum plus one; the unique
// (entry_id, revision_number) index turns a concurrent edit into a
// conflict that aborts the surrounding transaction instead of silently
// double-numbering.
func recordRevision(revisionRepo repositories.EntryRevisionRepository, entry *models.TroubleshootingEntry, editorID uint, summary string) error {
	maxNumber, err := revisionRepo.MaxRevisionNumber(entry.ID)
	if err != nil {
		return err
	}

	revision := &models.EntryRevision{
		EntryID:            entry.ID,
		RevisedByID:        editorID,
		Title:              entry.Title,
		ProblemDescription: entry.ProblemDescription,
		Solution:           entry.Solution,
		ChangeSummary:      summary,
		RevisionNumber:     maxNumber + 1,
	}

	if err := revisionRepo.Create(revision); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrorConflict{Message: "entry was edited concurrently, retry the update"}
		}
		return err
	}
	return nil
}

// resolveTags maps tag names to rows, creating missing ones. Creation is
// insert-first: a duplicate-key error means another request won the race,
// so the existing row is fetched instead.
func resolveTags(tagRepo repositories.TagRepository, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	seen := make(map[string]bool)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag := &models.Tag{Name: name, Slug: helper.Slugify(name)}
		err := tagRepo.Create(tag)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			tag, err = tagRepo.GetByName(name)
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}

	return tags, nil
}

func refreshTagUsage(tagRepo repositories.TagRepository, tags []models.Tag) error {
	for i := range tags {
		count, err := tagRepo.CountEntries(tags[i].ID)
		if err != nil {
			return err
		}
		tags[i].UsageCount = int(count)
		if err := tagRepo.Update(&tags[i]); err != nil {
			return err
		}
	}
	return nil
}

func refreshCategoryCount(categoryRepo repositories.CategoryRepository, categoryID uint) error {
	category, err := categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	count, err := categoryRepo.CountEntries(categoryID)
	if err != nil {
		return err
	}
	category.TotalEntries = int(count)
	return categoryRepo.Update(category)
}

func (s *entryService) GetEntry(id uint) (*models.TroubleshootingEntry, error) {
	entry, err := s.entryRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "entry not found"}
	}
	return entry, err
}

func (s *entryService) GetEntryBySlug(slug string) (*models.TroubleshootingEntry, error) {
	entry, err := s.entryRepo.GetBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "entry not found"}
	}
	return entry, err
}

func (s *entryService) GetEntries(params models.EntryListParams) ([]models.TroubleshootingEntry, int64, error) {
	params.Normalize()
	return s.entryRepo.GetList(params)
}

func (s *entryService) DeleteEntry(id uint) error {
	entry, err := s.entryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "entry not found"}
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.WithTx(tx).Delete(entry.ID); err != nil {
			return err
		}
		return refreshCategoryCount(s.categoryRepo.WithTx(tx), entry.CategoryID)
	})
}

func (s *entryService) VerifyEntry(entryID, verifierID uint, notes string) (*models.TroubleshootingEntry, error) {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "entry not found"}
		}
		return nil, err
	}

	now := time.Now()
	entry.IsVerified = true
	entry.VerifiedByID = &verifierID
	entry.VerifiedAt = &now
	entry.VerificationNotes = notes

	if err := s.entryRepo.Update(entry); err != nil {
		return nil, err
	}
	return s.entryRepo.GetByID(entryID)
}

func (s *entryService) GetRevisions(entryID uint) ([]models.EntryRevision, error) {
	if _, err := s.entryRepo.GetByID(entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "entry not found"}
		}
		return nil, err
	}
	return s.revisionRepo.GetByEntry(entryID)
}

func (s *entryService) RecordView(id uint) error {
	return s.entryRepo.IncrementViews(id)
}
