package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"
)

type EntryServiceSuite struct {
	suite.Suite
	db       *gorm.DB
	service  EntryService
	author   *models.User
	category *models.Category
}

func (s *EntryServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewEntryService(
		s.db,
		repositories.NewEntryRepository(s.db),
		repositories.NewEntryRevisionRepository(s.db),
		repositories.NewCategoryRepository(s.db),
		repositories.NewTagRepository(s.db),
	)
	s.author = seedUser(s.T(), s.db, "author", models.UserTypeTech)
	s.category = seedCategory(s.T(), s.db, "networking")
}

func (s *EntryServiceSuite) createEntry(title string) *models.TroubleshootingEntry {
	entry, err := s.service.CreateEntry(s.author.ID, models.CreateEntryRequest{
		Title:              title,
		ProblemDescription: "problem",
		Solution:           "solution",
		CategoryID:         s.category.ID,
	})
	s.Require().NoError(err)
	return entry
}

func (s *EntryServiceSuite) TestCreateEntryDefaults() {
	entry := s.createEntry("VPN Tunnel Drops Every Hour")

	s.Equal("vpn-tunnel-drops-every-hour", entry.Slug)
	s.Equal(models.PriorityMedium, entry.Priority)
	s.Equal(models.StatusPublished, entry.Status)
	s.NotNil(entry.PublishedAt)
	s.Equal(s.author.ID, entry.AuthorID)

	var category models.Category
	s.Require().NoError(s.db.First(&category, s.category.ID).Error)
	s.Equal(1, category.TotalEntries)
}

func (s *EntryServiceSuite) TestCreateEntryDraftHasNoPublishedAt() {
	entry, err := s.service.CreateEntry(s.author.ID, models.CreateEntryRequest{
		Title:              "Draft entry",
		ProblemDescription: "p",
		Solution:           "s",
		CategoryID:         s.category.ID,
		Status:             models.StatusDraft,
	})
	s.Require().NoError(err)
	s.Nil(entry.PublishedAt)
}

func (s *EntryServiceSuite) TestCreateEntrySlugConflict() {
	s.createEntry("Printer offline")

	_, err := s.service.CreateEntry(s.author.ID, models.CreateEntryRequest{
		Title:              "Printer offline",
		ProblemDescription: "p",
		Solution:           "s",
		CategoryID:         s.category.ID,
	})
	s.Require().Error(err)
	s.IsType(models.ErrorConflict{}, err)
}

func (s *EntryServiceSuite) TestCreateEntryUnknownCategory() {
	_, err := s.service.CreateEntry(s.author.ID, models.CreateEntryRequest{
		Title:              "No category",
		ProblemDescription: "p",
		Solution:           "s",
		CategoryID:         9999,
	})
	s.Require().Error(err)
	s.IsType(models.ErrorValidation{}, err)
}

func (s *EntryServiceSuite) TestCreateEntryResolvesTags() {
	entry, err := s.service.CreateEntry(s.author.ID, models.CreateEntryRequest{
		Title:              "DNS resolution fails",
		ProblemDescription: "p",
		Solution:           "s",
		CategoryID:         s.category.ID,
		TagNames:           []string{"dns", " vpn ", "dns"},
	})
	s.Require().NoError(err)
	s.Len(entry.Tags, 2)

	var tag models.Tag
	s.Require().NoError(s.db.Where("name = ?", "vpn").First(&tag).Error)
	s.Equal(1, tag.UsageCount)
}

func (s *EntryServiceSuite) TestCreateEntryReusesExistingTag() {
	s.Require().NoError(s.db.Create(&models.Tag{Name: "dns", Slug: "dns"}).Error)

	s.createEntryWithTags("First", []string{"dns"})
	s.createEntryWithTags("Second", []string{"dns"})

	var count int64
	s.Require().NoError(s.db.Model(&models.Tag{}).Where("name = ?", "dns").Count(&count).Error)
	s.Equal(int64(1), count)

	var tag models.Tag
	s.Require().NoError(s.db.Where("name = ?", "dns").First(&tag).Error)
	s.Equal(2, tag.UsageCount)
}

func (s *EntryServiceSuite) createEntryWithTags(title string, tags []string) *models.TroubleshootingEntry {
	entry, err := s.service.CreateEntry(s.author.ID, models.CreateEntryRequest{
		Title:              title,
		ProblemDescription: "p",
		Solution:           "s",
		CategoryID:         s.category.ID,
		TagNames:           tags,
	})
	s.Require().NoError(err)
	return entry
}

func (s *EntryServiceSuite) TestUpdateEntryRecordsPreUpdateSnapshot() {
	entry := s.createEntry("Original title")

	title2 := "Second title"
	_, err := s.service.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{
		Title:         &title2,
		ChangeSummary: "first edit",
	})
	s.Require().NoError(err)

	title3 := "Third title"
	_, err = s.service.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{
		Title:         &title3,
		ChangeSummary: "second edit",
	})
	s.Require().NoError(err)

	revisions, err := s.service.GetRevisions(entry.ID)
	s.Require().NoError(err)
	s.Require().Len(revisions, 2)

	// Newest first; each revision holds the state before its edit.
	s.Equal(2, revisions[0].RevisionNumber)
	s.Equal("Second title", revisions[0].Title)
	s.Equal("second edit", revisions[0].ChangeSummary)
	s.Equal(1, revisions[1].RevisionNumber)
	s.Equal("Original title", revisions[1].Title)
	s.Equal("first edit", revisions[1].ChangeSummary)
}

func (s *EntryServiceSuite) TestUpdateEntryKeepsUntouchedFields() {
	entry := s.createEntry("Keep fields")

	solution := "new solution"
	updated, err := s.service.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{
		Solution: &solution,
	})
	s.Require().NoError(err)
	s.Equal("Keep fields", updated.Title)
	s.Equal("new solution", updated.Solution)
	s.Equal("problem", updated.ProblemDescription)
}

func (s *EntryServiceSuite) TestUpdateEntryReplacesTagSet() {
	entry := s.createEntryWithTags("Tagged entry", []string{"dns", "vpn"})

	newTags := []string{"vpn", "firewall"}
	updated, err := s.service.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{
		TagNames: &newTags,
	})
	s.Require().NoError(err)

	names := make([]string, 0, len(updated.Tags))
	for _, tag := range updated.Tags {
		names = append(names, tag.Name)
	}
	s.ElementsMatch([]string{"vpn", "firewall"}, names)
}

func (s *EntryServiceSuite) TestUpdateEntryNilTagNamesLeavesTags() {
	entry := s.createEntryWithTags("Tags untouched", []string{"dns"})

	solution := "s2"
	updated, err := s.service.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{
		Solution: &solution,
	})
	s.Require().NoError(err)
	s.Len(updated.Tags, 1)
}

func (s *EntryServiceSuite) TestUpdateEntryRollsBackRevisionOnFailure() {
	entry := s.createEntry("Keep me intact")

	title := "Should not stick"
	badCategory := uint(9999)
	_, err := s.service.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{
		Title:      &title,
		CategoryID: &badCategory,
	})
	s.Require().Error(err)
	s.IsType(models.ErrorValidation{}, err)

	// The revision is written before the category check fails; the
	// rollback must take it with it and leave the entry untouched.
	var revisionCount int64
	s.Require().NoError(s.db.Model(&models.EntryRevision{}).
		Where("entry_id = ?", entry.ID).
		Count(&revisionCount).Error)
	s.Equal(int64(0), revisionCount)

	reloaded, err := s.service.GetEntry(entry.ID)
	s.Require().NoError(err)
	s.Equal("Keep me intact", reloaded.Title)
}

func (s *EntryServiceSuite) TestUpdateEntryConcurrentRevisionConflict() {
	entry := s.createEntry("Contended entry")

	title2 := "First edit"
	_, err := s.service.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{Title: &title2})
	s.Require().NoError(err)

	// An editor whose revision-number read raced the first edit tries to
	// reuse an already-taken number; the unique index must reject it and
	// the whole update must roll back.
	racing := NewEntryService(
		s.db,
		repositories.NewEntryRepository(s.db),
		staleRevisionNumberRepo{repositories.NewEntryRevisionRepository(s.db)},
		repositories.NewCategoryRepository(s.db),
		repositories.NewTagRepository(s.db),
	)

	title3 := "Racing edit"
	_, err = racing.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{Title: &title3})
	s.Require().Error(err)
	s.IsType(models.ErrorConflict{}, err)

	reloaded, err := s.service.GetEntry(entry.ID)
	s.Require().NoError(err)
	s.Equal("First edit", reloaded.Title)

	revisions, err := s.service.GetRevisions(entry.ID)
	s.Require().NoError(err)
	s.Len(revisions, 1)
}

// staleRevisionNumberRepo reports no existing revisions regardless of
// what is stored, reproducing the window where two editors read the
// same maximum before either writes.
type staleRevisionNumberRepo struct {
	repositories.EntryRevisionRepository
}

func (r staleRevisionNumberRepo) MaxRevisionNumber(entryID uint) (int, error) {
	return 0, nil
}

func (r staleRevisionNumberRepo) WithTx(tx *gorm.DB) repositories.EntryRevisionRepository {
	return staleRevisionNumberRepo{r.EntryRevisionRepository.WithTx(tx)}
}

func (s *EntryServiceSuite) TestUpdateEntryNotFound() {
	title := "x"
	_, err := s.service.UpdateEntry(9999, s.author.ID, models.UpdateEntryRequest{Title: &title})
	s.Require().Error(err)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *EntryServiceSuite) TestUpdateEntryMovesCategoryCounts() {
	entry := s.createEntry("Move me")
	other := seedCategory(s.T(), s.db, "hardware")

	_, err := s.service.UpdateEntry(entry.ID, s.author.ID, models.UpdateEntryRequest{
		CategoryID: &other.ID,
	})
	s.Require().NoError(err)

	var from, to models.Category
	s.Require().NoError(s.db.First(&from, s.category.ID).Error)
	s.Require().NoError(s.db.First(&to, other.ID).Error)
	s.Equal(0, from.TotalEntries)
	s.Equal(1, to.TotalEntries)
}

func (s *EntryServiceSuite) TestVerifyEntry() {
	entry := s.createEntry("Needs verification")
	verifier := seedUser(s.T(), s.db, "senior", models.UserTypeSeniorTech)

	verified, err := s.service.VerifyEntry(entry.ID, verifier.ID, "checked on lab hardware")
	s.Require().NoError(err)
	s.True(verified.IsVerified)
	s.Require().NotNil(verified.VerifiedByID)
	s.Equal(verifier.ID, *verified.VerifiedByID)
	s.NotNil(verified.VerifiedAt)
	s.Equal("checked on lab hardware", verified.VerificationNotes)
}

func (s *EntryServiceSuite) TestRecordView() {
	entry := s.createEntry("Counted views")

	s.Require().NoError(s.service.RecordView(entry.ID))
	s.Require().NoError(s.service.RecordView(entry.ID))

	reloaded, err := s.service.GetEntry(entry.ID)
	s.Require().NoError(err)
	s.Equal(2, reloaded.ViewsCount)
}

func (s *EntryServiceSuite) TestDeleteEntryRefreshesCategoryCount() {
	entry := s.createEntry("Short lived")

	s.Require().NoError(s.service.DeleteEntry(entry.ID))

	_, err := s.service.GetEntry(entry.ID)
	s.IsType(models.ErrorNotFound{}, err)

	var category models.Category
	s.Require().NoError(s.db.First(&category, s.category.ID).Error)
	s.Equal(0, category.TotalEntries)
}

func (s *EntryServiceSuite) TestGetEntriesFiltersByStatus() {
	s.createEntry("Published one")
	_, err := s.service.CreateEntry(s.author.ID, models.CreateEntryRequest{
		Title:              "Draft one",
		ProblemDescription: "p",
		Solution:           "s",
		CategoryID:         s.category.ID,
		Status:             models.StatusDraft,
	})
	s.Require().NoError(err)

	entries, total, err := s.service.GetEntries(models.EntryListParams{Status: "PUBLISHED", Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(entries, 1)
	s.Equal("Published one", entries[0].Title)
}

func TestEntryServiceSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceSuite))
}
