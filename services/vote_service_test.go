package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"
)

type VoteServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	service VoteService
	voter   *models.User
	entry   *models.TroubleshootingEntry
}

func (s *VoteServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewVoteService(
		s.db,
		repositories.NewEntryRepository(s.db),
		repositories.NewVoteRepository(s.db),
		repositories.NewCommentRepository(s.db),
		repositories.NewCommentVoteRepository(s.db),
	)

	author := seedUser(s.T(), s.db, "author", models.UserTypeTech)
	s.voter = seedUser(s.T(), s.db, "voter", models.UserTypeTech)
	category := seedCategory(s.T(), s.db, "networking")

	s.entry = &models.TroubleshootingEntry{
		Title:              "Switch port flapping",
		Slug:               "switch-port-flapping",
		ProblemDescription: "p",
		CategoryID:         category.ID,
		AuthorID:           author.ID,
	}
	s.Require().NoError(s.db.Create(s.entry).Error)
}

func (s *VoteServiceSuite) entryCounts() (int, int) {
	var entry models.TroubleshootingEntry
	s.Require().NoError(s.db.First(&entry, s.entry.ID).Error)
	return entry.UpvotesCount, entry.DownvotesCount
}

func (s *VoteServiceSuite) TestFirstVoteCreatesRowAndCounters() {
	result, err := s.service.CastVote(s.voter.ID, s.entry.ID, models.VoteUp)
	s.Require().NoError(err)
	s.Equal(1, result.Upvotes)
	s.Equal(0, result.Downvotes)
	s.Equal(1, result.Score)

	up, down := s.entryCounts()
	s.Equal(1, up)
	s.Equal(0, down)
}

func (s *VoteServiceSuite) TestRecastSameTypeIsIdempotent() {
	_, err := s.service.CastVote(s.voter.ID, s.entry.ID, models.VoteUp)
	s.Require().NoError(err)
	result, err := s.service.CastVote(s.voter.ID, s.entry.ID, models.VoteUp)
	s.Require().NoError(err)
	s.Equal(1, result.Upvotes)

	var count int64
	s.Require().NoError(s.db.Model(&models.Vote{}).
		Where("entry_id = ? AND user_id = ?", s.entry.ID, s.voter.ID).
		Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *VoteServiceSuite) TestSwitchingVoteMovesCounters() {
	_, err := s.service.CastVote(s.voter.ID, s.entry.ID, models.VoteUp)
	s.Require().NoError(err)
	result, err := s.service.CastVote(s.voter.ID, s.entry.ID, models.VoteDown)
	s.Require().NoError(err)

	s.Equal(0, result.Upvotes)
	s.Equal(1, result.Downvotes)
	s.Equal(-1, result.Score)
}

func (s *VoteServiceSuite) TestVotesFromDistinctUsersAccumulate() {
	other := seedUser(s.T(), s.db, "other", models.UserTypeJuniorTech)

	_, err := s.service.CastVote(s.voter.ID, s.entry.ID, models.VoteUp)
	s.Require().NoError(err)
	result, err := s.service.CastVote(other.ID, s.entry.ID, models.VoteUp)
	s.Require().NoError(err)
	s.Equal(2, result.Upvotes)
}

func (s *VoteServiceSuite) TestRecountHealsDriftedCounters() {
	s.Require().NoError(s.db.Model(&models.TroubleshootingEntry{}).
		Where("id = ?", s.entry.ID).
		UpdateColumn("upvotes_count", 99).Error)

	result, err := s.service.CastVote(s.voter.ID, s.entry.ID, models.VoteUp)
	s.Require().NoError(err)
	s.Equal(1, result.Upvotes)

	up, _ := s.entryCounts()
	s.Equal(1, up)
}

func (s *VoteServiceSuite) TestInvalidVoteType() {
	_, err := s.service.CastVote(s.voter.ID, s.entry.ID, "SIDEWAYS")
	s.Require().Error(err)
	s.IsType(models.ErrorValidation{}, err)
}

func (s *VoteServiceSuite) TestUnknownEntry() {
	_, err := s.service.CastVote(s.voter.ID, 9999, models.VoteUp)
	s.Require().Error(err)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *VoteServiceSuite) TestGetUserVoteAbsentIsNil() {
	vote, err := s.service.GetUserVote(s.voter.ID, s.entry.ID)
	s.Require().NoError(err)
	s.Nil(vote)
}

func (s *VoteServiceSuite) TestCommentVoteRecountsCommentCounters() {
	comment := &models.Comment{EntryID: s.entry.ID, AuthorID: s.voter.ID, Content: "same issue here"}
	s.Require().NoError(s.db.Create(comment).Error)

	_, err := s.service.CastCommentVote(s.voter.ID, comment.ID, models.VoteUp)
	s.Require().NoError(err)

	var reloaded models.Comment
	s.Require().NoError(s.db.First(&reloaded, comment.ID).Error)
	s.Equal(1, reloaded.UpvotesCount)
	s.Equal(0, reloaded.DownvotesCount)

	_, err = s.service.CastCommentVote(s.voter.ID, comment.ID, models.VoteDown)
	s.Require().NoError(err)
	s.Require().NoError(s.db.First(&reloaded, comment.ID).Error)
	s.Equal(0, reloaded.UpvotesCount)
	s.Equal(1, reloaded.DownvotesCount)
}

func (s *VoteServiceSuite) TestCommentVoteUnknownComment() {
	_, err := s.service.CastCommentVote(s.voter.ID, 9999, models.VoteUp)
	s.Require().Error(err)
	s.IsType(models.ErrorNotFound{}, err)
}

func TestVoteServiceSuite(t *testing.T) {
	suite.Run(t, new(VoteServiceSuite))
}
