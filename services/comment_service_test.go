package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"
)

type CommentServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	service CommentService
	author  *models.User
	entry   *models.TroubleshootingEntry
}

func (s *CommentServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewCommentService(
		s.db,
		repositories.NewEntryRepository(s.db),
		repositories.NewCommentRepository(s.db),
	)

	s.author = seedUser(s.T(), s.db, "author", models.UserTypeTech)
	category := seedCategory(s.T(), s.db, "networking")
	s.entry = &models.TroubleshootingEntry{
		Title:              "Laptop will not boot",
		Slug:               "laptop-will-not-boot",
		ProblemDescription: "p",
		CategoryID:         category.ID,
		AuthorID:           s.author.ID,
	}
	s.Require().NoError(s.db.Create(s.entry).Error)
}

func (s *CommentServiceSuite) comment(content string, parentID *uint) *models.Comment {
	comment, err := s.service.CreateComment(s.entry.ID, s.author.ID, models.CreateCommentRequest{
		ParentID: parentID,
		Content:  content,
	})
	s.Require().NoError(err)
	return comment
}

func (s *CommentServiceSuite) entryCommentsCount() int {
	var entry models.TroubleshootingEntry
	s.Require().NoError(s.db.First(&entry, s.entry.ID).Error)
	return entry.CommentsCount
}

func (s *CommentServiceSuite) TestCreateCommentBumpsEntryCount() {
	s.comment("first", nil)
	s.comment("second", nil)
	s.Equal(2, s.entryCommentsCount())
}

func (s *CommentServiceSuite) TestCreateReply() {
	parent := s.comment("root", nil)
	reply := s.comment("reply", &parent.ID)
	s.Require().NotNil(reply.ParentID)
	s.Equal(parent.ID, *reply.ParentID)
}

func (s *CommentServiceSuite) TestParentFromAnotherEntryRejected() {
	otherEntry := &models.TroubleshootingEntry{
		Title:              "Other entry",
		Slug:               "other-entry",
		ProblemDescription: "p",
		CategoryID:         s.entry.CategoryID,
		AuthorID:           s.author.ID,
	}
	s.Require().NoError(s.db.Create(otherEntry).Error)
	foreign := &models.Comment{EntryID: otherEntry.ID, AuthorID: s.author.ID, Content: "elsewhere"}
	s.Require().NoError(s.db.Create(foreign).Error)

	_, err := s.service.CreateComment(s.entry.ID, s.author.ID, models.CreateCommentRequest{
		ParentID: &foreign.ID,
		Content:  "cross-entry reply",
	})
	s.Require().Error(err)
	s.IsType(models.ErrorValidation{}, err)
}

func (s *CommentServiceSuite) TestUnknownParentRejected() {
	parentID := uint(9999)
	_, err := s.service.CreateComment(s.entry.ID, s.author.ID, models.CreateCommentRequest{
		ParentID: &parentID,
		Content:  "orphan",
	})
	s.Require().Error(err)
	s.IsType(models.ErrorValidation{}, err)
}

func (s *CommentServiceSuite) TestUpdateAlwaysMarksEdited() {
	comment := s.comment("unchanged", nil)

	updated, err := s.service.UpdateComment(comment.ID, models.UpdateCommentRequest{Content: "unchanged"})
	s.Require().NoError(err)
	s.True(updated.IsEdited)
}

func (s *CommentServiceSuite) TestUpdateDeletedCommentRejected() {
	comment := s.comment("to delete", nil)
	_, err := s.service.SoftDeleteComment(comment.ID)
	s.Require().NoError(err)

	_, err = s.service.UpdateComment(comment.ID, models.UpdateCommentRequest{Content: "resurrect"})
	s.Require().Error(err)
	s.IsType(models.ErrorValidation{}, err)
}

func (s *CommentServiceSuite) TestSoftDeleteKeepsRepliesAndAdjustsCount() {
	parent := s.comment("root", nil)
	s.comment("reply", &parent.ID)
	s.Equal(2, s.entryCommentsCount())

	deleted, err := s.service.SoftDeleteComment(parent.ID)
	s.Require().NoError(err)
	s.True(deleted.IsDeleted)

	// The reply row is untouched and the active count excludes the parent.
	s.Equal(1, s.entryCommentsCount())

	tree, err := s.service.GetTree(s.entry.ID)
	s.Require().NoError(err)
	s.Require().Len(tree, 1)
	s.True(tree[0].IsDeleted)
	s.Require().Len(tree[0].Replies, 1)
	s.Equal("reply", tree[0].Replies[0].Content)
}

func (s *CommentServiceSuite) TestTreeOrdersSiblingsByEngagementThenAge() {
	first := s.comment("older", nil)
	second := s.comment("newer but popular", nil)
	s.comment("nested", &first.ID)

	s.Require().NoError(s.db.Model(&models.Comment{}).
		Where("id = ?", second.ID).
		UpdateColumn("upvotes_count", 5).Error)

	tree, err := s.service.GetTree(s.entry.ID)
	s.Require().NoError(err)
	s.Require().Len(tree, 2)
	s.Equal("newer but popular", tree[0].Content)
	s.Equal("older", tree[1].Content)
	s.Require().Len(tree[1].Replies, 1)
	s.Equal("nested", tree[1].Replies[0].Content)
}

func TestCommentServiceSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceSuite))
}
