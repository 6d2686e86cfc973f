package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ts-knowledge-base/models"
)

func TestCan(t *testing.T) {
	leaderID := uint(7)

	admin := &models.User{ID: 1}
	admin.SetUserType(models.UserTypeAdmin)
	tech := &models.User{ID: 2, UserType: models.UserTypeTech}
	viewer := &models.User{ID: 3, UserType: models.UserTypeViewer}
	leader := &models.User{ID: leaderID, UserType: models.UserTypeSeniorTech}

	department := &models.Department{ID: 10, TeamLeaderID: &leaderID}
	leaderless := &models.Department{ID: 11}
	entry := &models.TroubleshootingEntry{ID: 20, AuthorID: tech.ID}
	comment := &models.Comment{ID: 30, AuthorID: tech.ID}
	vote := &models.Vote{ID: 40, UserID: tech.ID}
	attachment := &models.Attachment{ID: 50, UploadedByID: tech.ID}

	tests := []struct {
		name   string
		actor  *models.User
		action Action
		target interface{}
		want   bool
	}{
		{"nil actor denied", nil, ActionRead, entry, false},
		{"admin may do anything", admin, ActionDelete, department, true},
		{"any authenticated user may read", viewer, ActionRead, entry, true},
		{"team leader manages own department", leader, ActionUpdate, department, true},
		{"member cannot manage department", tech, ActionUpdate, department, false},
		{"nobody leads a leaderless department", leader, ActionUpdate, leaderless, false},
		{"user updates own profile", tech, ActionUpdate, tech, true},
		{"user cannot update another user", tech, ActionUpdate, viewer, false},
		{"author edits own entry", tech, ActionUpdate, entry, true},
		{"non-author cannot edit entry", viewer, ActionUpdate, entry, false},
		{"author deletes own comment", tech, ActionDelete, comment, true},
		{"non-author cannot delete comment", leader, ActionDelete, comment, false},
		{"voter changes own vote", tech, ActionUpdate, vote, true},
		{"uploader deletes own attachment", tech, ActionDelete, attachment, true},
		{"non-uploader cannot delete attachment", viewer, ActionDelete, attachment, false},
		{"unknown target denied", tech, ActionCreate, "something", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.actor, tt.action, tt.target))
		})
	}
}
