package services

import "ts-knowledge-base/models"

// Action is the kind of operation an actor attempts against a target.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) isMutation() bool {
	return a != ActionRead
}

// Can decides whether an actor may perform an action on a target. It is
// a pure function over the actor's attributes and the target's ownership
// relation: no storage access, no side effects, never an error. Rules
// are evaluated in order; the first match wins:
//
//  1. ADMIN tier may do anything.
//  2. Reads are open to any authenticated actor.
//  3. Department mutations require being that department's team leader.
//  4. Mutating another user is admin-only.
//  5. Entries, comments, votes, and attachments may be mutated by their
//     owner.
//  6. Everything else is denied.
//
// Callers translate a false return into an authorization failure at the
// HTTP boundary.
func Can(actor *models.User, action Action, target interface{}) bool {
	if actor == nil {
		return false
	}
	if actor.UserType == models.UserTypeAdmin {
		return true
	}
	if !action.isMutation() {
		return true
	}

	switch t := target.(type) {
	case *models.Department:
		return t != nil && t.TeamLeaderID != nil && *t.TeamLeaderID == actor.ID
	case *models.User:
		return t != nil && t.ID == actor.ID
	case *models.TroubleshootingEntry:
		return t != nil && t.AuthorID == actor.ID
	case *models.Comment:
		return t != nil && t.AuthorID == actor.ID
	case *models.Vote:
		return t != nil && t.UserID == actor.ID
	case *models.CommentVote:
		return t != nil && t.UserID == actor.ID
	case *models.Attachment:
		return t != nil && t.UploadedByID == actor.ID
	}

	return false
}
