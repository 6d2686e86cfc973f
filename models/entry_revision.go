package models

import "time"

// EntryRevision is an immutable snapshot of an entry's authored fields,
// captured immediately before each edit. Revision numbers per entry form
// a gap-free ascending sequence starting at 1; rows are never updated or
// deleted once written.
type EntryRevision struct {
	ID                 uint                  `json:"id" gorm:"primarykey"`
	EntryID            uint                  `json:"entry_id" gorm:"not null;uniqueIndex:idx_entry_revision"`
	Entry              *TroubleshootingEntry `json:"-" gorm:"foreignKey:EntryID"`
	RevisedByID        uint                  `json:"revised_by_id" gorm:"not null"`
	RevisedBy          *User                 `json:"revised_by,omitempty" gorm:"foreignKey:RevisedByID"`
	Title              string                `json:"title" gorm:"not null"`
	ProblemDescription string                `json:"problem_description" gorm:"type:text"`
	Solution           string                `json:"solution" gorm:"type:text"`
	ChangeSummary      string                `json:"change_summary"`
	RevisionNumber     int                   `json:"revision_number" gorm:"not null;uniqueIndex:idx_entry_revision"`
	CreatedAt          time.Time             `json:"created_at"`
}
