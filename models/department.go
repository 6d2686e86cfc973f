package models

import "time"

type Department struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null"`
	Description  string    `json:"description"`
	TeamLeaderID *uint     `json:"team_leader_id,omitempty"`
	TeamLeader   *User     `json:"team_leader,omitempty" gorm:"foreignKey:TeamLeaderID"`
	Members      []User    `json:"members,omitempty" gorm:"foreignKey:DepartmentID"`
	CreatedAt    time.Time `json:"created_at"`
}
