package models

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeAdmin      UserType = "ADMIN"
	UserTypeSeniorTech UserType = "SENIOR_TECH"
	UserTypeTech       UserType = "TECH"
	UserTypeJuniorTech UserType = "JUNIOR_TECH"
	UserTypeViewer     UserType = "VIEWER"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdmin, UserTypeSeniorTech, UserTypeTech, UserTypeJuniorTech, UserTypeViewer:
		return true
	}
	return false
}

type User struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	Password     string         `json:"-" gorm:"not null"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	EmployeeID   *string        `json:"employee_id,omitempty" gorm:"uniqueIndex"`
	Phone        string         `json:"phone"`
	Role         string         `json:"role"`
	UserType     UserType       `json:"user_type" gorm:"default:'TECH'"`
	IsSuperuser  bool           `json:"is_superuser"`
	IsVerified   bool           `json:"is_verified"`
	DepartmentID *uint          `json:"department_id,omitempty"`
	Department   *Department    `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// SetUserType is the only sanctioned way to change a user's permission
// tier. The ADMIN tier and superuser status move together; assigning any
// other tier revokes superuser status.
func (u *User) SetUserType(t UserType) {
	u.UserType = t
	u.IsSuperuser = t == UserTypeAdmin
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
