package models

import "time"

type Category struct {
	ID            uint        `json:"id" gorm:"primarykey"`
	Name          string      `json:"name" gorm:"uniqueIndex;not null"`
	Slug          string      `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string      `json:"description"`
	ParentID      *uint       `json:"parent_id,omitempty"`
	Parent        *Category   `json:"-" gorm:"foreignKey:ParentID"`
	IsActive      bool        `json:"is_active" gorm:"default:true"`
	Order         int         `json:"order" gorm:"default:0"`
	TotalEntries  int         `json:"total_entries" gorm:"default:0"`
	Subcategories []*Category `json:"subcategories,omitempty" gorm:"-"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
