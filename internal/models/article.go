package models

import (
	"time"
)

// ArticleEntry is a journal article from the corps periodical.
type ArticleEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title             string `gorm:"type:text" json:"title,omitempty"`
	Subtitle          string `gorm:"size:500" json:"subtitle,omitempty"`
	AlternativeAuthor string `gorm:"size:255" json:"alternative_author,omitempty"`
	Category          string `gorm:"index;size:100" json:"category,omitempty"`
	Text              string `gorm:"type:text" json:"text,omitempty"`

	Year  *int  `gorm:"index" json:"year,omitempty"`
	Month *int  `json:"month,omitempty"`
	Page  *int  `json:"page,omitempty"`
	Date  *Date `json:"date,omitempty"`

	CreatedByID *uint `json:"created_by_id,omitempty"`
	UpdatedByID *uint `json:"updated_by_id,omitempty"`
}
