package model

import (
	"time"
)

// BookModel mirrors the 'books' table.
type BookModel struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	Title         string `gorm:"type:varchar(255);not null"`
	Author        string `gorm:"type:varchar(255);not null"`
	Description   string `gorm:"type:text"`
	ISBN          string `gorm:"column:isbn;type:varchar(32)"`
	PublishedYear int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookModel) TableName() string {
	return "books"
}
