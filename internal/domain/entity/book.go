package entity

import "time"

// Book is a catalogue record. Any authenticated caller may manage any book.
type Book struct {
	ID            uint
	Title         string
	Author        string
	Description   string
	ISBN          string
	PublishedYear int // Zero when unknown.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
