package models

import "time"

const MoodNeutral = "neutral"

// Entry is a single diary record: one per user per calendar date.
// ImageOriginals and ImageThumbnails hold JSON-encoded path lists of
// equal length with positional pairing (see internal/imagelist).
type Entry struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;uniqueIndex:uidx_user_date"`
	Date            time.Time `gorm:"type:date;not null;uniqueIndex:uidx_user_date"`
	Title           string
	Content         string
	Mood            string `gorm:"not null;default:neutral"`
	ImageOriginals  string
	ImageThumbnails string
	Location        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
