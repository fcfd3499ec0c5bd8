package models

import "time"

type Goal struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Text        string `gorm:"not null"`
	Completed   bool   `gorm:"not null;default:false"`
	CompletedAt *time.Time
	YearIdx     *int
	WeekIdx     *int
	CreatedAt   time.Time
}
