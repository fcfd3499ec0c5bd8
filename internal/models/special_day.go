package models

import "time"

const (
	SpecialDayAnniversary = "anniversary"
	SpecialDayPlan        = "plan"
)

type SpecialDay struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"not null;index"`
	Title            string    `gorm:"not null"`
	Date             time.Time `gorm:"type:date;not null"`
	Type             string    `gorm:"not null;default:anniversary"`
	RepeatYearly     bool      `gorm:"not null;default:true"`
	NotifyDaysBefore int       `gorm:"not null;default:0"`
	CreatedAt        time.Time
}
