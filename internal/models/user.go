package models

import "time"

const DefaultLifeExpectancy = 100

type User struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"uniqueIndex;not null"`
	PasswordHash   string `gorm:"not null"`
	IsAdmin        bool   `gorm:"not null;default:false"`
	DOB            *time.Time
	LifeExpectancy int    `gorm:"not null;default:100"`
	Nickname       string
	AvatarURL      string
	CreatedAt      time.Time `gorm:"not null"`
}
