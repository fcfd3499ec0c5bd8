package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Entries     *EntryRepository
	Goals       *GoalRepository
	SpecialDays *SpecialDayRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Entries:     NewEntryRepository(database),
		Goals:       NewGoalRepository(database),
		SpecialDays: NewSpecialDayRepository(database),
	}
}
