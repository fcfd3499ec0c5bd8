package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/memento/internal/imagelist"
	"github.com/terraincognita07/memento/internal/models"
)

var (
	ErrEntryLoadFailed = errors.New("load entry failed")
	ErrEntrySaveFailed = errors.New("save entry failed")
)

// EntryInput carries one save request for a (user, date) pair. The
// stored image lists are fully replaced by KeptOriginals + NewImages.
type EntryInput struct {
	Title         string
	Content       string
	Mood          string
	NewImages     []imagelist.Pair
	KeptOriginals []string
	Location      string
}

type EntryRepository interface {
	ListByUser(userID uint) ([]models.Entry, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.Entry, bool, error)
	Create(entry *models.Entry) error
	Save(entry *models.Entry) error
}

type EntryService struct {
	entries EntryRepository
}

func NewEntryService(entries EntryRepository) *EntryService {
	return &EntryService{entries: entries}
}

func (service *EntryService) ListForUser(userID uint) ([]models.Entry, error) {
	return service.entries.ListByUser(userID)
}

// UpsertEntry creates or updates the single entry for the given day.
// Image lists are replaced, never appended: the combined kept+new set
// becomes the new encoded pair of columns, and an empty set clears
// both.
func (service *EntryService) UpsertEntry(userID uint, day time.Time, input EntryInput) (models.Entry, error) {
	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.entries.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.Entry{}, ErrEntryLoadFailed
	}

	mood := input.Mood
	if mood == "" {
		mood = models.MoodNeutral
	}

	originals, thumbnails := imagelist.Merge(input.KeptOriginals, input.NewImages)

	if !found {
		entry = models.Entry{
			UserID: userID,
			Date:   dayStart,
		}
	}

	entry.Title = input.Title
	entry.Content = input.Content
	entry.Mood = mood
	entry.ImageOriginals = imagelist.Encode(originals)
	entry.ImageThumbnails = imagelist.Encode(thumbnails)
	if input.Location != "" {
		entry.Location = input.Location
	}

	if !found {
		if err := service.entries.Create(&entry); err != nil {
			return models.Entry{}, ErrEntrySaveFailed
		}
		return entry, nil
	}

	if err := service.entries.Save(&entry); err != nil {
		return models.Entry{}, ErrEntrySaveFailed
	}
	return entry, nil
}
