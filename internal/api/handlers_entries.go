package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/memento/internal/geo"
	"github.com/terraincognita07/memento/internal/imagelist"
	"github.com/terraincognita07/memento/internal/images"
	"github.com/terraincognita07/memento/internal/models"
	"github.com/terraincognita07/memento/internal/services"
)

// GetEvents returns every entry of the caller keyed by ISO date. The
// first thumbnail/original double as the primary image for older
// clients; the full ordered lists ride alongside.
func (handler *Handler) GetEvents(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.entryService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load events")
	}

	result := make(map[string]fiber.Map, len(entries))
	for _, entry := range entries {
		result[entry.Date.Format(services.ISODateLayout)] = entryPayload(entry)
	}
	return c.JSON(result)
}

func entryPayload(entry models.Entry) fiber.Map {
	thumbnails := imagelist.Decode(entry.ImageThumbnails)
	originals := imagelist.Decode(entry.ImageOriginals)

	var primaryThumbnail, primaryOriginal any
	if len(thumbnails) > 0 {
		primaryThumbnail = thumbnails[0]
	}
	if len(originals) > 0 {
		primaryOriginal = originals[0]
	}

	return fiber.Map{
		"id":             entry.ID,
		"title":          entry.Title,
		"content":        entry.Content,
		"mood":           entry.Mood,
		"image":          primaryThumbnail,
		"imageOriginal":  primaryOriginal,
		"images":         thumbnails,
		"imagesOriginal": originals,
		"location":       entry.Location,
	}
}

// SaveEvent upserts the entry for a date. New uploads and the caller's
// keep_images list fully replace the stored image path lists.
func (handler *Handler) SaveEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := services.ParseISODate(strings.TrimSpace(c.FormValue("date")))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
	}

	keptOriginals, err := parseKeepImages(c.FormValue("keep_images"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid keep_images list")
	}

	uploads := collectEntryUploads(c)

	pairs := make([]imagelist.Pair, 0, len(uploads))
	var firstUpload []byte
	for _, upload := range uploads {
		data, err := readUpload(upload)
		if err != nil {
			handler.discardPairs(pairs)
			return apiError(c, fiber.StatusBadRequest, "invalid image upload")
		}

		pair, err := handler.processor.Process(upload.Filename, data)
		if err != nil {
			handler.discardPairs(pairs)
			return entryImageError(c, err)
		}
		pairs = append(pairs, pair)
		if firstUpload == nil {
			firstUpload = data
		}
	}

	location := handler.locateCity(c.Context(), firstUpload)

	_, err = handler.entryService.UpsertEntry(user.ID, day, services.EntryInput{
		Title:         c.FormValue("title"),
		Content:       c.FormValue("content"),
		Mood:          c.FormValue("mood"),
		NewImages:     pairs,
		KeptOriginals: keptOriginals,
		Location:      location,
	})
	if err != nil {
		handler.discardPairs(pairs)
		return apiError(c, fiber.StatusInternalServerError, "failed to save event")
	}

	return apiMessage(c, "event saved")
}

func entryImageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, images.ErrUnsupportedFormat):
		return apiError(c, fiber.StatusBadRequest, "unsupported file format, allowed: jpg, jpeg, png, webp")
	case errors.Is(err, images.ErrFileTooLarge):
		return apiError(c, fiber.StatusBadRequest, "image file too large")
	default:
		return apiError(c, fiber.StatusInternalServerError, "image processing failed")
	}
}

// collectEntryUploads gathers the multi-file images field, falling back
// to the legacy single image field.
func collectEntryUploads(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart body: a text-only save.
		return nil
	}

	if files := form.File["images"]; len(files) > 0 {
		return files
	}
	if files := form.File["image"]; len(files) > 0 {
		return files[:1]
	}
	return nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func parseKeepImages(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	var kept []string
	if err := json.Unmarshal([]byte(trimmed), &kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (handler *Handler) discardPairs(pairs []imagelist.Pair) {
	for _, pair := range pairs {
		handler.processor.Discard(pair)
	}
}

// locateCity runs the best-effort GPS/city enrichment on the first new
// upload. It never fails the save.
func (handler *Handler) locateCity(ctx context.Context, data []byte) string {
	if len(data) == 0 {
		return ""
	}
	coordinates, ok := geo.ExtractCoordinates(bytes.NewReader(data))
	if !ok {
		return ""
	}
	city, ok := handler.geocoder.CityFor(ctx, coordinates)
	if !ok {
		return ""
	}
	return city
}
