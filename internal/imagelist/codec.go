// Package imagelist encodes and decodes the ordered image-path lists
// stored on a diary entry, and derives thumbnail URLs for retained
// originals.
package imagelist

import (
	"encoding/json"
	"path"
	"strings"
)

const (
	originalsSegment  = "/originals/"
	thumbnailsSegment = "/thumbnails/"
	thumbSuffix       = "_thumb"
)

// Pair holds the storage-relative paths of one processed image.
type Pair struct {
	Original  string
	Thumbnail string
}

// Decode parses a stored image-path column. Historic rows may hold a
// JSON array, a JSON string, or a raw bare path; all three decode.
func Decode(stored string) []string {
	trimmed := strings.TrimSpace(stored)
	if trimmed == "" {
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
		return []string{single}
	}

	return []string{trimmed}
}

// Encode writes the canonical representation: a JSON array, or the
// empty string when there is nothing to store.
func Encode(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	encoded, err := json.Marshal(paths)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// ThumbnailFor derives the thumbnail URL paired with a stored original
// URL: the originals path segment becomes the thumbnails segment and a
// _thumb suffix is inserted before a forced .jpg extension. URLs that
// do not follow the convention are reused verbatim as their own
// best-effort thumbnail.
func ThumbnailFor(originalURL string) string {
	index := strings.LastIndex(originalURL, originalsSegment)
	if index < 0 {
		return originalURL
	}

	prefix := originalURL[:index]
	name := originalURL[index+len(originalsSegment):]
	if name == "" || strings.Contains(name, "/") {
		return originalURL
	}

	base := strings.TrimSuffix(name, path.Ext(name))
	if base == "" {
		return originalURL
	}

	return prefix + thumbnailsSegment + base + thumbSuffix + ".jpg"
}

// Merge combines retained originals with newly processed pairs into
// equal-length, order-correspondent path lists. Retained URLs come
// first, in caller order, followed by the new pairs.
func Merge(kept []string, fresh []Pair) (originals []string, thumbnails []string) {
	total := len(kept) + len(fresh)
	if total == 0 {
		return nil, nil
	}

	originals = make([]string, 0, total)
	thumbnails = make([]string, 0, total)
	for _, keptURL := range kept {
		originals = append(originals, keptURL)
		thumbnails = append(thumbnails, ThumbnailFor(keptURL))
	}
	for _, pair := range fresh {
		originals = append(originals, pair.Original)
		thumbnails = append(thumbnails, pair.Thumbnail)
	}
	return originals, thumbnails
}
