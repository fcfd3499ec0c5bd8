// Package images turns raw uploaded bytes into persisted media: an
// orientation-corrected original plus a bounded JPEG thumbnail, and
// square avatars.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/terraincognita07/memento/internal/config"
	"github.com/terraincognita07/memento/internal/imagelist"

	// Registers the webp decoder; jpeg/png/gif come with imaging.
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrFileTooLarge      = errors.New("image file too large")
	ErrProcessing        = errors.New("image processing failed")
)

var allowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

type Processor struct {
	originalsDir  string
	thumbnailsDir string
	maxBytes      int64
	thumbnailEdge int
}

func NewProcessor(config *config.Config) *Processor {
	return &Processor{
		originalsDir:  config.OriginalsDir(),
		thumbnailsDir: config.ThumbnailsDir(),
		maxBytes:      config.MaxImageBytes(),
		thumbnailEdge: config.ThumbnailEdge,
	}
}

// CheckSize measures the actual payload, never a client-declared size.
func (processor *Processor) CheckSize(data []byte) error {
	if int64(len(data)) > processor.maxBytes {
		return ErrFileTooLarge
	}
	return nil
}

// Process validates the declared filename, corrects embedded
// orientation, persists the original in its source encoding under a
// random name, and derives a compressed JPEG thumbnail whose longer
// edge never exceeds the configured maximum. Partially written files
// are removed before any error surfaces.
func (processor *Processor) Process(filename string, data []byte) (imagelist.Pair, error) {
	extension := fileExtension(filename)
	if _, allowed := allowedExtensions[extension]; !allowed {
		return imagelist.Pair{}, ErrUnsupportedFormat
	}
	if err := processor.CheckSize(data); err != nil {
		return imagelist.Pair{}, err
	}

	decoded, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return imagelist.Pair{}, fmt.Errorf("%w: decode: %v", ErrProcessing, err)
	}

	name := uuid.NewString()
	originalName := name + "." + extension
	thumbnailName := name + "_thumb.jpg"
	originalPath := filepath.Join(processor.originalsDir, originalName)
	thumbnailPath := filepath.Join(processor.thumbnailsDir, thumbnailName)

	if err := processor.writeOriginal(originalPath, extension, decoded, data); err != nil {
		removeFiles(originalPath, thumbnailPath)
		return imagelist.Pair{}, fmt.Errorf("%w: save original: %v", ErrProcessing, err)
	}

	thumbnail := imaging.Fit(flattenAlpha(decoded), processor.thumbnailEdge, processor.thumbnailEdge, imaging.Lanczos)
	if err := imaging.Save(thumbnail, thumbnailPath, imaging.JPEGQuality(70)); err != nil {
		removeFiles(originalPath, thumbnailPath)
		return imagelist.Pair{}, fmt.Errorf("%w: save thumbnail: %v", ErrProcessing, err)
	}

	return imagelist.Pair{
		Original:  "/static/originals/" + originalName,
		Thumbnail: "/static/thumbnails/" + thumbnailName,
	}, nil
}

// writeOriginal keeps the source encoding. WebP has no pure-Go encoder
// and its decoder carries no orientation metadata, so webp originals
// are the uploaded bytes verbatim.
func (processor *Processor) writeOriginal(path string, extension string, decoded image.Image, raw []byte) error {
	if extension == "webp" {
		return os.WriteFile(path, raw, 0o644)
	}
	return imaging.Save(decoded, path)
}

// Discard removes the persisted files behind a processed pair, used to
// roll back earlier writes when a later step of a save fails.
func (processor *Processor) Discard(pair imagelist.Pair) {
	if name := filepath.Base(pair.Original); name != "." && name != "/" {
		removeFiles(filepath.Join(processor.originalsDir, name))
	}
	if name := filepath.Base(pair.Thumbnail); name != "." && name != "/" {
		removeFiles(filepath.Join(processor.thumbnailsDir, name))
	}
}

func fileExtension(filename string) string {
	trimmed := strings.TrimSpace(filename)
	if !strings.Contains(trimmed, ".") {
		return ""
	}
	parts := strings.Split(trimmed, ".")
	return strings.ToLower(parts[len(parts)-1])
}

func flattenAlpha(source image.Image) image.Image {
	bounds := source.Bounds()
	flattened := image.NewRGBA(bounds)
	draw.Draw(flattened, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flattened, bounds, source, bounds.Min, draw.Over)
	return flattened
}

func removeFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = os.Remove(path)
		}
	}
}
