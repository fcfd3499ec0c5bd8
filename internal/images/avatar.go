package images

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/terraincognita07/memento/internal/config"
	"github.com/terraincognita07/memento/internal/security"
)

const (
	avatarSide        = 200
	avatarJPEGQuality = 90
	avatarSuffixLen   = 8
)

var allowedAvatarTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

type AvatarProcessor struct {
	avatarsDir string
	maxBytes   int64
}

func NewAvatarProcessor(config *config.Config) *AvatarProcessor {
	return &AvatarProcessor{
		avatarsDir: config.AvatarsDir(),
		maxBytes:   config.AvatarMaxBytes,
	}
}

// Process center-crops to the largest square, resizes to exactly
// 200x200, and writes a single JPEG named after the owning user plus a
// random suffix. Type and size limits are independent of the general
// image pipeline.
func (processor *AvatarProcessor) Process(userID uint, contentType string, data []byte) (string, error) {
	if _, allowed := allowedAvatarTypes[normalizeContentType(contentType)]; !allowed {
		return "", ErrUnsupportedFormat
	}
	if int64(len(data)) > processor.maxBytes {
		return "", ErrFileTooLarge
	}

	decoded, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: decode avatar: %v", ErrProcessing, err)
	}

	bounds := decoded.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}

	squared := imaging.CropCenter(flattenAlpha(decoded), side, side)
	avatar := imaging.Resize(squared, avatarSide, avatarSide, imaging.Lanczos)

	suffix, err := security.RandomString(avatarSuffixLen, security.HexAlphabet)
	if err != nil {
		return "", fmt.Errorf("%w: avatar name: %v", ErrProcessing, err)
	}

	fileName := fmt.Sprintf("avatar_%d_%s.jpg", userID, suffix)
	if err := imaging.Save(avatar, filepath.Join(processor.avatarsDir, fileName), imaging.JPEGQuality(avatarJPEGQuality)); err != nil {
		return "", fmt.Errorf("%w: save avatar: %v", ErrProcessing, err)
	}

	return "/static/avatars/" + fileName, nil
}

func normalizeContentType(contentType string) string {
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	if index := strings.Index(normalized, ";"); index >= 0 {
		normalized = strings.TrimSpace(normalized[:index])
	}
	return normalized
}
