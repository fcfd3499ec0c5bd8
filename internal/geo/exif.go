// Package geo reads GPS metadata from uploaded images and resolves
// coordinates to a city name. Everything here is best-effort: a caller
// never fails because location enrichment did.
package geo

import (
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// ExtractCoordinates reads the GPS block from an image's EXIF metadata
// and converts the degree/minute/second rationals to signed decimal
// degrees (south and west negative). Missing or malformed metadata
// yields ok=false, never an error.
func ExtractCoordinates(reader io.Reader) (Coordinates, bool) {
	metadata, err := exif.Decode(reader)
	if err != nil {
		return Coordinates{}, false
	}

	latitude, ok := readCoordinate(metadata, exif.GPSLatitude, exif.GPSLatitudeRef, "S")
	if !ok {
		return Coordinates{}, false
	}
	longitude, ok := readCoordinate(metadata, exif.GPSLongitude, exif.GPSLongitudeRef, "W")
	if !ok {
		return Coordinates{}, false
	}

	return Coordinates{Latitude: latitude, Longitude: longitude}, true
}

func readCoordinate(metadata *exif.Exif, valueName exif.FieldName, refName exif.FieldName, negativeRef string) (float64, bool) {
	valueTag, err := metadata.Get(valueName)
	if err != nil {
		return 0, false
	}
	refTag, err := metadata.Get(refName)
	if err != nil {
		return 0, false
	}

	decimal, ok := dmsToDecimal(valueTag)
	if !ok {
		return 0, false
	}

	ref, err := refTag.StringVal()
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(strings.TrimSpace(ref), negativeRef) {
		decimal = -decimal
	}
	return decimal, true
}

func dmsToDecimal(tag *tiff.Tag) (float64, bool) {
	if tag == nil || tag.Count < 3 {
		return 0, false
	}

	parts := make([]float64, 3)
	for index := 0; index < 3; index++ {
		numerator, denominator, err := tag.Rat2(index)
		if err != nil || denominator == 0 {
			return 0, false
		}
		parts[index] = float64(numerator) / float64(denominator)
	}

	return parts[0] + parts[1]/60 + parts[2]/3600, true
}
