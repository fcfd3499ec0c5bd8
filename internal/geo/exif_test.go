package geo

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"testing"
)

func TestExtractCoordinatesRejectsGarbage(t *testing.T) {
	if _, ok := ExtractCoordinates(strings.NewReader("definitely not an image")); ok {
		t.Fatal("garbage input must yield no location")
	}
	if _, ok := ExtractCoordinates(bytes.NewReader(nil)); ok {
		t.Fatal("empty input must yield no location")
	}
}

func TestExtractCoordinatesMissingMetadataYieldsNoLocation(t *testing.T) {
	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	if _, ok := ExtractCoordinates(&buffer); ok {
		t.Fatal("jpeg without metadata must yield no location")
	}
}
