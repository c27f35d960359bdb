// Copyright (c) 2026 MangroveNet. All rights reserved.

package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
	"github.com/mangrovenet/mangrovenet/internal/platform/imaging"
)

// encodeTestImage renders a flat-color image of the given size.
func encodeTestImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := color.RGBA{R: 20, G: 90, B: 60, A: 255}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			canvas.Set(x, y, fill)
		}
	}

	var buffer bytes.Buffer
	require.NoError(t, encode(&buffer, canvas))
	return buffer.Bytes()
}

func encodeJPEG(buffer *bytes.Buffer, source image.Image) error {
	return jpeg.Encode(buffer, source, &jpeg.Options{Quality: 95})
}

func encodePNG(buffer *bytes.Buffer, source image.Image) error {
	return png.Encode(buffer, source)
}

/*
TestCompress_DownscalesOversizedJPEG verifies that an image wider than the
dimension cap comes back bounded with its aspect ratio preserved.
*/
func TestCompress_DownscalesOversizedJPEG(t *testing.T) {
	original := encodeTestImage(t, 2*constants.MaxImageDimension, constants.MaxImageDimension/2, encodeJPEG)

	compressed, err := imaging.Compress(original)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(compressed))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	size := decoded.Bounds().Size()
	assert.Equal(t, constants.MaxImageDimension, size.X)
	assert.Equal(t, constants.MaxImageDimension/4, size.Y)
}

/*
TestCompress_KeepsSmallPNGResolution verifies that images already inside the
cap are re-encoded without resizing.
*/
func TestCompress_KeepsSmallPNGResolution(t *testing.T) {
	original := encodeTestImage(t, 640, 480, encodePNG)

	compressed, err := imaging.Compress(original)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(compressed))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Pt(640, 480), decoded.Bounds().Size())
}

/*
TestCompress_PassesThroughNonImages verifies the byte-identical path for
supporting documents.
*/
func TestCompress_PassesThroughNonImages(t *testing.T) {
	document := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

	result, err := imaging.Compress(document)
	require.NoError(t, err)
	assert.Equal(t, document, result)
}

/*
TestCompress_RejectsCorruptJPEG verifies that a payload sniffing as JPEG but
failing to decode surfaces an error instead of being stored.
*/
func TestCompress_RejectsCorruptJPEG(t *testing.T) {
	// A valid JPEG signature followed by garbage.
	corrupt := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 64)...)

	_, err := imaging.Compress(corrupt)
	assert.Error(t, err)
}
