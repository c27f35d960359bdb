// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
Package imaging implements the upload compression pipeline.

Every binary attached to a content submission passes through [Compress]
before it reaches durable storage. The pipeline is format-aware:

  - JPEG, PNG, and WebP are decoded, downscaled so the longest side does not
    exceed [constants.MaxImageDimension] pixels, and re-encoded at a fixed
    quality.
  - Anything else (PDFs, spreadsheets, unknown formats) is returned
    byte-identical to the input.

The format is sniffed from the bytes themselves, never from the filename.
*/
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	webpenc "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xwebp "golang.org/x/image/webp"

	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
)

// # Compression Pipeline

/*
Compress re-encodes a supported image at a bounded size and fixed quality.

Parameters:
  - data: []byte (Raw upload bytes)

Returns:
  - []byte: Compressed image bytes, or the input unchanged for non-images
  - error: Decode/encode failures on recognised image formats
*/
func Compress(data []byte) ([]byte, error) {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return recode(data, encodeJPEG)
	case "image/png":
		return recode(data, encodePNG)
	case "image/webp":
		return recodeWebP(data)
	default:
		// Non-image payloads (e.g. supporting PDFs) pass through untouched.
		return data, nil
	}
}

// recode decodes, bounds, and re-encodes via the supplied encoder.
func recode(data []byte, encode func(image.Image) ([]byte, error)) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: failed to decode image: %w", err)
	}
	return encode(bound(decoded))
}

// recodeWebP handles WebP separately: the stdlib image registry cannot
// decode it, so decoding goes through x/image and encoding through the
// dedicated encoder.
func recodeWebP(data []byte) ([]byte, error) {
	decoded, err := xwebp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: failed to decode webp: %w", err)
	}

	var buffer bytes.Buffer
	if err := webpenc.Encode(&buffer, bound(decoded), &webpenc.Options{Quality: constants.ImageQuality}); err != nil {
		return nil, fmt.Errorf("imaging: failed to encode webp: %w", err)
	}
	return buffer.Bytes(), nil
}

// bound downscales so the longest side is at most MaxImageDimension.
// Smaller images are left at their original resolution.
func bound(source image.Image) image.Image {
	size := source.Bounds().Size()
	if size.X <= constants.MaxImageDimension && size.Y <= constants.MaxImageDimension {
		return source
	}
	return imaging.Fit(source, constants.MaxImageDimension, constants.MaxImageDimension, imaging.Lanczos)
}

func encodeJPEG(source image.Image) ([]byte, error) {
	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, source, &jpeg.Options{Quality: constants.ImageQuality}); err != nil {
		return nil, fmt.Errorf("imaging: failed to encode jpeg: %w", err)
	}
	return buffer.Bytes(), nil
}

func encodePNG(source image.Image) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&buffer, source); err != nil {
		return nil, fmt.Errorf("imaging: failed to encode png: %w", err)
	}
	return buffer.Bytes(), nil
}
