// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded images: EXIF orientation is applied,
// oversized images are scaled down and the result is re-encoded without
// metadata.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/oblog-go/internal/model"
)

// DefaultMaxWidth bounds the width of stored images.
const DefaultMaxWidth = 2048

// DefaultQuality is the JPEG quality used when re-encoding.
const DefaultQuality = 90

// ErrUnsupportedFormat is returned for anything other than JPEG, PNG, GIF
// or WebP.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Result is a processed image ready to be stored.
type Result struct {
	Data     []byte
	Width    int
	Height   int
	MimeType string
	Ext      string
}

// Processor re-encodes images using pure Go libraries.
type Processor struct {
	maxWidth int
	quality  int
}

// NewProcessor creates a new image processor. A non-positive maxWidth uses
// DefaultMaxWidth.
func NewProcessor(maxWidth int) *Processor {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &Processor{
		maxWidth: maxWidth,
		quality:  DefaultQuality,
	}
}

// MaxWidth returns the width bound.
func (p *Processor) MaxWidth() int {
	return p.maxWidth
}

// Process decodes data of the given MIME type, applies EXIF orientation,
// fits it within the width bound and re-encodes it. WebP input is stored as
// JPEG since there is no pure Go WebP encoder.
func (p *Processor) Process(data []byte, mimeType string) (*Result, error) {
	format := mimeTypeToFormat(mimeType)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	// Read EXIF orientation and auto-rotate
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	if img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	// Encode without EXIF (pure Go encoders don't preserve EXIF metadata)
	out, err := encodeImage(img, format, p.quality)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	outType := formatToMimeType(format)
	if format == "webp" {
		outType = model.MimeTypeJPEG
	}

	bounds := img.Bounds()
	return &Result{
		Data:     out,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: outType,
		Ext:      model.AllowedImageTypes[outType],
	}, nil
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
// Orientation values:
// 1: Normal
// 2: Flip horizontal
// 3: Rotate 180°
// 4: Flip vertical
// 5: Rotate 90° CW + flip horizontal
// 6: Rotate 90° CW
// 7: Rotate 90° CCW + flip horizontal
// 8: Rotate 90° CCW
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image to bytes with the specified format and quality.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		// JPEG, and WebP which has no pure Go encoder
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func mimeTypeToFormat(mimeType string) string {
	switch mimeType {
	case model.MimeTypeJPEG:
		return "jpeg"
	case model.MimeTypePNG:
		return "png"
	case model.MimeTypeGIF:
		return "gif"
	case model.MimeTypeWebP:
		return "webp"
	default:
		return ""
	}
}

func formatToMimeType(format string) string {
	switch format {
	case "jpeg":
		return model.MimeTypeJPEG
	case "png":
		return model.MimeTypePNG
	case "gif":
		return model.MimeTypeGIF
	case "webp":
		return model.MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}
