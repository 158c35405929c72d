// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// AllowedImageTypes maps accepted upload MIME types to the extension the
// stored file receives.
var AllowedImageTypes = map[string]string{
	MimeTypeJPEG: ".jpg",
	MimeTypePNG:  ".png",
	MimeTypeGIF:  ".gif",
	MimeTypeWebP: ".webp",
}

// IsAllowedImageType reports whether an upload of mimeType is accepted.
func IsAllowedImageType(mimeType string) bool {
	_, ok := AllowedImageTypes[mimeType]
	return ok
}

// Upload describes a stored image.
type Upload struct {
	URL      string `json:"imageUrl"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}
