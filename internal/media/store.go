// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media stores uploaded post images on the local filesystem.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/olegiv/oblog-go/internal/imaging"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/util"
)

// URLPrefix is the public path stored files are served under.
const URLPrefix = "/uploads/"

// DefaultMaxBytes is the upload size limit when none is configured.
const DefaultMaxBytes = 10 << 20

// Upload rejections. Both are caller mistakes.
var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmpty           = errors.New("file is empty")
)

// Config configures a Store.
type Config struct {
	Dir      string
	MaxBytes int64
	MaxWidth int
}

// Store writes normalized images under a single directory. File names are
// generated; the client's file name is only logged.
type Store struct {
	dir       string
	maxBytes  int64
	processor *imaging.Processor
	logger    *slog.Logger
	now       func() time.Time
}

// NewStore creates the upload directory if needed and returns a Store.
func NewStore(cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{
		dir:       cfg.Dir,
		maxBytes:  cfg.MaxBytes,
		processor: imaging.NewProcessor(cfg.MaxWidth),
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// MaxBytes returns the upload size limit.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates, normalizes and stores an image read from r. The returned
// Upload carries the public URL of the stored file.
func (s *Store) Save(ctx context.Context, r io.Reader, filename string) (model.Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return model.Upload{}, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return model.Upload{}, ErrEmpty
	}
	if int64(len(data)) > s.maxBytes {
		return model.Upload{}, ErrTooLarge
	}

	mimeType := mimetype.Detect(data).String()
	if !model.IsAllowedImageType(mimeType) {
		s.logger.Info("upload rejected", "detected_type", mimeType, "filename", filename)
		return model.Upload{}, ErrUnsupportedType
	}

	res, err := s.processor.Process(data, mimeType)
	if err != nil {
		// Sniffed as an image but not decodable.
		s.logger.Info("upload rejected", "error", err, "filename", filename)
		return model.Upload{}, ErrUnsupportedType
	}

	if err := ctx.Err(); err != nil {
		return model.Upload{}, err
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), res.Ext)
	if err := s.write(name, res.Data); err != nil {
		return model.Upload{}, err
	}

	s.logger.Info("image stored", "file", name, "bytes", len(res.Data), "width", res.Width, "height", res.Height)
	return model.Upload{
		URL:      URLPrefix + name,
		MimeType: res.MimeType,
		Size:     int64(len(res.Data)),
		Width:    res.Width,
		Height:   res.Height,
	}, nil
}

// write stores data under name via a temp file and rename, so readers never
// see a partial file.
func (s *Store) write(name string, data []byte) error {
	target, err := util.SafeJoinPath(s.dir, name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing upload: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting upload permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("storing upload: %w", err)
	}
	return nil
}
