package storage

import (
	"bytes"
	"context"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/logger"
)

// Artifact is one rendered output file.
type Artifact struct {
	// Kind names the artifact ("transcript", "subtitles", "manifest").
	Kind string
	// Path is the object path relative to the storage root.
	Path string
	Data []byte
}

// Published describes an uploaded artifact.
type Published struct {
	Kind string `json:"kind" yaml:"kind"`
	Path string `json:"path" yaml:"path"`
	URL  string `json:"url" yaml:"url"`
	Size int    `json:"size" yaml:"size"`
}

// Publish uploads artifacts in order. If any upload fails, the artifacts
// this call already uploaded are deleted and a STORAGE_ERROR is returned,
// so a failed publish leaves no partial output behind.
func Publish(ctx context.Context, s Storage, artifacts []Artifact, log *logger.Logger) ([]Published, error) {
	if log == nil {
		log = logger.Nop()
	}
	out := make([]Published, 0, len(artifacts))
	for _, a := range artifacts {
		if err := s.Upload(ctx, a.Path, bytes.NewReader(a.Data)); err != nil {
			rollback(context.WithoutCancel(ctx), s, out, log)
			return nil, errors.StorageError(a.Path, err).WithDetail("kind", a.Kind)
		}
		url, err := s.URL(ctx, a.Path)
		if err != nil {
			url = a.Path
		}
		out = append(out, Published{Kind: a.Kind, Path: a.Path, URL: url, Size: len(a.Data)})
		log.Debug("artifact published", logger.Fields("kind", a.Kind, logger.FieldPath, a.Path, "bytes", len(a.Data)))
	}
	return out, nil
}

func rollback(ctx context.Context, s Storage, done []Published, log *logger.Logger) {
	for _, p := range done {
		if err := s.Delete(ctx, p.Path); err != nil {
			log.Error("artifact rollback failed", logger.Merge(
				logger.Fields(logger.FieldPath, p.Path),
				logger.ErrorFields("delete", err),
			))
			continue
		}
		log.Warn("artifact rolled back", logger.Fields(logger.FieldPath, p.Path))
	}
}
