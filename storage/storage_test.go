package storage_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/storage"
	_ "github.com/kbukum/diarscribe/storage/local"
)

// memStorage is an in-memory Storage that can fail a chosen upload.
type memStorage struct {
	data    map[string]string
	failOn  string
	deleted []string
}

func newMemStorage() *memStorage { return &memStorage{data: make(map[string]string)} }

func (m *memStorage) Upload(_ context.Context, path string, r io.Reader) error {
	if path == m.failOn {
		return fmt.Errorf("disk full")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.data[path] = string(b)
	return nil
}

func (m *memStorage) Delete(_ context.Context, path string) error {
	m.deleted = append(m.deleted, path)
	delete(m.data, path)
	return nil
}

func (m *memStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := m.data[path]
	return ok, nil
}

func (m *memStorage) URL(_ context.Context, path string) (string, error) { return "mem://" + path, nil }

func artifacts() []storage.Artifact {
	return []storage.Artifact{
		{Kind: "transcript", Path: "talk.txt", Data: []byte("Speaker 0: hi\n")},
		{Kind: "subtitles", Path: "talk.srt", Data: []byte("1\n")},
		{Kind: "manifest", Path: "talk.manifest.yaml", Data: []byte("run_id: x\n")},
	}
}

func TestPublish(t *testing.T) {
	m := newMemStorage()
	published, err := storage.Publish(context.Background(), m, artifacts(), nil)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(published) != 3 || published[1].URL != "mem://talk.srt" || published[0].Size != 14 {
		t.Errorf("published = %+v", published)
	}
	if len(m.data) != 3 {
		t.Errorf("stored = %v", m.data)
	}
}

func TestPublishRollsBack(t *testing.T) {
	m := newMemStorage()
	m.failOn = "talk.manifest.yaml"

	published, err := storage.Publish(context.Background(), m, artifacts(), nil)
	if !errors.HasCode(err, errors.ErrCodeStorage) {
		t.Fatalf("err = %v", err)
	}
	if published != nil {
		t.Errorf("published = %v", published)
	}
	if len(m.data) != 0 {
		t.Errorf("partial artifacts left: %v", m.data)
	}
	if strings.Join(m.deleted, ",") != "talk.txt,talk.srt" {
		t.Errorf("deleted = %v", m.deleted)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{"local defaults", storage.Config{}, false},
		{"s3 without bucket", storage.Config{Provider: storage.ProviderS3}, true},
		{"s3 half credentials", storage.Config{Provider: storage.ProviderS3, Bucket: "b", AccessKey: "k"}, true},
		{"s3 ok", storage.Config{Provider: storage.ProviderS3, Bucket: "b"}, false},
		{"unknown", storage.Config{Provider: "ftp"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.ApplyDefaults()
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComponent(t *testing.T) {
	c := storage.NewComponent(storage.Config{BasePath: t.TempDir()}, nil)
	if c.Health(context.Background()).Status != "unhealthy" {
		t.Error("component should be unhealthy before Start")
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.Storage() == nil || c.Health(context.Background()).Status != "healthy" {
		t.Error("component should be healthy after Start")
	}
	if err := c.Stop(context.Background()); err != nil || c.Storage() != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestNewUnregistered(t *testing.T) {
	_, err := storage.New(context.Background(), storage.Config{Provider: storage.ProviderS3, Bucket: "b"}, nil)
	if err == nil || !strings.Contains(err.Error(), "not registered") {
		t.Errorf("err = %v", err)
	}
}
