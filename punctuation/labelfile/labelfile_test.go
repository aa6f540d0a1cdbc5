package labelfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/provider"
	"github.com/kbukum/diarscribe/punctuation"
)

func writeLabels(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRestore_Formats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"pairs", `[["hello","0"],["world","."]]`},
		{"objects", `[{"text":"hello","mark":""},{"text":"world","mark":"."}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(writeLabels(t, tt.content))
			got, err := provider.Use(context.Background(), p, func(ctx context.Context, p *Provider) ([]punctuation.Label, error) {
				return p.Restore(ctx, []string{"hello", "world"}, "en")
			})
			if err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if got[0].Mark != "" || got[1].Mark != "." {
				t.Errorf("labels = %+v", got)
			}
			if p.labels != nil {
				t.Error("Close should release loaded labels")
			}
		})
	}
}

func TestRestore_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		p := NewProvider(filepath.Join(t.TempDir(), "none.json"))
		if p.IsAvailable(context.Background()) {
			t.Error("missing file reported available")
		}
		if err := p.Init(context.Background()); !errors.HasCode(err, errors.ErrCodeNotFound) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		p := NewProvider(writeLabels(t, `{"not":"an array"}`))
		if err := p.Init(context.Background()); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("bad pair", func(t *testing.T) {
		p := NewProvider(writeLabels(t, `[["a"]]`))
		if err := p.Init(context.Background()); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		p := NewProvider(writeLabels(t, `[["a","."]]`))
		if err := p.Init(context.Background()); err != nil {
			t.Fatal(err)
		}
		if _, err := p.Restore(context.Background(), []string{"a", "b"}, "en"); !errors.HasCode(err, errors.ErrCodeAlignmentLengthMismatch) {
			t.Errorf("err = %v", err)
		}
	})
}
