package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/diarscribe/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"en", false},
		{"", true},
		{"   ", true},
	}
	for _, tt := range tests {
		v := New().Required("language", tt.value)
		if v.HasErrors() != tt.wantErr {
			t.Errorf("Required(%q) errors = %v, want %v", tt.value, v.Errors(), tt.wantErr)
		}
	}
}

func TestValidatorFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "talk.wav")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if v := New().FileExists("audio", file); v.HasErrors() {
		t.Errorf("existing file: %v", v.Errors())
	}
	if v := New().FileExists("audio", ""); v.HasErrors() {
		t.Errorf("empty path should be left to Required: %v", v.Errors())
	}
	if v := New().FileExists("audio", dir); !v.HasErrors() {
		t.Error("directory should fail")
	}
	if v := New().FileExists("audio", filepath.Join(dir, "none.wav")); !v.HasErrors() {
		t.Error("missing file should fail")
	}
}

func TestValidatorOneOfAndMin(t *testing.T) {
	v := New().
		OneOf("provider", "sidecar", []string{"sidecar", "labelfile"}).
		OneOf("provider", "", []string{"sidecar"}).
		Min("max_words", 50, 1)
	if v.HasErrors() {
		t.Errorf("unexpected errors: %v", v.Errors())
	}

	v = New().OneOf("provider", "bert", []string{"sidecar", "labelfile"}).Min("max_words", 0, 1)
	if len(v.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if err := New().Validate(); err != nil {
		t.Errorf("empty validator: %v", err)
	}

	err := New().Required("audio", "").Custom(false, "out", "must be writable").Validate()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "audio: is required; out: must be writable") {
		t.Errorf("message = %q", err.Error())
	}
	appErr, _ := errors.As(err)
	if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != 2 {
		t.Errorf("details = %v", appErr.Details)
	}
}

type section struct {
	Provider string `yaml:"provider" validate:"required,oneof=sidecar labelfile"`
	MaxWords int    `yaml:"max_words_in_sentence" validate:"gte=0"`
	BaseURL  string `yaml:"base_url" validate:"omitempty,url"`
}

type root struct {
	Punctuation section `yaml:"punctuation"`
	Note        string  `yaml:"-"`
}

func TestValidateStruct(t *testing.T) {
	ok := root{Punctuation: section{Provider: "sidecar", BaseURL: "http://localhost:8389"}}
	if err := Validate(ok); err != nil {
		t.Errorf("valid struct: %v", err)
	}

	err := Validate(root{Punctuation: section{Provider: "bert", MaxWords: -1, BaseURL: "::"}})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	msg := err.Error()
	for _, want := range []string{
		"punctuation.provider: must be one of: sidecar labelfile",
		"punctuation.max_words_in_sentence: must be at least 0",
		"punctuation.base_url: must be a valid URL",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Provider":           "provider",
		"MaxWordsInSentence": "max_words_in_sentence",
		"a":                  "a",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
