package scribe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/diarscribe/database"
	"github.com/kbukum/diarscribe/diarization/rttm"
	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/observability"
	"github.com/kbukum/diarscribe/render"
	"github.com/kbukum/diarscribe/storage/local"
)

const wordsJSON = `{
  "language": "en",
  "segments": [
    {"text": " so we should go", "start": 0.0, "end": 1.3, "words": [
      {"word": "so", "start": 0.0, "end": 0.3},
      {"word": "we", "start": 0.3, "end": 0.6},
      {"word": "should", "start": 0.6, "end": 1.0},
      {"word": "go", "start": 1.0, "end": 1.3}]},
    {"text": " Sure thing", "start": 1.5, "end": 2.1, "words": [
      {"word": "Sure", "start": 1.5, "end": 1.8},
      {"word": "thing", "start": 1.8, "end": 2.1}]}
  ]
}`

const turnsRTTM = `SPEAKER talk 1 0.000 1.000 <NA> <NA> speaker_0 <NA> <NA>
SPEAKER talk 1 oops 1.000 <NA> <NA> speaker_2 <NA> <NA>
SPEAKER talk 1 1.000 1.500 <NA> <NA> speaker_1 <NA> <NA>
`

const labelsJSON = `[["so", "0"], ["we", "0"], ["should", "0"], ["go", "."], ["sure", "0"], ["thing", "!"]]`

type fixture struct {
	dir    string
	outDir string
	cfg    *Config
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{dir: dir, outDir: filepath.Join(dir, "out")}

	cfg := &Config{}
	cfg.Transcription.WhisperX.ResultPath = writeFile(t, filepath.Join(dir, "talk.json"), wordsJSON)
	cfg.Diarization.RTTM.Path = writeFile(t, filepath.Join(dir, "talk.rttm"), turnsRTTM)
	cfg.Punctuation.Enabled = true
	cfg.Punctuation.Realign = true
	cfg.Punctuation.LabelFile = writeFile(t, filepath.Join(dir, "labels.json"), labelsJSON)
	cfg.Output.Manifest = true
	cfg.Output.WorkDir = filepath.Join(dir, "work")
	cfg.Output.Storage.BasePath = f.outDir
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	f.cfg = cfg
	return f
}

func (f *fixture) pipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	store, err := local.NewStorage(f.outDir)
	if err != nil {
		t.Fatal(err)
	}
	return NewPipeline(f.cfg, store, append([]Option{WithLogger(logger.Nop())}, opts...)...)
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.outDir, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func (f *fixture) assertNothingPublished(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.outDir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("artifacts published after fatal error: %v", entries)
	}
}

func TestPipeline_Run(t *testing.T) {
	f := newFixture(t)
	res, err := f.pipeline(t).Run(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantTxt := render.BOM + "Speaker 0: so we should go.\n\nSpeaker 1: Sure thing!\n"
	if got := f.read(t, "talk.txt"); got != wantTxt {
		t.Errorf("transcript = %q, want %q", got, wantTxt)
	}
	wantSrt := render.BOM +
		"1\n00:00:00,000 --> 00:00:01,300\nSpeaker 0: so we should go.\n\n" +
		"2\n00:00:01,500 --> 00:00:02,100\nSpeaker 1: Sure thing!\n\n"
	if got := f.read(t, "talk.srt"); got != wantSrt {
		t.Errorf("subtitles = %q, want %q", got, wantSrt)
	}

	if res.Name != "talk" || res.Language != "en" || !res.PunctuationApplied || res.Realigned != 1 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Diagnostics) != 1 || !errors.HasCode(res.Diagnostics[0], errors.ErrCodeMalformedTimelineRecord) {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
	if len(res.Inputs) != 3 || len(res.Artifacts) != 3 {
		t.Errorf("inputs = %v, artifacts = %v", res.Inputs, res.Artifacts)
	}

	m, err := ParseManifest([]byte(f.read(t, "talk.manifest.yaml")))
	if err != nil {
		t.Fatal(err)
	}
	if m.RunID != res.RunID.String() || m.Counts.Words != 6 || m.Counts.Turns != 2 || m.Counts.Sentences != 2 || m.Counts.SkippedRecords != 1 {
		t.Errorf("manifest = %+v", m)
	}
	if m.Punctuation.Provider != "labelfile" || len(m.Diagnostics) != 1 {
		t.Errorf("manifest punctuation = %+v, diagnostics = %v", m.Punctuation, m.Diagnostics)
	}
	statuses := map[string]string{}
	for _, s := range m.Stages {
		statuses[s.Name] = s.Status
	}
	if statuses[StageSeparation] != observability.StatusSkipped || statuses[StagePunctuation] != observability.StatusOK {
		t.Errorf("stages = %+v", m.Stages)
	}
}

func TestPipeline_UnsupportedLanguage(t *testing.T) {
	f := newFixture(t)
	res, err := f.pipeline(t).Run(context.Background(), Request{Language: "ja", Name: "ja-talk"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.PunctuationApplied {
		t.Error("punctuation applied for ja")
	}
	found := false
	for _, d := range res.Diagnostics {
		found = found || d.Code == errors.ErrCodeUnsupportedLanguage
	}
	if !found {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
	want := render.BOM + "Speaker 0: so we should\n\nSpeaker 1: go Sure thing\n"
	if got := f.read(t, "ja-talk.txt"); got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
}

func TestPipeline_FatalErrorsPublishNothing(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, f *fixture)
		code  errors.ErrorCode
	}{
		{
			name: "label count mismatch",
			setup: func(t *testing.T, f *fixture) {
				writeFile(t, f.cfg.Punctuation.LabelFile, `[["so", "."]]`)
			},
			code: errors.ErrCodeAlignmentLengthMismatch,
		},
		{
			name: "empty timeline",
			setup: func(t *testing.T, f *fixture) {
				writeFile(t, f.cfg.Diarization.RTTM.Path, "SPEAKER talk 1 x y <NA> <NA> speaker_0 <NA> <NA>\n")
			},
			code: errors.ErrCodeEmptyTimeline,
		},
		{
			name: "strict overlap",
			setup: func(t *testing.T, f *fixture) {
				writeFile(t, f.cfg.Diarization.RTTM.Path,
					"SPEAKER talk 1 0.000 1.200 <NA> <NA> speaker_0 <NA> <NA>\n"+
						"SPEAKER talk 1 1.000 1.500 <NA> <NA> speaker_1 <NA> <NA>\n")
				f.cfg.Timeline.Strict = true
			},
			code: errors.ErrCodeOverlappingTimeline,
		},
		{
			name: "missing words file",
			setup: func(t *testing.T, f *fixture) {
				f.cfg.Transcription.WhisperX.ResultPath = filepath.Join(f.dir, "missing.json")
			},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "no audio",
			setup: func(t *testing.T, f *fixture) {
				f.cfg.Diarization.RTTM.Path = ""
				f.cfg.Diarization.RTTM.Command = "diarize"
			},
			code: errors.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)
			_, err := f.pipeline(t).Run(context.Background(), Request{})
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			f.assertNothingPublished(t)
		})
	}
}

func TestPipeline_RecordsHistory(t *testing.T) {
	f := newFixture(t)
	comp := database.NewComponent(database.Config{
		Enabled:     true,
		Path:        filepath.Join(f.dir, "runs.db"),
		AutoMigrate: true,
		LogLevel:    "silent",
	}, nil).WithAutoMigrate(&database.RunRecord{})
	if err := comp.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer comp.Stop(context.Background())

	res, err := f.pipeline(t, WithRunRepository(comp.Runs())).Run(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rec, err := comp.Runs().Get(context.Background(), res.RunID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Words != 6 || rec.Sentences != 2 || rec.Realigned != 1 || len(rec.Artifacts) != 3 || rec.WordsHash == "" {
		t.Errorf("record = %+v", rec)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown transcription provider", func(c *Config) { c.Transcription.Provider = "vosk" }},
		{"rttm without path or command", func(c *Config) { c.Diarization.RTTM = rttm.Config{} }},
		{"labelfile without file", func(c *Config) { c.Punctuation.LabelFile = "" }},
		{"min above max speakers", func(c *Config) { c.Diarization.MinSpeakers, c.Diarization.MaxSpeakers = 3, 2 }},
		{"s3 without bucket", func(c *Config) { c.Output.Storage.Provider = "s3" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newFixture(t).cfg
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
