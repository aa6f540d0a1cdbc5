package scribe

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/diarscribe/database"
	"github.com/kbukum/diarscribe/diarization"
	"github.com/kbukum/diarscribe/diarization/rttm"
	"github.com/kbukum/diarscribe/errors"
	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/observability"
	"github.com/kbukum/diarscribe/provider"
	"github.com/kbukum/diarscribe/punctuation"
	"github.com/kbukum/diarscribe/punctuation/labelfile"
	"github.com/kbukum/diarscribe/separation"
	"github.com/kbukum/diarscribe/storage"
	"github.com/kbukum/diarscribe/timeline"
	"github.com/kbukum/diarscribe/transcript"
	"github.com/kbukum/diarscribe/transcription"
	"github.com/kbukum/diarscribe/transcription/whisperx"
	"github.com/kbukum/diarscribe/version"
)

// Stage names, in execution order.
const (
	StagePrepare       = "prepare"
	StageSeparation    = "separation"
	StageTranscription = "transcription"
	StageDiarization   = "diarization"
	StagePunctuation   = "punctuation"
	StageAlignment     = "alignment"
	StageRender        = "render"
	StagePublish       = "publish"
	StageHistory       = "history"
)

// Request is one pipeline run.
type Request struct {
	// AudioPath is the recording. It may be empty when both the words and
	// the speaker turns are read from files.
	AudioPath string
	// Language overrides transcription.language.
	Language string
	// Name overrides output.name.
	Name string
}

// Result describes a successful run.
type Result struct {
	RunID              uuid.UUID
	Name               string
	Language           string
	Sentences          []transcript.Sentence
	Speakers           []int
	PunctuationApplied bool
	Realigned          int
	Diagnostics        []*errors.AppError
	Inputs             []Input
	Artifacts          []storage.Published
	Manifest           *Manifest
	Duration           time.Duration
}

// Pipeline runs the stages strictly in sequence. Each collaborator is
// created for its stage, used once, and released before the next stage
// begins. Artifacts are rendered in memory and published only after every
// stage has succeeded.
type Pipeline struct {
	cfg       *Config
	backends  *Backends
	store     storage.Storage
	separator *separation.Separator
	runs      *database.RunRepository
	metrics   *observability.Metrics
	log       *logger.Logger
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBackends replaces the built-in collaborator registries.
func WithBackends(b *Backends) Option { return func(p *Pipeline) { p.backends = b } }

// WithSeparator replaces the vocal separator built from config.
func WithSeparator(s *separation.Separator) Option { return func(p *Pipeline) { p.separator = s } }

// WithRunRepository records every successful run.
func WithRunRepository(r *database.RunRepository) Option { return func(p *Pipeline) { p.runs = r } }

// WithMetrics records stage and run metrics.
func WithMetrics(m *observability.Metrics) Option { return func(p *Pipeline) { p.metrics = m } }

// WithLogger sets the pipeline logger.
func WithLogger(l *logger.Logger) Option { return func(p *Pipeline) { p.log = l } }

// NewPipeline creates a pipeline publishing to store. cfg must already have
// defaults applied.
func NewPipeline(cfg *Config, store storage.Storage, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, store: store, log: logger.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.backends == nil {
		p.backends = DefaultBackends(cfg, p.log)
	}
	if p.separator == nil {
		p.separator = separation.New(cfg.Separation, p.log)
	}
	p.log = p.log.WithComponent("scribe")
	return p
}

// runState carries the intermediate sequences between stages.
type runState struct {
	id       uuid.UUID
	start    time.Time
	req      Request
	log      *logger.Logger
	name     string
	language string
	workDir  string
	audio    string

	words     []transcript.Word
	turns     []timeline.Turn
	skipped   []*errors.AppError
	labels    []punctuation.Label
	alignment *Alignment
	artifacts []storage.Artifact
	published []storage.Published
	manifest  *Manifest

	inputs      []Input
	stages      []StageTiming
	diagnostics []*errors.AppError
}

func (st *runState) hash(kind string) string {
	for _, in := range st.inputs {
		if in.Kind == kind {
			return in.Blake3
		}
	}
	return ""
}

// Run executes one pipeline run. Any error is fatal and leaves no
// published artifacts behind.
func (p *Pipeline) Run(ctx context.Context, req Request) (res *Result, err error) {
	st := &runState{id: uuid.New(), start: p.now(), req: req, audio: req.AudioPath}
	st.log = p.log.WithFields(logger.Fields(logger.FieldRunID, st.id.String()))

	ctx, span := observability.StartSpan(ctx, observability.SpanRun,
		trace.WithAttributes(attribute.String(observability.AttrRunID, st.id.String())))
	defer func() {
		status := observability.StatusOK
		if err != nil {
			status = observability.StatusError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String(observability.AttrLanguage, st.language))
		span.End()
		if p.metrics != nil {
			p.metrics.RecordRun(ctx, status, st.counts())
		}
	}()

	defer func() {
		if st.workDir != "" && p.cfg.Output.WorkDir == "" {
			_ = os.RemoveAll(st.workDir)
		}
	}()

	steps := []struct {
		name string
		fn   func(context.Context, *runState) error
	}{
		{StagePrepare, p.prepare},
		{StageSeparation, p.separate},
		{StageTranscription, p.transcribe},
		{StageDiarization, p.diarize},
		{StagePunctuation, p.punctuate},
		{StageAlignment, p.align},
		{StageRender, p.render},
		{StagePublish, p.publish},
	}
	for _, s := range steps {
		if err := p.stage(ctx, st, s.name, s.fn); err != nil {
			st.log.Error("run failed", logger.Merge(
				logger.Fields(logger.FieldStage, s.name),
				logger.ErrorFields("run", err),
			))
			return nil, err
		}
	}
	// History is best effort: the artifacts are already published.
	if err := p.stage(ctx, st, StageHistory, p.record); err != nil {
		st.log.Warn("run history not recorded", logger.ErrorFields("record", err))
	}

	res = &Result{
		RunID:              st.id,
		Name:               st.name,
		Language:           st.language,
		Sentences:          st.alignment.Sentences,
		Speakers:           st.alignment.Timeline.Speakers(),
		PunctuationApplied: st.alignment.PunctuationApplied,
		Realigned:          st.alignment.Realigned,
		Diagnostics:        st.diagnostics,
		Inputs:             st.inputs,
		Artifacts:          st.published,
		Manifest:           st.manifest,
		Duration:           p.now().Sub(st.start),
	}
	st.log.Info("run finished", logger.Fields(
		"words", len(st.words),
		"sentences", len(res.Sentences),
		"speakers", len(res.Speakers),
		"diagnostics", len(res.Diagnostics),
		logger.FieldDuration, res.Duration.Milliseconds(),
	))
	return res, nil
}

func (st *runState) counts() observability.RunCounts {
	c := observability.RunCounts{Words: len(st.words), SkippedRecords: len(st.skipped)}
	if st.alignment != nil {
		c.Sentences = len(st.alignment.Sentences)
	}
	return c
}

// skipStage ends a stage with status skipped.
type skipStage struct{ reason string }

func (s skipStage) Error() string { return "skipped: " + s.reason }

func skip(reason string) error { return skipStage{reason: reason} }

// stage runs fn inside a span, logs its outcome with duration, and records
// its timing for the manifest.
func (p *Pipeline) stage(ctx context.Context, st *runState, name string, fn func(context.Context, *runState) error) error {
	ctx, stage := observability.StartStage(ctx, p.metrics, name)
	log := st.log.WithComponent(name)

	err := fn(ctx, st)
	timing := StageTiming{Name: name, DurationMs: stage.Elapsed().Milliseconds()}

	var sk skipStage
	switch {
	case stderrors.As(err, &sk):
		stage.Skip(sk.reason)
		timing.Status, timing.Reason = observability.StatusSkipped, sk.reason
		log.Info("stage skipped", logger.Fields("reason", sk.reason, logger.FieldDuration, timing.DurationMs))
		err = nil
	case err != nil:
		stage.End(err)
		timing.Status = observability.StatusError
		log.Error("stage failed", logger.Merge(
			logger.ErrorFields(name, err),
			logger.Fields(logger.FieldDuration, timing.DurationMs),
		))
		err = fmt.Errorf("%s: %w", name, err)
	default:
		stage.End(nil)
		timing.Status = observability.StatusOK
		log.Info("stage finished", logger.Fields(logger.FieldDuration, timing.DurationMs))
	}
	st.stages = append(st.stages, timing)
	return err
}

func (p *Pipeline) wordsFile() string {
	if p.cfg.Transcription.Provider == whisperx.ProviderName {
		return p.cfg.Transcription.WhisperX.ResultPath
	}
	return ""
}

func (p *Pipeline) rttmFile() string {
	if p.cfg.Diarization.Provider == rttm.ProviderName && p.cfg.Diarization.RTTM.Command == "" {
		return p.cfg.Diarization.RTTM.Path
	}
	return ""
}

func (p *Pipeline) labelsFile() string {
	if p.cfg.Punctuation.Enabled && p.cfg.Punctuation.Provider == labelfile.ProviderName {
		return p.cfg.Punctuation.LabelFile
	}
	return ""
}

// prepare resolves the run's name, language and work directory and
// fingerprints every input file.
func (p *Pipeline) prepare(_ context.Context, st *runState) error {
	if st.req.AudioPath == "" && (p.wordsFile() == "" || p.rttmFile() == "") {
		return errors.InvalidInput("audio", "an audio file is required unless words and speaker turns are read from files")
	}

	st.name = firstNonEmpty(st.req.Name, p.cfg.Output.Name, baseName(st.req.AudioPath), baseName(p.wordsFile()), "transcript")
	st.language = firstNonEmpty(st.req.Language, p.cfg.Transcription.Language)

	for _, in := range []Input{
		{Kind: "audio", Path: st.req.AudioPath},
		{Kind: "words", Path: p.wordsFile()},
		{Kind: "timeline", Path: p.rttmFile()},
		{Kind: "labels", Path: p.labelsFile()},
	} {
		if in.Path == "" {
			continue
		}
		sum, err := Fingerprint(in.Path)
		if err != nil {
			return err
		}
		in.Blake3 = sum
		st.inputs = append(st.inputs, in)
	}

	if dir := p.cfg.Output.WorkDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.StorageError(dir, err)
		}
		st.workDir = dir
	} else {
		dir, err := os.MkdirTemp("", "diarscribe-*")
		if err != nil {
			return errors.StorageError(os.TempDir(), err)
		}
		st.workDir = dir
	}
	st.log.Debug("run prepared", logger.Fields("name", st.name, "inputs", len(st.inputs), "work_dir", st.workDir))
	return nil
}

func (p *Pipeline) separate(ctx context.Context, st *runState) error {
	if !p.cfg.Separation.Enabled {
		return skip("disabled")
	}
	if st.req.AudioPath == "" {
		return skip("no audio")
	}
	vocals, err := provider.Use(ctx, p.separator, func(ctx context.Context, s *separation.Separator) (string, error) {
		return s.Vocals(ctx, st.req.AudioPath, st.workDir)
	})
	if vocals == "" {
		return err
	}
	st.audio = vocals
	if err != nil {
		return skip("separation failed, using original audio")
	}
	return nil
}

func (p *Pipeline) transcribe(ctx context.Context, st *runState) error {
	name := p.cfg.Transcription.Provider
	res, err := provider.UseNamed(ctx, p.backends.Transcribers, name,
		func(ctx context.Context, t transcription.Provider) (*transcription.Result, error) {
			return t.Transcribe(ctx, transcription.Request{AudioPath: st.audio, Language: st.language})
		})
	if err != nil {
		return err
	}
	st.words = res.Words
	if st.language == "" {
		st.language = res.Language
	}
	observability.SetSpanAttributes(ctx, attribute.String(observability.AttrProvider, name))
	st.log.Debug("words received", logger.Fields("words", len(st.words), logger.FieldLanguage, st.language))
	return nil
}

func (p *Pipeline) diarize(ctx context.Context, st *runState) error {
	name := p.cfg.Diarization.Provider
	res, err := provider.UseNamed(ctx, p.backends.Diarizers, name,
		func(ctx context.Context, d diarization.Provider) (*diarization.Result, error) {
			return d.Diarize(ctx, diarization.Request{
				AudioPath:   st.req.AudioPath,
				NumSpeakers: p.cfg.Diarization.NumSpeakers,
				MinSpeakers: p.cfg.Diarization.MinSpeakers,
				MaxSpeakers: p.cfg.Diarization.MaxSpeakers,
			})
		})
	if err != nil {
		return err
	}
	observability.SetSpanAttributes(ctx, attribute.String(observability.AttrProvider, name))
	st.turns = res.Turns
	st.skipped = res.Skipped
	st.diagnostics = append(st.diagnostics, res.Skipped...)
	if len(st.turns) == 0 {
		return errors.EmptyTimeline()
	}
	st.log.Debug("turns received", logger.Fields("turns", len(st.turns), "speakers", res.NumSpeakers(), "skipped", len(res.Skipped)))
	return nil
}

func (p *Pipeline) punctuate(ctx context.Context, st *runState) error {
	pc := p.cfg.Punctuation
	if !pc.Enabled {
		return skip("disabled")
	}
	if !punctuation.Supported(st.language, pc.Languages) {
		return skip("unsupported language " + st.language)
	}
	texts := make([]string, len(st.words))
	for i, w := range st.words {
		texts[i] = w.Text
	}
	labels, err := provider.UseNamed(ctx, p.backends.Restorers, pc.Provider,
		func(ctx context.Context, r punctuation.Restorer) ([]punctuation.Label, error) {
			return r.Restore(ctx, texts, st.language)
		})
	if err != nil {
		return err
	}
	observability.SetSpanAttributes(ctx, attribute.String(observability.AttrProvider, pc.Provider))
	st.labels = labels
	return nil
}

func (p *Pipeline) align(_ context.Context, st *runState) error {
	pc := p.cfg.Punctuation
	a, err := Align(st.words, st.turns, st.labels, st.language, AlignOptions{
		Timeline:           p.cfg.Timeline,
		Punctuate:          pc.Enabled,
		Languages:          pc.Languages,
		Realign:            pc.Realign,
		MaxWordsInSentence: pc.MaxWordsInSentence,
	})
	if err != nil {
		return err
	}
	for _, d := range a.Diagnostics {
		st.log.Warn(d.Message, logger.Merge(logger.Fields(logger.FieldCode, string(d.Code)), d.Details))
	}
	st.diagnostics = append(st.diagnostics, a.Diagnostics...)
	st.alignment = a
	st.log.Debug("alignment finished", logger.Fields(
		"sentences", len(a.Sentences),
		"punctuation_applied", a.PunctuationApplied,
		"realigned", a.Realigned,
	))
	return nil
}

func (p *Pipeline) render(_ context.Context, st *runState) error {
	txt, srt, err := Render(st.alignment.Sentences)
	if err != nil {
		return errors.Internal(err)
	}
	st.artifacts = []storage.Artifact{
		{Kind: "transcript", Path: st.name + ".txt", Data: txt},
		{Kind: "subtitles", Path: st.name + ".srt", Data: srt},
	}
	if !p.cfg.Output.Manifest {
		return nil
	}

	st.manifest = p.buildManifest(st)
	data, err := st.manifest.Marshal()
	if err != nil {
		return errors.Internal(err)
	}
	st.artifacts = append(st.artifacts, storage.Artifact{Kind: "manifest", Path: st.name + ".manifest.yaml", Data: data})
	return nil
}

func (p *Pipeline) buildManifest(st *runState) *Manifest {
	a := st.alignment
	m := &Manifest{
		RunID:     st.id.String(),
		Version:   version.Get().Short(),
		CreatedAt: p.now().UTC(),
		Language:  st.language,
		Inputs:    st.inputs,
		Counts: Counts{
			Words:          len(st.words),
			Turns:          a.Timeline.Len(),
			Speakers:       len(a.Timeline.Speakers()),
			Sentences:      len(a.Sentences),
			SkippedRecords: len(st.skipped),
			Overlaps:       len(a.Overlaps),
		},
		Punctuation: PunctuationRun{Applied: a.PunctuationApplied, Realigned: a.Realigned},
		Stages:      append([]StageTiming(nil), st.stages...),
		Diagnostics: Diagnostics(st.diagnostics),
	}
	if a.PunctuationApplied {
		m.Punctuation.Provider = p.cfg.Punctuation.Provider
	}
	for _, art := range st.artifacts {
		m.Artifacts = append(m.Artifacts, art.Path)
	}
	return m
}

func (p *Pipeline) publish(ctx context.Context, st *runState) error {
	published, err := storage.Publish(ctx, p.store, st.artifacts, st.log)
	if err != nil {
		return err
	}
	st.published = published
	return nil
}

func (p *Pipeline) record(ctx context.Context, st *runState) error {
	if p.runs == nil {
		return skip("disabled")
	}
	a := st.alignment
	rec := &database.RunRecord{
		ID:                 st.id,
		Language:           st.language,
		AudioPath:          st.req.AudioPath,
		AudioHash:          st.hash("audio"),
		WordsHash:          st.hash("words"),
		TimelineHash:       st.hash("timeline"),
		Words:              len(st.words),
		Sentences:          len(a.Sentences),
		Speakers:           len(a.Timeline.Speakers()),
		SkippedRecords:     len(st.skipped),
		Overlaps:           len(a.Overlaps),
		PunctuationApplied: a.PunctuationApplied,
		Realigned:          a.Realigned,
		DurationMs:         p.now().Sub(st.start).Milliseconds(),
	}
	for _, d := range st.diagnostics {
		rec.Diagnostics = append(rec.Diagnostics, string(d.Code)+": "+d.Message)
	}
	for _, pub := range st.published {
		rec.Artifacts = append(rec.Artifacts, pub.URL)
	}
	return p.runs.Save(ctx, rec)
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
