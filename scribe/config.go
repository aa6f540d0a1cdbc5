package scribe

import (
	"fmt"

	"github.com/kbukum/diarscribe/config"
	"github.com/kbukum/diarscribe/database"
	"github.com/kbukum/diarscribe/diarization/pyannote"
	"github.com/kbukum/diarscribe/diarization/rttm"
	"github.com/kbukum/diarscribe/observability"
	"github.com/kbukum/diarscribe/punctuation"
	"github.com/kbukum/diarscribe/punctuation/labelfile"
	"github.com/kbukum/diarscribe/punctuation/sidecar"
	"github.com/kbukum/diarscribe/separation"
	"github.com/kbukum/diarscribe/storage"
	"github.com/kbukum/diarscribe/timeline"
	"github.com/kbukum/diarscribe/transcription/whisper"
	"github.com/kbukum/diarscribe/transcription/whisperx"
	"github.com/kbukum/diarscribe/validation"
)

// Config is the full diarscribe configuration.
//
//	name: diarscribe
//	transcription:
//	  provider: whisperx
//	diarization:
//	  provider: rttm
//	  rttm:
//	    path: ./talk.rttm
//	punctuation:
//	  enabled: true
//	output:
//	  storage:
//	    provider: local
//	    base_path: ./out
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Transcription TranscriptionConfig  `yaml:"transcription" mapstructure:"transcription"`
	Diarization   DiarizationConfig    `yaml:"diarization" mapstructure:"diarization"`
	Punctuation   PunctuationConfig    `yaml:"punctuation" mapstructure:"punctuation"`
	Separation    separation.Config    `yaml:"separation" mapstructure:"separation"`
	Timeline      timeline.Options     `yaml:"timeline" mapstructure:"timeline"`
	Output        OutputConfig         `yaml:"output" mapstructure:"output"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Telemetry     observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// TranscriptionConfig selects and configures the recognizer+aligner.
type TranscriptionConfig struct {
	// Provider is "whisperx" (CLI or precomputed JSON) or "whisper" (HTTP sidecar).
	Provider string `yaml:"provider" mapstructure:"provider" validate:"oneof=whisperx whisper"`
	// Language forces the transcription language. Empty lets the backend detect it.
	Language string          `yaml:"language,omitempty" mapstructure:"language"`
	WhisperX whisperx.Config `yaml:"whisperx" mapstructure:"whisperx"`
	Whisper  whisper.Config  `yaml:"whisper" mapstructure:"whisper"`
}

// DiarizationConfig selects and configures the diarizer.
type DiarizationConfig struct {
	// Provider is "rttm" (file or external command) or "pyannote" (HTTP sidecar).
	Provider    string          `yaml:"provider" mapstructure:"provider" validate:"oneof=rttm pyannote"`
	NumSpeakers int             `yaml:"num_speakers,omitempty" mapstructure:"num_speakers" validate:"gte=0"`
	MinSpeakers int             `yaml:"min_speakers,omitempty" mapstructure:"min_speakers" validate:"gte=0"`
	MaxSpeakers int             `yaml:"max_speakers,omitempty" mapstructure:"max_speakers" validate:"gte=0"`
	RTTM        rttm.Config     `yaml:"rttm" mapstructure:"rttm"`
	Pyannote    pyannote.Config `yaml:"pyannote" mapstructure:"pyannote"`
}

// PunctuationConfig configures punctuation restoration and its backends.
type PunctuationConfig struct {
	punctuation.Config `yaml:",inline" mapstructure:",squash"`

	Sidecar sidecar.Config `yaml:"sidecar" mapstructure:"sidecar"`
	// LabelFile is the JSON label file read by the labelfile provider.
	LabelFile string `yaml:"label_file,omitempty" mapstructure:"label_file"`
}

// OutputConfig controls artifact naming and publishing.
type OutputConfig struct {
	// Name is the artifact base name. Empty derives it from the audio file.
	Name string `yaml:"name,omitempty" mapstructure:"name"`
	// Manifest publishes <name>.manifest.yaml next to the transcript.
	Manifest bool `yaml:"manifest" mapstructure:"manifest"`
	// WorkDir holds intermediate files. Empty uses a temporary directory
	// removed after the run.
	WorkDir string         `yaml:"work_dir,omitempty" mapstructure:"work_dir"`
	Storage storage.Config `yaml:"storage" mapstructure:"storage"`
}

// Defaults are loader defaults for booleans that are on unless configured off.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"name":                "diarscribe",
		"punctuation.realign": true,
		"output.manifest":     true,
	}
}

// ApplyDefaults fills zero-valued fields of every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "diarscribe"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Transcription.Provider == "" {
		c.Transcription.Provider = whisperx.ProviderName
	}
	c.Transcription.WhisperX.ApplyDefaults()
	if c.Diarization.Provider == "" {
		c.Diarization.Provider = rttm.ProviderName
	}
	if c.Punctuation.Provider == "" && c.Punctuation.LabelFile != "" {
		c.Punctuation.Provider = labelfile.ProviderName
	}
	c.Punctuation.ApplyDefaults()
	c.Separation.ApplyDefaults()
	c.Output.Storage.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks struct tags on every section plus the cross-field rules
// the tags cannot express.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}

	v := validation.New()
	if c.Diarization.Provider == rttm.ProviderName {
		v.Custom(c.Diarization.RTTM.Path != "" || c.Diarization.RTTM.Command != "",
			"diarization.rttm", "path or command is required")
	}
	if c.Diarization.MaxSpeakers > 0 {
		v.Custom(c.Diarization.MinSpeakers <= c.Diarization.MaxSpeakers,
			"diarization.min_speakers", "must not exceed max_speakers")
	}
	if c.Punctuation.Enabled && c.Punctuation.Provider == labelfile.ProviderName {
		v.Required("punctuation.label_file", c.Punctuation.LabelFile)
	}
	if err := v.Validate(); err != nil {
		return err
	}

	if err := c.Output.Storage.Validate(); err != nil {
		return fmt.Errorf("config.output.storage: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config.database: %w", err)
	}
	return nil
}
