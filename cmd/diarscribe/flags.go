package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/diarscribe/config"
	"github.com/kbukum/diarscribe/diarization/rttm"
	"github.com/kbukum/diarscribe/punctuation/labelfile"
	"github.com/kbukum/diarscribe/scribe"
	"github.com/kbukum/diarscribe/storage"
	"github.com/kbukum/diarscribe/transcription/whisperx"
)

// overrides are the command-line flags that take precedence over the
// config file.
type overrides struct {
	audio    string
	words    string
	rttm     string
	labels   string
	language string
	name     string
	out      string
	noStem   bool
}

func (o *overrides) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.audio, "audio", "", "audio file to transcribe")
	f.StringVar(&o.words, "words", "", "precomputed whisperx JSON result instead of running whisperx")
	f.StringVar(&o.rttm, "rttm", "", "precomputed RTTM speaker turns instead of running the diarizer")
	f.StringVar(&o.labels, "labels", "", "precomputed punctuation labels (JSON) instead of calling the sidecar")
	f.StringVar(&o.language, "language", "", "transcript language, e.g. en")
	f.StringVar(&o.name, "name", "", "artifact base name (default: audio file name)")
	f.StringVar(&o.out, "out", "", "publish artifacts to this local directory")
	f.BoolVar(&o.noStem, "no-stem", false, "skip vocal separation")
}

func (o *overrides) apply(cfg *scribe.Config) {
	if o.words != "" {
		cfg.Transcription.Provider = whisperx.ProviderName
		cfg.Transcription.WhisperX.ResultPath = o.words
	}
	if o.rttm != "" {
		cfg.Diarization.Provider = rttm.ProviderName
		cfg.Diarization.RTTM.Path = o.rttm
		cfg.Diarization.RTTM.Command = ""
	}
	if o.labels != "" {
		cfg.Punctuation.Enabled = true
		cfg.Punctuation.Provider = labelfile.ProviderName
		cfg.Punctuation.LabelFile = o.labels
	}
	if o.language != "" {
		cfg.Transcription.Language = o.language
	}
	if o.name != "" {
		cfg.Output.Name = o.name
	}
	if o.out != "" {
		cfg.Output.Storage.Provider = storage.ProviderLocal
		cfg.Output.Storage.BasePath = o.out
	}
	if o.noStem {
		cfg.Separation.Enabled = false
	}
}

// loadConfig reads the config file named by --config, or the first one
// found in the standard locations, and applies the flag overrides.
func loadConfig(cmd *cobra.Command, o *overrides) (*scribe.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg := &scribe.Config{}
	if err := config.LoadConfig("diarscribe", cfg,
		config.WithConfigFile(path),
		config.WithDefaults(scribe.Defaults()),
	); err != nil {
		return nil, err
	}
	o.apply(cfg)
	return cfg, nil
}
