package punctuation

import (
	"context"

	"github.com/kbukum/diarscribe/provider"
)

// Restorer predicts one punctuation label per word.
type Restorer interface {
	provider.Provider

	// Restore returns exactly one Label per input word.
	Restore(ctx context.Context, words []string, language string) ([]Label, error)
}

// Config configures the punctuation stage.
type Config struct {
	// Enabled turns punctuation restoration on. The language gate applies
	// on top of it.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Provider names the Restorer backend: "sidecar" or "labelfile".
	Provider string `yaml:"provider" mapstructure:"provider" validate:"omitempty,oneof=sidecar labelfile"`
	// Languages overrides DefaultLanguages.
	Languages []string `yaml:"languages" mapstructure:"languages"`
	// Realign re-attributes cross-speaker sentence fragments after reflow.
	Realign bool `yaml:"realign" mapstructure:"realign"`
	// MaxWordsInSentence bounds the realign search window.
	MaxWordsInSentence int `yaml:"max_words_in_sentence" mapstructure:"max_words_in_sentence" validate:"gte=0"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "sidecar"
	}
	if len(c.Languages) == 0 {
		c.Languages = DefaultLanguages
	}
	if c.MaxWordsInSentence == 0 {
		c.MaxWordsInSentence = DefaultMaxWordsInSentence
	}
}
