package bootstrap

import (
	"github.com/kbukum/diarscribe/config"
)

// Config is satisfied by any config struct that embeds
// config.ServiceConfig by value, for example scribe.Config:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Output OutputConfig  `yaml:"output" mapstructure:"output"`
//	}
//
// NewApp calls ApplyDefaults and then Validate before anything starts.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
