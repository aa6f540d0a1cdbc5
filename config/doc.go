// Package config loads diarscribe configuration from a YAML file, a .env
// file and the process environment using Viper.
//
// # Usage
//
//	var cfg scribe.Config
//	err := config.LoadConfig("diarscribe", &cfg, config.WithConfigFile(path))
//
// Environment variables override file values. Both plain and prefixed
// names are accepted: PUNCTUATION_ENABLED and DIARSCRIBE_PUNCTUATION_ENABLED
// both set punctuation.enabled.
package config
