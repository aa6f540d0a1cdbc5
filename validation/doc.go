// Package validation checks configuration sections and run requests.
//
// Struct tags are checked with the validator library; field names in
// messages follow the yaml keys so they match what users write in
// config.yml:
//
//	type Config struct {
//	    Provider string `yaml:"provider" validate:"required,oneof=whisperx whisper"`
//	}
//	err := validation.Validate(cfg)
//
// Checks that depend on more than one field use the collector:
//
//	v := validation.New()
//	v.Required("audio", req.AudioPath).FileExists("audio", req.AudioPath)
//	return v.Validate()
//
// Both report INVALID_INPUT errors listing every failing field.
package validation
