package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/observability"
	"github.com/kbukum/diarscribe/provider"
	"github.com/kbukum/diarscribe/scribe"
	"github.com/kbukum/diarscribe/separation"
	"github.com/kbukum/diarscribe/version"
)

func newCheckCmd() *cobra.Command {
	o := &overrides{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether the configured backends are reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.New(&cfg.Logging, "check")
			backends := scribe.DefaultBackends(cfg, log)
			sh := observability.NewServiceHealth(cfg.Name, version.Get().Short())

			ctx := cmd.Context()
			probe := func(stage string, p provider.Provider, err error, optional bool) {
				if err != nil {
					sh.AddComponent(observability.Health{Name: stage, Stage: stage, Status: observability.HealthStatusDown})
					return
				}
				sh.AddComponent(observability.CheckProvider(ctx, stage, p, optional))
			}

			t, err := backends.Transcribers.Create(cfg.Transcription.Provider)
			probe(scribe.StageTranscription, t, err, false)
			d, err := backends.Diarizers.Create(cfg.Diarization.Provider)
			probe(scribe.StageDiarization, d, err, false)
			if cfg.Punctuation.Enabled {
				r, err := backends.Restorers.Create(cfg.Punctuation.Provider)
				probe(scribe.StagePunctuation, r, err, true)
			}
			if cfg.Separation.Enabled {
				probe(scribe.StageSeparation, separation.New(cfg.Separation, log), nil, true)
			}

			out, err := yaml.Marshal(sh)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			if sh.Status == observability.HealthStatusDown {
				return fmt.Errorf("%d backend(s) unavailable", countDown(sh))
			}
			return nil
		},
	}
	o.bind(cmd)
	return cmd
}

func countDown(sh *observability.ServiceHealth) int {
	n := 0
	for _, c := range sh.Components {
		if c.Status == observability.HealthStatusDown {
			n++
		}
	}
	return n
}
