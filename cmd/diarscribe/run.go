package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/diarscribe/bootstrap"
	"github.com/kbukum/diarscribe/database"
	"github.com/kbukum/diarscribe/logger"
	"github.com/kbukum/diarscribe/observability"
	"github.com/kbukum/diarscribe/scribe"
	"github.com/kbukum/diarscribe/storage"
	"github.com/kbukum/diarscribe/version"

	_ "github.com/kbukum/diarscribe/storage/local"
	_ "github.com/kbukum/diarscribe/storage/s3"
)

func newRunCmd() *cobra.Command {
	o := &overrides{}
	cmd := &cobra.Command{
		Use:   "run [audio]",
		Short: "Transcribe, diarize and punctuate a recording, then publish the artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && o.audio == "" {
				o.audio = args[0]
			}
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, scribe.Request{AudioPath: o.audio, Language: o.language, Name: o.name})
		},
	}
	o.bind(cmd)
	return cmd
}

func run(ctx context.Context, cfg *scribe.Config, req scribe.Request) error {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	store := storage.NewComponent(cfg.Output.Storage, app.Logger)
	db := database.NewComponent(cfg.Database, app.Logger).WithAutoMigrate(&database.RunRecord{})
	if err := app.RegisterComponent(store); err != nil {
		return err
	}
	if err := app.RegisterComponent(db); err != nil {
		return err
	}

	var metrics *observability.Metrics
	app.OnStart(func(ctx context.Context) error {
		shutdown, err := observability.Setup(ctx, cfg.Telemetry, observability.Resource{
			ServiceName:    cfg.Name,
			ServiceVersion: version.Get().Short(),
			Environment:    cfg.Environment,
		}, app.Logger)
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		app.OnStop(bootstrap.Hook(shutdown))
		if cfg.Telemetry.Enabled {
			if metrics, err = observability.NewMetrics(observability.Meter()); err != nil {
				return fmt.Errorf("telemetry metrics: %w", err)
			}
		}
		return nil
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		opts := []scribe.Option{scribe.WithLogger(app.Logger), scribe.WithMetrics(metrics)}
		if runs := db.Runs(); runs != nil {
			opts = append(opts, scribe.WithRunRepository(runs))
		}
		res, err := scribe.NewPipeline(cfg, store.Storage(), opts...).Run(ctx, req)
		if err != nil {
			return err
		}
		for _, a := range res.Artifacts {
			app.Logger.Info("artifact published", logger.Fields(logger.FieldPath, a.Path, "url", a.URL))
		}
		return nil
	})
}
