// Package database records run history in SQLite through GORM.
//
// Each successful pipeline run can be stored as a RunRecord: the run id,
// language, input fingerprints, counts, diagnostics and the published
// artifact paths. The store is optional; with Enabled=false the component
// starts without opening a connection and the repository is nil.
//
//	comp := database.NewComponent(cfg.Database, log).WithAutoMigrate(&database.RunRecord{})
//	if err := comp.Start(ctx); err != nil { ... }
//	defer comp.Stop(ctx)
//	err := comp.Runs().Save(ctx, record)
package database
