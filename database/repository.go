package database

import (
	"context"

	"github.com/google/uuid"
)

// RunRepository stores and queries RunRecords.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a repository over db.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save inserts a run record.
func (r *RunRepository) Save(ctx context.Context, rec *RunRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return FromDatabase(err, "run", rec.ID.String())
	}
	return nil
}

// Get returns the run with the given id, or NOT_FOUND.
func (r *RunRepository) Get(ctx context.Context, id uuid.UUID) (*RunRecord, error) {
	var rec RunRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, FromDatabase(err, "run", id.String())
	}
	return &rec, nil
}

// List returns the most recent runs, newest first. limit <= 0 returns all.
func (r *RunRepository) List(ctx context.Context, limit int) ([]RunRecord, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []RunRecord
	if err := q.Find(&out).Error; err != nil {
		return nil, FromDatabase(err, "runs", "")
	}
	return out, nil
}

// FindByAudio returns the runs whose audio fingerprint matches hash.
func (r *RunRepository) FindByAudio(ctx context.Context, hash string) ([]RunRecord, error) {
	var out []RunRecord
	err := r.db.WithContext(ctx).Where("audio_hash = ?", hash).Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, FromDatabase(err, "runs", hash)
	}
	return out, nil
}
