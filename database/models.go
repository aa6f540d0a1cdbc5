package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunRecord is one successful pipeline run.
type RunRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	Language string `gorm:"size:16"`

	// Input fingerprints (hex BLAKE3).
	AudioPath    string
	AudioHash    string `gorm:"size:64;index"`
	WordsHash    string `gorm:"size:64"`
	TimelineHash string `gorm:"size:64"`

	Words          int
	Sentences      int
	Speakers       int
	SkippedRecords int
	Overlaps       int

	PunctuationApplied bool
	Realigned          int
	DurationMs         int64

	Diagnostics []string `gorm:"serializer:json"`
	Artifacts   []string `gorm:"serializer:json"`
}

// TableName pins the table name.
func (RunRecord) TableName() string { return "runs" }

// BeforeCreate generates a UUID if not already set.
func (r *RunRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
