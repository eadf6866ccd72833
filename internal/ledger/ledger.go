// Package ledger records one row per file optimized by a `skim optimize`
// directory run: tokens before/after, which escalation steps fired, and
// whether Budget-Unmet was set. This is a supplemental feature (spec.md's
// Non-goals bar project-wide *semantic* reasoning; a ledger of past runs
// reasons about nothing) that gives gorm/sqlite a concrete home. It is
// pure CLI-side persistence and never touches the core pipeline's purity:
// nothing in segment, optimize, budget or render imports this package.
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Run is one `skim optimize` invocation over a directory.
type Run struct {
	ID        string `gorm:"primaryKey"`
	StartedAt time.Time
	Policy    string
	Files     []FileResult `gorm:"foreignKey:RunID"`
}

// BeforeCreate assigns a run ID if the caller left it empty.
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// FileResult is one optimized file within a Run.
type FileResult struct {
	ID             uint `gorm:"primaryKey"`
	RunID          string
	Path           string
	TokensBefore   int
	TokensAfter    int
	Escalations    string // comma-joined policy.Step names, in order
	BudgetUnmet    bool
	Segmentation   bool // true when Segmentation-Failure fired for this file
}

// Store wraps a gorm.DB opened against a local SQLite file.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// migrates the ledger schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Run{}, &FileResult{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewRun records the start of an optimize invocation and returns its ID.
func (s *Store) NewRun(policyString string) (string, error) {
	run := &Run{StartedAt: time.Now(), Policy: policyString}
	if err := s.db.Create(run).Error; err != nil {
		return "", err
	}
	return run.ID, nil
}

// RecordFile appends one file's outcome to runID.
func (s *Store) RecordFile(runID, path string, tokensBefore, tokensAfter int, escalations []string, budgetUnmet, segmentation bool) error {
	fr := &FileResult{
		RunID:        runID,
		Path:         path,
		TokensBefore: tokensBefore,
		TokensAfter:  tokensAfter,
		Escalations:  strings.Join(escalations, ","),
		BudgetUnmet:  budgetUnmet,
		Segmentation: segmentation,
	}
	return s.db.Create(fr).Error
}

// Runs returns the most recent n runs (0 means all), newest first, with
// their FileResult rows preloaded.
func (s *Store) Runs(n int) ([]Run, error) {
	var runs []Run
	q := s.db.Preload("Files").Order("started_at desc")
	if n > 0 {
		q = q.Limit(n)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
