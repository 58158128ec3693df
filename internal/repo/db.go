// Package repo – SQLite seed import.
//
// Besides the JSON payload, seed questions can be imported once at startup
// from a SQLite database (pure Go driver, no CGO) holding a "questions"
// table. The database is only read; the in-memory store stays the source of
// truth and nothing is written back.
package repo

import (
	"context"
	"fmt"
	"os"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// SeedRow is the GORM mapping of one row of the seed "questions" table.
// Tags are stored as a JSON text column; SQL NULL maps to nil tags and "[]"
// to empty tags.
type SeedRow struct {
	ID      string   `gorm:"type:varchar(255);primaryKey"`
	Title   string   `gorm:"type:text;not null"`
	Content string   `gorm:"type:text;not null"`
	Tags    []string `gorm:"type:text;serializer:json"`
}

// TableName returns the database table name for SeedRow.
func (SeedRow) TableName() string { return "questions" }

// OpenSQLite opens an existing SQLite database for seed import. The pool is
// pinned to a single connection so the read-only PRAGMA covers every query.
// Queries are traced through the global OpenTelemetry provider.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early instead of letting sqlite create an empty file.
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite tracing: %w", err)
	}
	for _, pragma := range []string{"PRAGMA busy_timeout=5000;", "PRAGMA query_only=ON;"} {
		if err := db.Exec(pragma).Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("sqlite %q: %w", pragma, err)
		}
	}
	return db, nil
}

// LoadSeedSQLite reads every row of the questions table.
func LoadSeedSQLite(ctx context.Context, db *gorm.DB) (map[domain.QuestionID]domain.Question, error) {
	var rows []SeedRow
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read seed table: %w", err)
	}

	out := make(map[domain.QuestionID]domain.Question, len(rows))
	for _, r := range rows {
		id, err := domain.NewQuestionID(r.ID)
		if err != nil {
			return nil, fmt.Errorf("read seed table: %w", err)
		}
		out[id] = domain.Question{ID: id, Title: r.Title, Content: r.Content, Tags: r.Tags}
	}
	return out, nil
}

// ImportSeedSQLite opens path, reads its questions and closes the database.
func ImportSeedSQLite(ctx context.Context, path string) (map[domain.QuestionID]domain.Question, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return LoadSeedSQLite(ctx, db)
}

// MergeSeeds combines seed maps; later maps win on id collisions.
func MergeSeeds(seeds ...map[domain.QuestionID]domain.Question) map[domain.QuestionID]domain.Question {
	out := make(map[domain.QuestionID]domain.Question)
	for _, s := range seeds {
		for id, q := range s {
			out[id] = q
		}
	}
	return out
}
