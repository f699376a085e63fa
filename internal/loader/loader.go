// Package loader reads fixture documents from a file, stdin or MySQL and
// hands them to a session.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/database"
	"github.com/dbsmedya/personpad/internal/session"
	"github.com/dbsmedya/personpad/internal/sqlutil"
	"github.com/dbsmedya/personpad/internal/types"
)

// Source produces one JSON fixture document.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	Describe() string
}

// NewSource builds the Source selected by cfg.Data. db is only used for the
// mysql source and may be nil otherwise.
func NewSource(cfg *config.Config, db DocumentFetcher) (Source, error) {
	switch cfg.Data.Source {
	case "file", "":
		return NewFileSource(cfg.Data.File), nil
	case "mysql":
		if db == nil {
			return nil, fmt.Errorf("mysql source requires a database connection")
		}
		return NewMySQLSource(db, cfg.Data, &cfg.Source), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

// Load reads src and loads the result into sess. A failed read or parse
// leaves sess unchanged.
func Load(ctx context.Context, src Source, sess *session.Session) (types.LoadStats, error) {
	start := time.Now()
	stats := types.LoadStats{Source: src.Describe()}

	data, err := src.Read(ctx)
	if err != nil {
		return stats, err
	}
	stats.Bytes = len(data)

	records, err := sess.Load(data, stats.Source)
	if err != nil {
		return stats, fmt.Errorf("failed to load %s: %w", stats.Source, err)
	}

	stats.Records = len(records)
	stats.Duration = time.Since(start)
	return stats, nil
}

// DocumentFetcher is the part of the database manager the MySQL source needs.
type DocumentFetcher interface {
	FetchDocuments(ctx context.Context, q sqlutil.DocumentQuery) ([]database.Document, error)
}
