// Package migrations owns the versioned schema of the service. Every file under
// sql/ is applied at most once and recorded in the schema_migrations table.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedded embed.FS

const (
	dir       = "sql"
	tableName = "schema_migrations"
)

var setupOnce sync.Once
var setupErr error

func setup() error {
	setupOnce.Do(func() {
		goose.SetBaseFS(embedded)
		goose.SetTableName(tableName)
		setupErr = goose.SetDialect("postgres")
	})
	return setupErr
}

// Migrate applies every pending migration. Each migration runs in its own
// transaction, so a failing step leaves neither schema nor data changes behind.
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) (int64, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := setup(); err != nil {
		return 0, fmt.Errorf("configure migrations: %w", err)
	}
	goose.SetLogger(gooseLogger{sugar: logger.Sugar()})

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Versions lists the embedded migration versions in apply order.
func Versions() ([]int64, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	collected, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("collect migrations: %w", err)
	}
	versions := make([]int64, 0, len(collected))
	for _, m := range collected {
		versions = append(versions, m.Version)
	}
	return versions, nil
}

type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.sugar.Infof(strings.TrimSpace(format), v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.sugar.Errorf(strings.TrimSpace(format), v...)
}
