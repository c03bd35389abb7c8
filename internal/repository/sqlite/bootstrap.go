package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/msomdec/ideabox/internal/repository/sqlite/schema"
)

// applySchema executes every embedded .sql file in name order inside a
// single transaction. All statements are idempotent (IF NOT EXISTS), so it
// is safe to run on every startup.
func applySchema(ctx context.Context, db *sql.DB) error {
	files, err := listSchemaFiles()
	if err != nil {
		return fmt.Errorf("list schema files: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, filename := range files {
		content, err := fs.ReadFile(schema.FS, filename)
		if err != nil {
			return fmt.Errorf("read %s: %w", filename, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute %s: %w", filename, err)
		}
		slog.Debug("schema file applied", "file", filename)
	}

	return tx.Commit()
}

func listSchemaFiles() ([]string, error) {
	entries, err := fs.ReadDir(schema.FS, ".")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
