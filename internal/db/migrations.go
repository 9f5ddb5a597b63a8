package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embedded "github.com/terramonte/ridgeline/migrations"
	"gorm.io/gorm"
)

var migrationNamePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
var addColumnPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)\b`)

type migration struct {
	version int
	name    string
	sql     string
}

// applyEmbeddedMigrations brings the schema up to date with the forward-only
// SQL files in migrations/. Each file runs in its own transaction and is
// recorded in schema_migrations; ADD COLUMN statements are skipped when the
// column already exists so databases predating the ledger can catch up.
func applyEmbeddedMigrations(database *gorm.DB) error {
	const ledgerSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(ledgerSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readEmbeddedMigrations()
	if err != nil {
		return err
	}

	applied, err := appliedVersions(database)
	if err != nil {
		return err
	}

	for _, entry := range pending {
		if _, done := applied[strconv.Itoa(entry.version)]; done {
			continue
		}
		if err := runMigration(database, entry); err != nil {
			return err
		}
	}
	return nil
}

func readEmbeddedMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(embedded.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	found := make([]migration, 0, len(entries))
	byVersion := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		matches := migrationNamePattern.FindStringSubmatch(name)
		if len(matches) != 2 {
			continue
		}
		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		if previous, dup := byVersion[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		raw, err := fs.ReadFile(embedded.Files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		found = append(found, migration{version: version, name: name, sql: string(raw)})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].version < found[j].version })
	return found, nil
}

func appliedVersions(database *gorm.DB) (map[string]struct{}, error) {
	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	applied := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		applied[row.Version] = struct{}{}
	}
	return applied, nil
}

func runMigration(database *gorm.DB, entry migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitStatements(entry.sql)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			redundant, err := columnAlreadyPresent(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", entry.name, err)
			}
			if redundant {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", entry.name, statement, err)
			}
		}

		return tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			strconv.Itoa(entry.version), entry.name,
		).Error
	})
}

func splitStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func columnAlreadyPresent(tx *gorm.DB, statement string) (bool, error) {
	matches := addColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}
	table := strings.Trim(matches[1], "\"`[]")
	column := strings.Trim(matches[2], "\"`[]")

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	escaped := strings.ReplaceAll(table, `"`, `""`)
	if err := tx.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, escaped)).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, candidate := range columns {
		if strings.EqualFold(strings.TrimSpace(candidate.Name), column) {
			return true, nil
		}
	}
	return false, nil
}
