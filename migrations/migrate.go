// Package migrations embeds the SQL schemas of both databases the
// cyber-aware binaries touch and applies them with goose.
//
// The postgres set provisions the hosted backend (tables, signup trigger,
// row-level security and access policies) and is applied by the provision
// command. The sqlite set creates the client's local session store.
package migrations

import (
	"bufio"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

const (
	remoteDir = "postgres"
	localDir  = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// ErrNilDB is returned when no database handle was supplied.
var ErrNilDB = errors.New("db is nil")

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// MigrateRemote applies the backend provisioning migrations to a Postgres
// database opened with the pgx driver.
func MigrateRemote(db *sql.DB) error {
	return migrate(db, "pgx", remoteDir)
}

// MigrateLocal applies the local session store migrations to a SQLite
// database.
func MigrateLocal(db *sql.DB) error {
	return migrate(db, "sqlite3", localDir)
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// ProvisioningScript returns the Up sections of the backend migrations as
// one script an operator can paste into the database SQL editor. goose
// annotations are removed.
func ProvisioningScript() (string, error) {
	entries, err := fs.ReadDir(embedMigrations, remoteDir)
	if err != nil {
		return "", fmt.Errorf("read provisioning migrations: %w", err)
	}

	var b strings.Builder
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		raw, err := embedMigrations.ReadFile(remoteDir + "/" + entry.Name())
		if err != nil {
			return "", fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		writeUpSection(&b, string(raw))
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}

func writeUpSection(b *strings.Builder, script string) {
	scanner := bufio.NewScanner(strings.NewReader(script))
	for scanner.Scan() {
		line := scanner.Text()
		annotation := strings.TrimSpace(line)
		if strings.HasPrefix(annotation, "-- +goose") {
			if strings.Contains(annotation, "Down") {
				return
			}
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}
