package shared

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		ConfigureDatabase(db, 1, 1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM merges LIMIT 1"); err != nil {
			t.Errorf("merges table should exist after migrations: %v", err)
		}
		if _, err := db.Exec("SELECT 1 FROM merge_items LIMIT 1"); err != nil {
			t.Errorf("merge_items table should exist after migrations: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("running migrations twice should be a no-op: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM merges LIMIT 1"); err == nil {
			t.Error("merges table should not exist after rollback")
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is left to roll back")
		}
	})

	t.Run("removeComments", func(t *testing.T) {
		got := removeComments("-- heading\nCREATE TABLE t (id INT); -- trailing\n\n")
		if got != "CREATE TABLE t (id INT);" {
			t.Errorf("unexpected result %q", got)
		}
	})
}

func TestOpenJournal(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		_, err := OpenJournal(DatabaseConfig{Enabled: false, Path: ":memory:"})
		if !errors.Is(err, ErrDatabaseDisabled) {
			t.Errorf("expected ErrDatabaseDisabled, got %v", err)
		}
	})

	t.Run("Enabled", func(t *testing.T) {
		db, err := OpenJournal(DatabaseConfig{
			Enabled:      true,
			Path:         filepath.Join(t.TempDir(), "journal.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		})
		if err != nil {
			t.Fatalf("failed to open journal: %v", err)
		}
		defer db.Close()

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected migrations to be applied")
		}
	})
}
