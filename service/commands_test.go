package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"storenews/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDbPath is used to override the default database path during tests
var testDbPath string

func init() {
	// Save original database path
	testDbPath = dbPath
}

func captureOutput(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	// Run the function
	f()

	// Restore stdout and close pipe
	w.Close()
	os.Stdout = oldStdout
	return <-done
}

func mockStdin(input string, f func()) {
	oldStdin := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r

	// Write input in a goroutine to avoid blocking
	go func() {
		w.Write([]byte(input))
		w.Close()
	}()

	// Run the function
	f()

	// Restore stdin
	os.Stdin = oldStdin
}

func setupTestDB(t *testing.T) string {
	// Create temporary directory for test database
	tmpDir := t.TempDir()
	dbPath = filepath.Join(tmpDir, "test.db")
	oldBackupDir := backupDir
	backupDir = filepath.Join(tmpDir, "backups")
	t.Cleanup(func() {
		dbPath = testDbPath // Restore original path
		backupDir = oldBackupDir
	})
	return tmpDir
}

func TestHandleCommand(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectedExit   int
	}{
		{
			name:           "no arguments",
			args:           []string{},
			expectedOutput: "Usage: storenews <command> [options]\n\nCommands:",
			expectedExit:   1,
		},
		{
			name:           "help command",
			args:           []string{"help"},
			expectedOutput: "Usage: storenews <command> [options]\n\nCommands:",
			expectedExit:   0,
		},
		{
			name:           "unknown command",
			args:           []string{"unknown"},
			expectedOutput: "Unknown command: unknown",
			expectedExit:   1,
		},
		{
			name:           "restore without file",
			args:           []string{"restore"},
			expectedOutput: "Error: backup file path required for restore",
			expectedExit:   1,
		},
		{
			name:           "serve with missing config",
			args:           []string{"serve", "--config", "does-not-exist.yaml"},
			expectedOutput: "Failed to load config",
			expectedExit:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exitCode int
			output := captureOutput(func() {
				exitCode = HandleCommand(tt.args)
			})

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestInitDb(t *testing.T) {
	setupTestDB(t)

	t.Run("initialize new database", func(t *testing.T) {
		output := captureOutput(func() {
			initDb()
		})

		assert.Contains(t, output, "Database initialized successfully")
		assert.DirExists(t, dbPath)
	})

	t.Run("initialize existing database", func(t *testing.T) {
		output := captureOutput(func() {
			initDb()
		})

		assert.Contains(t, output, "Database already exists")
	})
}

func TestClean(t *testing.T) {
	setupTestDB(t)

	t.Run("clean non-existent database", func(t *testing.T) {
		output := captureOutput(func() {
			clean()
		})

		assert.Contains(t, output, "Database is already clean")
	})

	t.Run("clean existing database - confirmed", func(t *testing.T) {
		// Create test database first
		captureOutput(initDb)
		assert.DirExists(t, dbPath)

		var output string
		// Mock user input "y" for confirmation
		mockStdin("y\n", func() {
			output = captureOutput(func() {
				clean()
			})
		})

		assert.Contains(t, output, "Database cleaned successfully")
		assert.NoDirExists(t, dbPath)
	})

	t.Run("clean existing database - cancelled", func(t *testing.T) {
		// Create test database first
		captureOutput(initDb)
		assert.DirExists(t, dbPath)

		var output string
		// Mock user input "n" for confirmation
		mockStdin("n\n", func() {
			output = captureOutput(func() {
				clean()
			})
		})

		assert.Contains(t, output, "Operation cancelled")
		assert.DirExists(t, dbPath)
	})
}

func TestSeedCommand(t *testing.T) {
	setupTestDB(t)

	var code int
	output := captureOutput(func() {
		code = seed()
	})
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Database seeded successfully")

	t.Run("seeding twice fails", func(t *testing.T) {
		output := captureOutput(func() {
			code = seed()
		})
		assert.Equal(t, 1, code)
		assert.Contains(t, output, "database already has 5 news items")
	})
}

func TestBackup(t *testing.T) {
	tmpDir := setupTestDB(t)

	t.Run("backup non-existent database", func(t *testing.T) {
		output := captureOutput(func() {
			backup("")
		})

		assert.Contains(t, output, "No database exists to backup")
	})

	t.Run("backup existing database", func(t *testing.T) {
		// Create and initialize test database
		captureOutput(initDb)
		assert.DirExists(t, dbPath)

		output := captureOutput(func() {
			backup("")
		})

		assert.Contains(t, output, "Database backed up successfully")
		assert.DirExists(t, backupDir)
	})

	t.Run("backup to named file", func(t *testing.T) {
		file := filepath.Join(tmpDir, "named.bak")
		output := captureOutput(func() {
			backup(file)
		})

		assert.Contains(t, output, "Database backed up successfully to "+file)
		assert.FileExists(t, file)
	})
}

func TestRestore(t *testing.T) {
	tmpDir := setupTestDB(t)

	// Build a real backup from a seeded database
	captureOutput(func() { seed() })
	backupFile := filepath.Join(tmpDir, "seeded.bak")
	captureOutput(func() { backup(backupFile) })
	require.FileExists(t, backupFile)

	t.Run("restore non-existent backup", func(t *testing.T) {
		output := captureOutput(func() {
			restore("nonexistent.db")
		})

		assert.Contains(t, output, "Backup file does not exist")
	})

	t.Run("restore empty backup", func(t *testing.T) {
		empty := filepath.Join(tmpDir, "empty.bak")
		require.NoError(t, os.WriteFile(empty, nil, 0644))
		require.NoError(t, os.RemoveAll(dbPath))

		output := captureOutput(func() {
			restore(empty)
		})

		assert.Contains(t, output, "Backup file is empty")
	})

	t.Run("restore to clean state", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(dbPath))

		output := captureOutput(func() {
			restore(backupFile)
		})
		assert.Contains(t, output, "Database restored successfully")

		repo, err := repositories.NewRepository(dbPath)
		require.NoError(t, err)
		defer repo.Close()
		items, err := repo.News.List()
		require.NoError(t, err)
		assert.Len(t, items, 5)
	})

	t.Run("restore with existing database - confirmed", func(t *testing.T) {
		var output string
		// Mock user input "y" for confirmation
		mockStdin("y\n", func() {
			output = captureOutput(func() {
				restore(backupFile)
			})
		})

		assert.Contains(t, output, "Database restored successfully")
	})

	t.Run("restore with existing database - cancelled", func(t *testing.T) {
		var output string
		// Mock user input "n" for confirmation
		mockStdin("n\n", func() {
			output = captureOutput(func() {
				restore(backupFile)
			})
		})

		assert.Contains(t, output, "Operation cancelled")
	})
}

func TestSeed(t *testing.T) {
	repo, err := repositories.NewInMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	app, err := NewApplicationWithRepository(testConfig(), repo)
	require.NoError(t, err)

	require.NoError(t, Seed(context.Background(), repo, app.News))

	languages, err := repo.Languages.List(false)
	require.NoError(t, err)
	assert.Len(t, languages, 2)

	stores, err := repo.Stores.List()
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Main store", stores[0].Name)

	items, err := repo.News.List()
	require.NoError(t, err)
	assert.Len(t, items, 5)

	record, err := repo.URLRecords.Find("NewsItem", items[0].ID, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, record.Slug)
}
