package repositories

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repository owns the badger database and the repositories built on it.
type Repository struct {
	db       *badger.DB
	dbPath   string
	isTestDB bool

	News       *BadgerNewsRepository
	Comments   *BadgerNewsCommentRepository
	Customers  *BadgerCustomerRepository
	Pictures   *BadgerPictureRepository
	URLRecords *BadgerURLRecordRepository
	Languages  *BadgerLanguageRepository
	Stores     *BadgerStoreRepository
}

// NewRepository opens the database at path. An empty path or "test_db" opens a
// throwaway database in a temporary directory.
func NewRepository(path string) (*Repository, error) {
	isTest := false
	if path == "" || path == "test_db" {
		tempPath, err := os.MkdirTemp("", "storenews_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %v", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	if isTest {
		if err := db.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to drop all keys: %v", err)
		}
	}

	r := NewRepositoryWithDB(db)
	r.dbPath = path
	r.isTestDB = isTest
	return r, nil
}

// NewInMemoryRepository opens a database that lives only in memory.
func NewInMemoryRepository() (*Repository, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return NewRepositoryWithDB(db), nil
}

// NewRepositoryWithDB wires all repositories to an already opened database.
func NewRepositoryWithDB(db *badger.DB) *Repository {
	return &Repository{
		db:         db,
		News:       NewBadgerNewsRepository(db),
		Comments:   NewBadgerNewsCommentRepository(db),
		Customers:  NewBadgerCustomerRepository(db),
		Pictures:   NewBadgerPictureRepository(db),
		URLRecords: NewBadgerURLRecordRepository(db),
		Languages:  NewBadgerLanguageRepository(db),
		Stores:     NewBadgerStoreRepository(db),
	}
}

// DB exposes the underlying database for backup and restore.
func (r *Repository) DB() *badger.DB {
	return r.db
}

func (r *Repository) Close() error {
	err := r.db.Close()
	if err != nil {
		return err
	}

	// Clean up test database
	if r.isTestDB {
		err = os.RemoveAll(r.dbPath)
		if err != nil {
			return fmt.Errorf("failed to cleanup test database: %v", err)
		}
	}
	return nil
}

// Clear drops every key.
func (r *Repository) Clear() error {
	return r.db.DropAll()
}
