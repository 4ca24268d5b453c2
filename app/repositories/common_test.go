package repositories

import (
	"testing"

	"storenews/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewInMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func TestGetNextID(t *testing.T) {
	// Create temporary directory for test database
	tmpDir := t.TempDir()
	db, err := badger.Open(badger.DefaultOptions(tmpDir).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	t.Run("first ID", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, NewsSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, id)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sequential IDs", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			for i := 2; i <= 5; i++ {
				id, err := getNextID(txn, NewsSeqKey)
				assert.NoError(t, err)
				assert.Equal(t, i, id)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("different sequence keys", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			commentID, err := getNextID(txn, CommentSeqKey)
			assert.NoError(t, err)
			assert.Equal(t, 1, commentID, "Comment sequence should start from 1")
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("IDs above one byte", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			var id int
			for i := 0; i < 300; i++ {
				var err error
				id, err = getNextID(txn, "test:seq")
				if err != nil {
					return err
				}
			}
			assert.Equal(t, 300, id)
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestGetEntity(t *testing.T) {
	repo := newTestRepository(t)

	t.Run("missing key maps to ErrNotFound", func(t *testing.T) {
		err := repo.DB().View(func(txn *badger.Txn) error {
			_, err := getEntity[models.NewsItem](txn, entityKey(NewsKeyPrefix, 42))
			return err
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		store := &models.Store{ID: 7, Name: "Main", URL: "http://localhost/"}
		err := repo.DB().Update(func(txn *badger.Txn) error {
			return putEntity(txn, entityKey(StoreKeyPrefix, store.ID), store)
		})
		require.NoError(t, err)

		err = repo.DB().View(func(txn *badger.Txn) error {
			found, err := getEntity[models.Store](txn, entityKey(StoreKeyPrefix, 7))
			if err != nil {
				return err
			}
			assert.Equal(t, store, found)
			return nil
		})
		assert.NoError(t, err)
	})
}

func TestRepositoryClear(t *testing.T) {
	repo, err := NewRepository("test_db")
	require.NoError(t, err)
	defer repo.Close()

	err = repo.Stores.Create(&models.Store{Name: "Main", URL: "http://localhost/"})
	require.NoError(t, err)

	require.NoError(t, repo.Clear())

	stores, err := repo.Stores.List()
	assert.NoError(t, err)
	assert.Empty(t, stores)
}
