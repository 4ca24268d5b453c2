package repositories

import (
	"storenews/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerNewsRepository implements NewsRepository using BadgerDB
type BadgerNewsRepository struct {
	db *badger.DB
}

// NewBadgerNewsRepository creates a new BadgerNewsRepository
func NewBadgerNewsRepository(db *badger.DB) *BadgerNewsRepository {
	return &BadgerNewsRepository{db: db}
}

// Create creates a new news item. Comments are stored separately.
func (r *BadgerNewsRepository) Create(item *models.NewsItem) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, NewsSeqKey)
		if err != nil {
			return err
		}
		item.ID = id

		return putEntity(txn, entityKey(NewsKeyPrefix, item.ID), withoutComments(item))
	})
}

// GetByID retrieves a news item by ID, without comments
func (r *BadgerNewsRepository) GetByID(id int) (*models.NewsItem, error) {
	var item *models.NewsItem
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		item, err = getEntity[models.NewsItem](txn, entityKey(NewsKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List retrieves all news items, without comments
func (r *BadgerNewsRepository) List() ([]*models.NewsItem, error) {
	var items []*models.NewsItem
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		items, err = listEntities[models.NewsItem](txn, []byte(NewsKeyPrefix))
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update updates an existing news item
func (r *BadgerNewsRepository) Update(item *models.NewsItem) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(NewsKeyPrefix, item.ID)
		if err := mustExist(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, withoutComments(item))
	})
}

// Delete deletes a news item by ID
func (r *BadgerNewsRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(NewsKeyPrefix, id)
		if err := mustExist(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func withoutComments(item *models.NewsItem) models.NewsItem {
	stored := *item
	stored.Comments = nil
	return stored
}
