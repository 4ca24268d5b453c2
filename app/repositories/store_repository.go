package repositories

import (
	"sort"

	"storenews/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStoreRepository implements StoreRepository using BadgerDB
type BadgerStoreRepository struct {
	db *badger.DB
}

// NewBadgerStoreRepository creates a new BadgerStoreRepository
func NewBadgerStoreRepository(db *badger.DB) *BadgerStoreRepository {
	return &BadgerStoreRepository{db: db}
}

// Create creates a new store
func (r *BadgerStoreRepository) Create(store *models.Store) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, StoreSeqKey)
		if err != nil {
			return err
		}
		store.ID = id
		return putEntity(txn, entityKey(StoreKeyPrefix, store.ID), store)
	})
}

// GetByID retrieves a store by ID
func (r *BadgerStoreRepository) GetByID(id int) (*models.Store, error) {
	var store *models.Store
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		store, err = getEntity[models.Store](txn, entityKey(StoreKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// List returns all stores ordered by ID
func (r *BadgerStoreRepository) List() ([]*models.Store, error) {
	var stores []*models.Store
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		stores, err = listEntities[models.Store](txn, []byte(StoreKeyPrefix))
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	return stores, nil
}
