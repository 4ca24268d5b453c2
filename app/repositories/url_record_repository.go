package repositories

import (
	"fmt"

	"storenews/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerURLRecordRepository implements URLRecordRepository using BadgerDB.
// Records are keyed by entity, so an entity has at most one slug per language.
type BadgerURLRecordRepository struct {
	db *badger.DB
}

// NewBadgerURLRecordRepository creates a new BadgerURLRecordRepository
func NewBadgerURLRecordRepository(db *badger.DB) *BadgerURLRecordRepository {
	return &BadgerURLRecordRepository{db: db}
}

func urlRecordKey(entityName string, entityID, languageID int) []byte {
	return []byte(fmt.Sprintf("%s%s:%d:%d", URLRecordKeyPrefix, entityName, entityID, languageID))
}

// Create stores a slug, replacing any previous slug for the same entity and language
func (r *BadgerURLRecordRepository) Create(record *models.URLRecord) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, URLRecordSeqKey)
		if err != nil {
			return err
		}
		record.ID = id
		return putEntity(txn, urlRecordKey(record.EntityName, record.EntityID, record.LanguageID), record)
	})
}

// Find returns the slug record for an entity in a language
func (r *BadgerURLRecordRepository) Find(entityName string, entityID, languageID int) (*models.URLRecord, error) {
	var record *models.URLRecord
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		record, err = getEntity[models.URLRecord](txn, urlRecordKey(entityName, entityID, languageID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
