package repositories

import (
	"sort"

	"storenews/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerLanguageRepository implements LanguageRepository using BadgerDB
type BadgerLanguageRepository struct {
	db *badger.DB
}

// NewBadgerLanguageRepository creates a new BadgerLanguageRepository
func NewBadgerLanguageRepository(db *badger.DB) *BadgerLanguageRepository {
	return &BadgerLanguageRepository{db: db}
}

// Create creates a new language
func (r *BadgerLanguageRepository) Create(language *models.Language) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, LanguageSeqKey)
		if err != nil {
			return err
		}
		language.ID = id
		return putEntity(txn, entityKey(LanguageKeyPrefix, language.ID), language)
	})
}

// GetByID retrieves a language by ID
func (r *BadgerLanguageRepository) GetByID(id int) (*models.Language, error) {
	var language *models.Language
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		language, err = getEntity[models.Language](txn, entityKey(LanguageKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return language, nil
}

// List returns languages ordered by display order. Unpublished languages are
// included only when showHidden is set.
func (r *BadgerLanguageRepository) List(showHidden bool) ([]*models.Language, error) {
	var all []*models.Language
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		all, err = listEntities[models.Language](txn, []byte(LanguageKeyPrefix))
		return err
	})
	if err != nil {
		return nil, err
	}

	languages := make([]*models.Language, 0, len(all))
	for _, l := range all {
		if showHidden || l.Published {
			languages = append(languages, l)
		}
	}
	sort.SliceStable(languages, func(i, j int) bool {
		if languages[i].DisplayOrder != languages[j].DisplayOrder {
			return languages[i].DisplayOrder < languages[j].DisplayOrder
		}
		return languages[i].ID < languages[j].ID
	})
	return languages, nil
}
