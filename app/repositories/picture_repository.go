package repositories

import (
	"storenews/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPictureRepository implements PictureRepository using BadgerDB
type BadgerPictureRepository struct {
	db *badger.DB
}

// NewBadgerPictureRepository creates a new BadgerPictureRepository
func NewBadgerPictureRepository(db *badger.DB) *BadgerPictureRepository {
	return &BadgerPictureRepository{db: db}
}

// Create stores picture metadata
func (r *BadgerPictureRepository) Create(picture *models.Picture) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PictureSeqKey)
		if err != nil {
			return err
		}
		picture.ID = id
		return putEntity(txn, entityKey(PictureKeyPrefix, picture.ID), picture)
	})
}

// GetByID retrieves picture metadata by ID
func (r *BadgerPictureRepository) GetByID(id int) (*models.Picture, error) {
	var picture *models.Picture
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		picture, err = getEntity[models.Picture](txn, entityKey(PictureKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return picture, nil
}
