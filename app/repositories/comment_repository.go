package repositories

import (
	"fmt"

	"storenews/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerNewsCommentRepository implements NewsCommentRepository using BadgerDB
type BadgerNewsCommentRepository struct {
	db *badger.DB
}

// NewBadgerNewsCommentRepository creates a new BadgerNewsCommentRepository
func NewBadgerNewsCommentRepository(db *badger.DB) *BadgerNewsCommentRepository {
	return &BadgerNewsCommentRepository{db: db}
}

func commentKey(newsItemID, id int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", CommentKeyPrefix, newsItemID, id))
}

// Create creates a new comment
func (r *BadgerNewsCommentRepository) Create(comment *models.NewsComment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		// Save comment with news item ID in key for efficient listing
		return putEntity(txn, commentKey(comment.NewsItemID, comment.ID), comment)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerNewsCommentRepository) GetByID(id int) (*models.NewsComment, error) {
	var comment *models.NewsComment
	err := r.db.View(func(txn *badger.Txn) error {
		key, err := r.findKey(txn, id)
		if err != nil {
			return err
		}
		comment, err = getEntity[models.NewsComment](txn, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByNewsItem retrieves all comments for a news item
func (r *BadgerNewsCommentRepository) ListByNewsItem(newsItemID int) ([]*models.NewsComment, error) {
	var comments []*models.NewsComment
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		prefix := []byte(fmt.Sprintf("%s%d:", CommentKeyPrefix, newsItemID))
		comments, err = listEntities[models.NewsComment](txn, prefix)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Update updates an existing comment
func (r *BadgerNewsCommentRepository) Update(comment *models.NewsComment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, err := r.findKey(txn, comment.ID)
		if err != nil {
			return err
		}
		return putEntity(txn, key, comment)
	})
}

// Delete deletes a comment by ID
func (r *BadgerNewsCommentRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, err := r.findKey(txn, id)
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// findKey scans the comment keys for the one ending in the comment ID.
func (r *BadgerNewsCommentRepository) findKey(txn *badger.Txn, id int) ([]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(CommentKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var newsItemID, commentID int
		if _, err := fmt.Sscanf(string(it.Item().Key()), CommentKeyPrefix+"%d:%d", &newsItemID, &commentID); err != nil {
			continue
		}
		if commentID == id {
			return it.Item().KeyCopy(nil), nil
		}
	}
	return nil, ErrNotFound
}
