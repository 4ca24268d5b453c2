package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	NewsKeyPrefix      = "news:"
	CommentKeyPrefix   = "comment:"
	CustomerKeyPrefix  = "customer:"
	PictureKeyPrefix   = "picture:"
	URLRecordKeyPrefix = "urlrecord:"
	LanguageKeyPrefix  = "language:"
	StoreKeyPrefix     = "store:"

	// Sequence keys for auto-incrementing IDs
	NewsSeqKey      = "seq:news"
	CommentSeqKey   = "seq:comment"
	CustomerSeqKey  = "seq:customer"
	PictureSeqKey   = "seq:picture"
	URLRecordSeqKey = "seq:urlrecord"
	LanguageSeqKey  = "seq:language"
	StoreSeqKey     = "seq:store"
)

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	// Store new ID
	idBytes := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

func entityKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%d", prefix, id))
}

// getEntity loads the value stored under key, mapping a missing key to ErrNotFound.
func getEntity[T any](txn *badger.Txn, key []byte) (*T, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var entity T
	err = item.Value(func(val []byte) error {
		return unmarshalEntity(val, &entity)
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// listEntities decodes every value under prefix in key order.
func listEntities[T any](txn *badger.Txn, prefix []byte) ([]*T, error) {
	var entities []*T

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var entity T
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &entity)
		})
		if err != nil {
			return nil, err
		}
		entities = append(entities, &entity)
	}
	return entities, nil
}

// putEntity marshals entity and stores it under key.
func putEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// mustExist returns ErrNotFound when key is absent.
func mustExist(txn *badger.Txn, key []byte) error {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	return err
}
