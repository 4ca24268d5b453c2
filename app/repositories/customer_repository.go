package repositories

import (
	"storenews/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCustomerRepository implements CustomerRepository using BadgerDB
type BadgerCustomerRepository struct {
	db *badger.DB
}

// NewBadgerCustomerRepository creates a new BadgerCustomerRepository
func NewBadgerCustomerRepository(db *badger.DB) *BadgerCustomerRepository {
	return &BadgerCustomerRepository{db: db}
}

// Create creates a new customer
func (r *BadgerCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CustomerSeqKey)
		if err != nil {
			return err
		}
		customer.ID = id
		return putEntity(txn, entityKey(CustomerKeyPrefix, customer.ID), customer)
	})
}

// GetByID retrieves a customer by ID
func (r *BadgerCustomerRepository) GetByID(id int) (*models.Customer, error) {
	var customer *models.Customer
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		customer, err = getEntity[models.Customer](txn, entityKey(CustomerKeyPrefix, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Update updates an existing customer
func (r *BadgerCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(CustomerKeyPrefix, customer.ID)
		if err := mustExist(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, customer)
	})
}
