package models

import (
	"errors"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *NewsComment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.CreatedOnUtc.IsZero() {
		return errors.New("created_on_utc cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *NewsComment) BeforeCreate() {
	if c.CreatedOnUtc.IsZero() {
		c.CreatedOnUtc = time.Now().UTC()
	}
}

// SetCustomer sets the author and updates the CustomerID
func (c *NewsComment) SetCustomer(customer *Customer) error {
	if customer == nil {
		return errors.New("customer cannot be nil")
	}

	c.Customer = customer
	c.CustomerID = customer.ID
	return nil
}
