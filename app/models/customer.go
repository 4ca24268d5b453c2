package models

import "strings"

// System role names.
const (
	RoleAdministrators = "Administrators"
	RoleRegistered     = "Registered"
	RoleGuests         = "Guests"
)

// GuestName is shown instead of a name for guest customers.
const GuestName = "Guest"

// CustomerNameFormat selects how a customer is displayed to other visitors.
type CustomerNameFormat string

const (
	ShowEmails    CustomerNameFormat = "emails"
	ShowUsernames CustomerNameFormat = "usernames"
	ShowFullNames CustomerNameFormat = "fullnames"
	ShowFirstName CustomerNameFormat = "firstname"
)

// Validate checks if the customer meets all validation requirements
func (c *Customer) Validate() error {
	return validate.Struct(c)
}

// IsInRole reports whether the customer belongs to the role with the given system name.
func (c *Customer) IsInRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsGuest reports whether the customer is an anonymous visitor.
func (c *Customer) IsGuest() bool {
	return c.IsInRole(RoleGuests)
}

// FullName joins first and last name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// FormatUserName returns the display name of the customer in the given format.
// A nil customer has no name; guests are always shown as GuestName.
func (c *Customer) FormatUserName(format CustomerNameFormat) string {
	if c == nil {
		return ""
	}
	if c.IsGuest() {
		return GuestName
	}

	switch format {
	case ShowEmails:
		return c.Email
	case ShowUsernames:
		return c.Username
	case ShowFullNames:
		return c.FullName()
	case ShowFirstName:
		return c.FirstName
	default:
		return c.Email
	}
}

// NewGuestCustomer returns the customer used for anonymous requests.
func NewGuestCustomer() *Customer {
	return &Customer{Roles: []string{RoleGuests}, Active: true}
}
