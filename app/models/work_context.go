package models

// WorkContext carries the per-request ambient values: who is looking, in which
// language and on which storefront.
type WorkContext struct {
	WorkingLanguage *Language
	CurrentStore    *Store
	CurrentCustomer *Customer
}

// LanguageID returns the working language id, 0 when none is resolved.
func (wc *WorkContext) LanguageID() int {
	if wc == nil || wc.WorkingLanguage == nil {
		return 0
	}
	return wc.WorkingLanguage.ID
}

// StoreID returns the current store id, 0 when none is resolved.
func (wc *WorkContext) StoreID() int {
	if wc == nil || wc.CurrentStore == nil {
		return 0
	}
	return wc.CurrentStore.ID
}

// Customer returns the current customer, falling back to a guest.
func (wc *WorkContext) Customer() *Customer {
	if wc == nil || wc.CurrentCustomer == nil {
		return NewGuestCustomer()
	}
	return wc.CurrentCustomer
}
