package models

// Validate checks if the language meets all validation requirements
func (l *Language) Validate() error {
	return validate.Struct(l)
}

// Validate checks if the store meets all validation requirements
func (s *Store) Validate() error {
	return validate.Struct(s)
}
