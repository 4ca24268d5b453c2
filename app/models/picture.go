package models

// PictureType selects the default image used when a picture is missing.
type PictureType int

const (
	PictureTypeEntity PictureType = iota
	PictureTypeAvatar
)

// Validate checks if the picture meets all validation requirements
func (p *Picture) Validate() error {
	return validate.Struct(p)
}
