package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NewsItem represents a news entry published in one language.
type NewsItem struct {
	ID              int            `validate:"gte=0"`
	LanguageID      int            `validate:"gte=0"`
	Title           string         `validate:"required,max=400"`
	Short           string         `validate:"required"`
	Full            string         `validate:"required"`
	Published       bool           `validate:"-"`
	StartDateUtc    *time.Time     `validate:"-"`
	EndDateUtc      *time.Time     `validate:"-"`
	AllowComments   bool           `validate:"-"`
	LimitedToStores bool           `validate:"-"`
	StoreIDs        []int          `validate:"dive,gt=0"`
	MetaKeywords    string         `validate:"max=400"`
	MetaDescription string         `validate:"-"`
	MetaTitle       string         `validate:"max=400"`
	CreatedOnUtc    time.Time      `validate:"required"`
	Comments        []*NewsComment `validate:"-"`
}

// NewsComment represents a customer comment on a news item.
type NewsComment struct {
	ID           int       `validate:"gte=0"`
	NewsItemID   int       `validate:"gt=0"`
	CustomerID   int       `validate:"gte=0"`
	StoreID      int       `validate:"gte=0"`
	CommentTitle string    `validate:"max=200"`
	CommentText  string    `validate:"required"`
	IsApproved   bool      `validate:"-"`
	CreatedOnUtc time.Time `validate:"required"`
	Customer     *Customer `json:"-" validate:"-"`
}

// Customer is the subset of a store customer needed to render comments.
type Customer struct {
	ID              int      `validate:"gte=0"`
	Username        string   `validate:"max=100"`
	Email           string   `validate:"omitempty,email"`
	FirstName       string   `validate:"max=100"`
	LastName        string   `validate:"max=100"`
	Roles           []string `validate:"-"`
	AvatarPictureID int      `validate:"gte=0"`
	TimeZoneID      string   `validate:"-"`
	Active          bool     `validate:"-"`
}

// Picture holds the metadata needed to build a picture URL.
type Picture struct {
	ID          int    `validate:"gte=0"`
	MimeType    string `validate:"required"`
	SeoFilename string `validate:"max=300"`
}

// URLRecord maps an entity to its search engine friendly name in a language.
// LanguageID 0 is the standard record used when no localized one exists.
type URLRecord struct {
	ID         int    `validate:"gte=0"`
	EntityName string `validate:"required"`
	EntityID   int    `validate:"gt=0"`
	Slug       string `validate:"required,max=400"`
	LanguageID int    `validate:"gte=0"`
	IsActive   bool   `validate:"-"`
}

// Language is a content language of the storefront.
type Language struct {
	ID              int    `validate:"gte=0"`
	Name            string `validate:"required"`
	LanguageCulture string `validate:"required"`
	UniqueSeoCode   string `validate:"required,len=2"`
	Published       bool   `validate:"-"`
	DisplayOrder    int    `validate:"-"`
}

// Store is one storefront of a multi-store installation.
type Store struct {
	ID    int    `validate:"gte=0"`
	Name  string `validate:"required"`
	URL   string `validate:"required,url"`
	Hosts string `validate:"-"`
}
