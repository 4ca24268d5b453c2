package models

import (
	"errors"
	"time"
)

// NewsItemEntityName is the entity name used for URL records of news items.
const NewsItemEntityName = "NewsItem"

// Validate checks if the news item meets all validation requirements
func (n *NewsItem) Validate() error {
	if err := validate.Struct(n); err != nil {
		return err
	}

	if n.StartDateUtc != nil && n.EndDateUtc != nil && n.EndDateUtc.Before(*n.StartDateUtc) {
		return errors.New("end date cannot be before start date")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (n *NewsItem) BeforeCreate() {
	if n.CreatedOnUtc.IsZero() {
		n.CreatedOnUtc = time.Now().UTC()
	}
}

// DisplayDateUtc is the date a news item is presented with: its start date when scheduled,
// its creation date otherwise.
func (n *NewsItem) DisplayDateUtc() time.Time {
	if n.StartDateUtc != nil {
		return *n.StartDateUtc
	}
	return n.CreatedOnUtc
}

// IsVisible reports whether the item is published and inside its availability window at now.
func (n *NewsItem) IsVisible(now time.Time) bool {
	if !n.Published {
		return false
	}
	if n.StartDateUtc != nil && n.StartDateUtc.After(now) {
		return false
	}
	if n.EndDateUtc != nil && n.EndDateUtc.Before(now) {
		return false
	}
	return true
}

// IsAvailableInStore reports whether the item is mapped to the store.
// Items not limited to stores are available everywhere.
func (n *NewsItem) IsAvailableInStore(storeID int) bool {
	if !n.LimitedToStores || storeID == 0 {
		return true
	}
	for _, id := range n.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}

// AddComment adds a comment to the news item
func (n *NewsItem) AddComment(comment *NewsComment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.NewsItemID = n.ID
	n.Comments = append(n.Comments, comment)
	return nil
}

// RemoveComment removes a comment from the news item
func (n *NewsItem) RemoveComment(commentID int) error {
	for i, comment := range n.Comments {
		if comment.ID == commentID {
			n.Comments = append(n.Comments[:i], n.Comments[i+1:]...)
			return nil
		}
	}
	return errors.New("comment not found")
}
