package service

import (
	"context"
	"fmt"
	"time"

	"storenews/app/models"
	"storenews/app/repositories"
	"storenews/app/services"
)

type seedNews struct {
	item     *models.NewsItem
	slug     string
	comments []seedComment
}

type seedComment struct {
	title    string
	text     string
	approved bool
}

// Seed fills an empty database with a store, two languages, a customer and a few
// news items with comments. It refuses to run on a database that has news.
func Seed(ctx context.Context, repo *repositories.Repository, news *services.NewsService) error {
	existing, err := repo.News.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("database already has %d news items", len(existing))
	}

	english := &models.Language{Name: "English", LanguageCulture: "en-US", UniqueSeoCode: "en", Published: true, DisplayOrder: 1}
	german := &models.Language{Name: "Deutsch", LanguageCulture: "de-DE", UniqueSeoCode: "de", Published: true, DisplayOrder: 2}
	for _, l := range []*models.Language{english, german} {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("invalid language %s: %w", l.Name, err)
		}
		if err := repo.Languages.Create(l); err != nil {
			return err
		}
	}

	store := &models.Store{Name: "Main store", URL: "http://localhost:8080/", Hosts: "localhost,127.0.0.1"}
	if err := store.Validate(); err != nil {
		return fmt.Errorf("invalid store: %w", err)
	}
	if err := repo.Stores.Create(store); err != nil {
		return err
	}

	avatar := &models.Picture{MimeType: "image/jpeg", SeoFilename: "jane-doe"}
	if err := repo.Pictures.Create(avatar); err != nil {
		return err
	}
	customer := &models.Customer{
		Username:        "jane",
		Email:           "jane@example.com",
		FirstName:       "Jane",
		LastName:        "Doe",
		Roles:           []string{models.RoleRegistered},
		AvatarPictureID: avatar.ID,
		Active:          true,
	}
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("invalid customer: %w", err)
	}
	if err := repo.Customers.Create(customer); err != nil {
		return err
	}

	now := time.Now().UTC()
	items := []seedNews{
		{
			item: &models.NewsItem{
				LanguageID:    english.ID,
				Title:         "Welcome to our store",
				Short:         "<p>We are open for business.</p>",
				Full:          "<p>We are open for business. Browse the catalog and tell us what you think.</p>",
				Published:     true,
				AllowComments: true,
				CreatedOnUtc:  now.Add(-72 * time.Hour),
			},
			slug: "welcome-to-our-store",
			comments: []seedComment{
				{title: "Congrats", text: "Looking forward to shopping here.", approved: true},
				{title: "", text: "Waiting for moderation.", approved: false},
			},
		},
		{
			item: &models.NewsItem{
				LanguageID:    english.ID,
				Title:         "Free shipping weekend",
				Short:         "<p>No shipping fees this weekend.</p>",
				Full:          "<p>Every order placed this weekend ships for free.</p>",
				Published:     true,
				AllowComments: true,
				CreatedOnUtc:  now.Add(-48 * time.Hour),
			},
			slug: "free-shipping-weekend",
			comments: []seedComment{
				{title: "Great", text: "Just ordered.\nThanks!", approved: true},
			},
		},
		{
			item: &models.NewsItem{
				LanguageID:   english.ID,
				Title:        "New arrivals",
				Short:        "<p>Fresh products in the catalog.</p>",
				Full:         "<p>Check out the new arrivals in every category.</p>",
				Published:    true,
				CreatedOnUtc: now.Add(-24 * time.Hour),
			},
			slug: "new-arrivals",
		},
		{
			item: &models.NewsItem{
				LanguageID:   english.ID,
				Title:        "Holiday opening hours",
				Short:        "<p>Our support hours over the holidays.</p>",
				Full:         "<p>Support is available from 10:00 to 14:00 during the holidays.</p>",
				Published:    true,
				StartDateUtc: timePtr(now.Add(-time.Hour)),
				EndDateUtc:   timePtr(now.Add(30 * 24 * time.Hour)),
				CreatedOnUtc: now.Add(-96 * time.Hour),
			},
			slug: "holiday-opening-hours",
		},
		{
			item: &models.NewsItem{
				LanguageID:   german.ID,
				Title:        "Willkommen in unserem Shop",
				Short:        "<p>Wir haben geöffnet.</p>",
				Full:         "<p>Wir haben geöffnet. Viel Spaß beim Stöbern.</p>",
				Published:    true,
				CreatedOnUtc: now.Add(-72 * time.Hour),
			},
			slug: "willkommen",
		},
	}

	for _, n := range items {
		if err := news.InsertNews(ctx, n.item); err != nil {
			return err
		}
		record := &models.URLRecord{
			EntityName: models.NewsItemEntityName,
			EntityID:   n.item.ID,
			Slug:       n.slug,
			IsActive:   true,
		}
		if err := repo.URLRecords.Create(record); err != nil {
			return err
		}

		for _, c := range n.comments {
			comment := &models.NewsComment{
				NewsItemID:   n.item.ID,
				CustomerID:   customer.ID,
				StoreID:      store.ID,
				CommentTitle: c.title,
				CommentText:  c.text,
			}
			if err := news.InsertComment(ctx, comment); err != nil {
				return err
			}
			if c.approved {
				if err := news.ApproveComment(ctx, comment.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
