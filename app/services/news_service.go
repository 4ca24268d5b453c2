package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"storenews/app/events"
	"storenews/app/models"
	"storenews/app/repositories"
)

// NewsService handles business logic for news items and their comments
type NewsService struct {
	newsRepo     repositories.NewsRepository
	commentRepo  repositories.NewsCommentRepository
	customerRepo repositories.CustomerRepository
	publisher    events.Publisher
	now          func() time.Time
}

// NewNewsService creates a new NewsService. A nil publisher drops change events.
func NewNewsService(
	newsRepo repositories.NewsRepository,
	commentRepo repositories.NewsCommentRepository,
	customerRepo repositories.CustomerRepository,
	publisher events.Publisher,
) *NewsService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &NewsService{
		newsRepo:     newsRepo,
		commentRepo:  commentRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// GetAllNews returns one page of the news visible now, newest first.
// languageID 0 means any language; storeID 0 means any store.
func (s *NewsService) GetAllNews(ctx context.Context, languageID, storeID, pageIndex, pageSize int) (*models.PagedList[*models.NewsItem], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := s.newsRepo.List()
	if err != nil {
		return nil, err
	}

	now := s.now()
	visible := make([]*models.NewsItem, 0, len(all))
	for _, item := range all {
		if !item.IsVisible(now) {
			continue
		}
		if languageID > 0 && item.LanguageID != languageID {
			continue
		}
		if !item.IsAvailableInStore(storeID) {
			continue
		}
		visible = append(visible, item)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		di, dj := visible[i].DisplayDateUtc(), visible[j].DisplayDateUtc()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return visible[i].ID > visible[j].ID
	})

	return models.NewPagedList(visible, pageIndex, pageSize), nil
}

// GetNewsByID retrieves a news item with its comments and their authors.
// Comments left by guests carry a guest customer.
func (s *NewsService) GetNewsByID(ctx context.Context, id int) (*models.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, err := s.newsRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByNewsItem(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	for _, comment := range comments {
		if comment.CustomerID == 0 {
			comment.Customer = models.NewGuestCustomer()
			continue
		}
		customer, err := s.customerRepo.GetByID(comment.CustomerID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get customer %d: %w", comment.CustomerID, err)
		}
		comment.Customer = customer
	}

	item.Comments = comments
	return item, nil
}

// GetNewsCommentsCount counts the comments of a news item
func (s *NewsService) GetNewsCommentsCount(ctx context.Context, item *models.NewsItem, approvedOnly bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if item == nil {
		return 0, errors.New("news item is nil")
	}

	comments, err := s.commentRepo.ListByNewsItem(item.ID)
	if err != nil {
		return 0, err
	}
	if !approvedOnly {
		return len(comments), nil
	}

	count := 0
	for _, comment := range comments {
		if comment.IsApproved {
			count++
		}
	}
	return count, nil
}

// InsertNews creates a news item with validation
func (s *NewsService) InsertNews(ctx context.Context, item *models.NewsItem) error {
	item.BeforeCreate()
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid news item: %w", err)
	}

	if err := s.newsRepo.Create(item); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.Event{Entity: events.EntityNewsItem, Action: events.ActionInserted, ID: item.ID})
	return nil
}

// UpdateNews updates an existing news item with validation
func (s *NewsService) UpdateNews(ctx context.Context, item *models.NewsItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid news item: %w", err)
	}

	existing, err := s.newsRepo.GetByID(item.ID)
	if err != nil {
		return err
	}

	// Preserve creation time
	item.CreatedOnUtc = existing.CreatedOnUtc

	if err := s.newsRepo.Update(item); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.Event{Entity: events.EntityNewsItem, Action: events.ActionUpdated, ID: item.ID})
	return nil
}

// DeleteNews deletes a news item and all its comments
func (s *NewsService) DeleteNews(ctx context.Context, id int) error {
	comments, err := s.commentRepo.ListByNewsItem(id)
	if err != nil {
		return fmt.Errorf("failed to get comments: %w", err)
	}

	for _, comment := range comments {
		if err := s.commentRepo.Delete(comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment %d: %w", comment.ID, err)
		}
	}

	if err := s.newsRepo.Delete(id); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.Event{Entity: events.EntityNewsItem, Action: events.ActionDeleted, ID: id})
	return nil
}
