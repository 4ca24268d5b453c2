// Package factories turns news entities into the view models rendered by the
// storefront.
package factories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"storenews/app/cache"
	"storenews/app/config"
	"storenews/app/logger"
	"storenews/app/models"
)

// ErrInvalidArgument is returned when a required input is missing.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// HomePageNewsModelKey is the cache key of the homepage news block.
	// {0}: language id, {1}: store id.
	HomePageNewsModelKey = "storenews.pres.homepage.news-%d-%d"
	// HomePagePrefixCacheKey matches every homepage news block.
	HomePagePrefixCacheKey = "storenews.pres.homepage.news"
)

// HomePageNewsModelCacheKey returns the cache key of the homepage news block
// for a language and store.
func HomePageNewsModelCacheKey(languageID, storeID int) string {
	return fmt.Sprintf(HomePageNewsModelKey, languageID, storeID)
}

// NewsLookup finds news items and counts their comments.
type NewsLookup interface {
	GetAllNews(ctx context.Context, languageID, storeID, pageIndex, pageSize int) (*models.PagedList[*models.NewsItem], error)
	GetNewsCommentsCount(ctx context.Context, item *models.NewsItem, approvedOnly bool) (int, error)
}

// DateTimeConverter converts UTC times to the viewer's time zone.
type DateTimeConverter interface {
	ConvertToUserTime(wc *models.WorkContext, utc time.Time) time.Time
}

// PictureResolver builds picture URLs.
type PictureResolver interface {
	GetPictureURL(ctx context.Context, pictureID, targetSize int, showDefault bool, defaultType models.PictureType) (string, error)
}

// SeNameResolver looks up search engine friendly names.
type SeNameResolver interface {
	GetSeName(ctx context.Context, entityName string, entityID, languageID int, returnDefault, ensureTwoPublishedLanguages bool) (string, error)
}

// Settings are the read-only settings the news views depend on.
type Settings struct {
	Media    config.MediaSettings
	News     config.NewsSettings
	Customer config.CustomerSettings
	Captcha  config.CaptchaSettings
}

// SettingsFromConfig picks the news view settings out of the application config.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Media:    cfg.Media,
		News:     cfg.News,
		Customer: cfg.Customer,
		Captcha:  cfg.Captcha,
	}
}

// NewsModelFactory prepares news view models. It holds no mutable state and is
// safe for concurrent use.
type NewsModelFactory struct {
	news     NewsLookup
	dateTime DateTimeConverter
	pictures PictureResolver
	seNames  SeNameResolver
	cache    cache.Manager
	settings Settings
}

// NewNewsModelFactory creates a new NewsModelFactory
func NewNewsModelFactory(
	news NewsLookup,
	dateTime DateTimeConverter,
	pictures PictureResolver,
	seNames SeNameResolver,
	cacheManager cache.Manager,
	settings Settings,
) *NewsModelFactory {
	return &NewsModelFactory{
		news:     news,
		dateTime: dateTime,
		pictures: pictures,
		seNames:  seNames,
		cache:    cacheManager,
		settings: settings,
	}
}

// PrepareNewsCommentModel projects an approved comment for display.
func (f *NewsModelFactory) PrepareNewsCommentModel(ctx context.Context, wc *models.WorkContext, comment *models.NewsComment) (*models.NewsCommentModel, error) {
	if comment == nil {
		return nil, fmt.Errorf("%w: comment is nil", ErrInvalidArgument)
	}

	customer := comment.Customer
	model := &models.NewsCommentModel{
		ID:                   comment.ID,
		CustomerID:           comment.CustomerID,
		CustomerName:         customer.FormatUserName(f.settings.Customer.CustomerNameFormat),
		CommentTitle:         comment.CommentTitle,
		CommentText:          comment.CommentText,
		CreatedOn:            f.dateTime.ConvertToUserTime(wc, comment.CreatedOnUtc),
		AllowViewingProfiles: f.settings.Customer.AllowViewingProfiles && customer != nil && !customer.IsGuest(),
	}

	if f.settings.Customer.AllowCustomersToUploadAvatars {
		avatarPictureID := 0
		if customer != nil {
			avatarPictureID = customer.AvatarPictureID
		}
		url, err := f.pictures.GetPictureURL(ctx,
			avatarPictureID,
			f.settings.Media.AvatarPictureSize,
			f.settings.Customer.DefaultAvatarEnabled,
			models.PictureTypeAvatar)
		if err != nil {
			return nil, err
		}
		model.CustomerAvatarURL = url
	}

	return model, nil
}

// PrepareNewsItemModel fills model from item and returns it. With prepareComments
// the approved comments are appended oldest first; otherwise model.Comments is
// left untouched.
func (f *NewsModelFactory) PrepareNewsItemModel(ctx context.Context, wc *models.WorkContext, model *models.NewsItemModel, item *models.NewsItem, prepareComments bool) (*models.NewsItemModel, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is nil", ErrInvalidArgument)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: news item is nil", ErrInvalidArgument)
	}

	seName, err := f.seNames.GetSeName(ctx, models.NewsItemEntityName, item.ID, item.LanguageID, true, false)
	if err != nil {
		return nil, err
	}
	count, err := f.news.GetNewsCommentsCount(ctx, item, true)
	if err != nil {
		return nil, err
	}

	model.ID = item.ID
	model.MetaTitle = item.MetaTitle
	model.MetaDescription = item.MetaDescription
	model.MetaKeywords = item.MetaKeywords
	model.SeName = seName
	model.Title = item.Title
	model.Short = item.Short
	model.Full = item.Full
	model.AllowComments = item.AllowComments
	model.CreatedOn = f.dateTime.ConvertToUserTime(wc, item.DisplayDateUtc())
	model.NumberOfComments = count
	model.AddNewComment.DisplayCaptcha = f.settings.Captcha.Enabled && f.settings.Captcha.ShowOnNewsCommentPage

	if prepareComments {
		approved := make([]*models.NewsComment, 0, len(item.Comments))
		for _, comment := range item.Comments {
			if comment != nil && comment.IsApproved {
				approved = append(approved, comment)
			}
		}
		sort.SliceStable(approved, func(i, j int) bool {
			return approved[i].CreatedOnUtc.Before(approved[j].CreatedOnUtc)
		})

		for _, comment := range approved {
			commentModel, err := f.PrepareNewsCommentModel(ctx, wc, comment)
			if err != nil {
				return nil, err
			}
			model.Comments = append(model.Comments, commentModel)
		}
	}

	return model, nil
}

// PrepareHomePageNewsItemsModel returns the homepage news block of the working
// language and current store. The block is computed once per language and store
// and cached; every call gets its own copy with empty comment lists.
func (f *NewsModelFactory) PrepareHomePageNewsItemsModel(ctx context.Context, wc *models.WorkContext) (*models.HomePageNewsItemsModel, error) {
	languageID, storeID := wc.LanguageID(), wc.StoreID()
	key := HomePageNewsModelCacheKey(languageID, storeID)

	cached, err := cache.GetOrCompute(ctx, f.cache, key, func(ctx context.Context) (*models.HomePageNewsItemsModel, error) {
		page, err := f.news.GetAllNews(ctx, languageID, storeID, 0, f.settings.News.MainPageNewsCount)
		if err != nil {
			return nil, err
		}
		items, err := f.prepareNewsItemModels(ctx, wc, page.Items)
		if err != nil {
			return nil, err
		}

		logger.WithFields(logger.Fields{
			"key":   key,
			"items": len(items),
		}).Debug("homepage news model prepared")

		return &models.HomePageNewsItemsModel{
			WorkingLanguageID: languageID,
			NewsItems:         items,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	// Comments depend on the viewer and are not shown on the homepage.
	model := cached.Clone()
	for _, item := range model.NewsItems {
		item.Comments = make([]*models.NewsCommentModel, 0)
	}
	return model, nil
}

// PrepareNewsItemListModel returns one page of the news archive. A nil command
// requests the first page at the default size. command is not modified.
func (f *NewsModelFactory) PrepareNewsItemListModel(ctx context.Context, wc *models.WorkContext, command *models.NewsPagingFilteringModel) (*models.NewsItemListModel, error) {
	var paging models.NewsPagingFilteringModel
	if command != nil {
		paging = *command
	}
	if paging.PageSize <= 0 {
		paging.PageSize = f.settings.News.NewsArchivePageSize
	}
	if paging.PageNumber <= 0 {
		paging.PageNumber = 1
	}

	languageID, storeID := wc.LanguageID(), wc.StoreID()
	page, err := f.news.GetAllNews(ctx, languageID, storeID, paging.PageNumber-1, paging.PageSize)
	if err != nil {
		return nil, err
	}

	model := &models.NewsItemListModel{
		WorkingLanguageID:      languageID,
		PagingFilteringContext: paging,
	}
	models.LoadPagedList(&model.PagingFilteringContext.PageableModel, page)

	model.NewsItems, err = f.prepareNewsItemModels(ctx, wc, page.Items)
	if err != nil {
		return nil, err
	}
	return model, nil
}

func (f *NewsModelFactory) prepareNewsItemModels(ctx context.Context, wc *models.WorkContext, items []*models.NewsItem) ([]*models.NewsItemModel, error) {
	result := make([]*models.NewsItemModel, 0, len(items))
	for _, item := range items {
		model, err := f.PrepareNewsItemModel(ctx, wc, models.NewNewsItemModel(), item, false)
		if err != nil {
			return nil, err
		}
		result = append(result, model)
	}
	return result, nil
}
