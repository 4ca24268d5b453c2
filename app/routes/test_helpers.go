package routes

import (
	"context"
	"testing"
	"time"

	"storenews/app/cache"
	"storenews/app/config"
	"storenews/app/controllers"
	"storenews/app/factories"
	"storenews/app/middleware"
	"storenews/app/models"
	"storenews/app/repositories"
	"storenews/app/services"
	"storenews/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *repositories.Repository {
	repo, err := repositories.NewInMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupTestRouter(t *testing.T, repo *repositories.Repository) (*mux.Router, *services.NewsService) {
	cacheManager, err := cache.NewRistrettoManager(cache.Options{NumCounters: 1000, MaxCost: 100, BufferItems: 64})
	require.NoError(t, err)
	t.Cleanup(cacheManager.Close)

	newsSettings := config.NewsSettings{MainPageNewsCount: 3, NewsArchivePageSize: 10}
	newsService := services.NewNewsService(repo.News, repo.Comments, repo.Customers, nil)
	factory := factories.NewNewsModelFactory(
		newsService,
		services.NewDateTimeHelper(config.DateTimeSettings{DefaultStoreTimeZoneID: "UTC"}),
		services.NewPictureService(repo.Pictures, "/images"),
		services.NewURLRecordService(repo.URLRecords, repo.Languages),
		cacheManager,
		factories.Settings{News: newsSettings, Customer: config.CustomerSettings{CustomerNameFormat: models.ShowEmails}},
	)

	router := SetupRoutes(Dependencies{
		News:        controllers.NewNewsController(newsService, factory, views.MustNew(), newsSettings),
		WorkContext: middleware.NewWorkContextResolver(repo.Languages, repo.Stores, repo.Customers),
	})
	return router, newsService
}

func setupTestData(t *testing.T, repo *repositories.Repository, news *services.NewsService) *models.NewsItem {
	require.NoError(t, repo.Languages.Create(&models.Language{Name: "English", LanguageCulture: "en-US", UniqueSeoCode: "en", Published: true}))
	require.NoError(t, repo.Stores.Create(&models.Store{Name: "Main", URL: "http://localhost/", Hosts: "localhost"}))

	item := &models.NewsItem{
		LanguageID:    1,
		Title:         "Test News",
		Short:         "This is a short text",
		Full:          "This is the full text of the test news",
		Published:     true,
		AllowComments: true,
		CreatedOnUtc:  time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, news.InsertNews(context.Background(), item))
	return item
}
