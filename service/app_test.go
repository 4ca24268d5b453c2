package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storenews/app/config"
	"storenews/app/models"
	"storenews/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:     "test",
		HTTP:    config.HTTPConfig{Host: "127.0.0.1", Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, ImagesURL: "/images"},
		Storage: config.StorageConfig{InMemory: true},
		Cache:   config.CacheConfig{NumCounters: 1000, MaxCost: 100, BufferItems: 64},
		Log:     config.LogConfig{Level: "error"},
		Media:   config.MediaSettings{AvatarPictureSize: 120},
		News:    config.NewsSettings{MainPageNewsCount: 3, NewsArchivePageSize: 10},
		Customer: config.CustomerSettings{
			DefaultAvatarEnabled:          true,
			AllowCustomersToUploadAvatars: true,
			CustomerNameFormat:            models.ShowFullNames,
		},
		DateTime: config.DateTimeSettings{DefaultStoreTimeZoneID: "UTC"},
	}
}

func setupTestApplication(t *testing.T) *Application {
	app, err := NewApplication(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	require.NoError(t, Seed(context.Background(), app.Repository, app.News))
	return app
}

func get(app *Application, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestApplicationRoutes(t *testing.T) {
	app := setupTestApplication(t)

	t.Run("homepage block", func(t *testing.T) {
		w := get(app, "/api/news/home")
		require.Equal(t, http.StatusOK, w.Code)

		var model models.HomePageNewsItemsModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
		assert.Equal(t, 1, model.WorkingLanguageID)
		require.Len(t, model.NewsItems, 3)
		assert.Equal(t, "Holiday opening hours", model.NewsItems[0].Title)
		assert.Equal(t, "holiday-opening-hours", model.NewsItems[0].SeName)
	})

	t.Run("german homepage block", func(t *testing.T) {
		w := get(app, "/api/news/home?lang=de")
		require.Equal(t, http.StatusOK, w.Code)

		var model models.HomePageNewsItemsModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
		assert.Equal(t, 2, model.WorkingLanguageID)
		require.Len(t, model.NewsItems, 1)
		assert.Equal(t, "Willkommen in unserem Shop", model.NewsItems[0].Title)
	})

	t.Run("news item with comments", func(t *testing.T) {
		w := get(app, "/api/news/1")
		require.Equal(t, http.StatusOK, w.Code)

		var model models.NewsItemModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
		assert.Equal(t, 1, model.NumberOfComments)
		require.Len(t, model.Comments, 1)
		assert.Equal(t, "Jane Doe", model.Comments[0].CustomerName)
		assert.Equal(t, "/images/thumbs/0000001_jane-doe_120.jpeg", model.Comments[0].CustomerAvatarURL)
	})

	t.Run("html pages", func(t *testing.T) {
		for _, target := range []string{"/", "/news", "/news/2"} {
			w := get(app, target)
			assert.Equal(t, http.StatusOK, w.Code, target)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html", target)
		}
	})

	t.Run("health and metrics", func(t *testing.T) {
		w := get(app, "/healthz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

		w = get(app, "/metrics")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "storenews_http_requests_total")
	})

	t.Run("unknown api route", func(t *testing.T) {
		w := get(app, "/api/unknown")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})

	t.Run("request id", func(t *testing.T) {
		w := get(app, "/healthz")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestApplicationHomePageInvalidation(t *testing.T) {
	app := setupTestApplication(t)

	first := get(app, "/api/news/home")
	require.Equal(t, http.StatusOK, first.Code)
	assert.NotContains(t, first.Body.String(), "Breaking")

	item := &models.NewsItem{
		LanguageID:   1,
		Title:        "Breaking",
		Short:        "short",
		Full:         "full",
		Published:    true,
		CreatedOnUtc: time.Now().UTC(),
	}
	require.NoError(t, app.News.InsertNews(context.Background(), item))

	second := get(app, "/api/news/home")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "Breaking")
	assert.NotEqual(t, first.Header().Get("ETag"), second.Header().Get("ETag"))
}

func TestApplicationComments(t *testing.T) {
	app := setupTestApplication(t)

	req := httptest.NewRequest(http.MethodPost, "/api/news/2/comments", strings.NewReader(`{"commentText":"New comment"}`))
	req.Header.Set("X-Customer-ID", "1")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	comments, err := app.Repository.Comments.ListByNewsItem(2)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	t.Run("guest rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/news/2/comments", strings.NewReader(`{"commentText":"hi"}`))
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("web form", func(t *testing.T) {
		page := get(app, "/news/2")
		require.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), `action="/news/2/comments"`)

		req := httptest.NewRequest(http.MethodPost, "/news/2/comments", strings.NewReader("commentTitle=Thanks&commentText=Posted+from+the+page"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Customer-ID", "1")
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/news/2", w.Header().Get("Location"))

		comments, err := app.Repository.Comments.ListByNewsItem(2)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, "Thanks", comments[2].CommentTitle)
		assert.Equal(t, "Posted from the page", comments[2].CommentText)
		assert.False(t, comments[2].IsApproved)
	})

	t.Run("guest comment is shown as guest", func(t *testing.T) {
		cfg := testConfig()
		cfg.News.AllowNotRegisteredUsersToLeaveComments = true
		guestApp, err := NewApplication(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { guestApp.Close() })
		require.NoError(t, Seed(context.Background(), guestApp.Repository, guestApp.News))

		req := httptest.NewRequest(http.MethodPost, "/api/news/2/comments", strings.NewReader(`{"commentText":"From a visitor"}`))
		w := httptest.NewRecorder()
		guestApp.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			ID int `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.NoError(t, guestApp.News.ApproveComment(context.Background(), created.ID))

		w = get(guestApp, "/api/news/2")
		require.Equal(t, http.StatusOK, w.Code)
		var model models.NewsItemModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
		require.Len(t, model.Comments, 2)
		guest := model.Comments[1]
		assert.Equal(t, "From a visitor", guest.CommentText)
		assert.Equal(t, models.GuestName, guest.CustomerName)
		assert.False(t, guest.AllowViewingProfiles)
	})
}

func TestNewApplicationOnDisk(t *testing.T) {
	cfg := testConfig()
	cfg.Storage = config.StorageConfig{Path: t.TempDir()}

	app, err := NewApplication(cfg)
	require.NoError(t, err)
	assert.NotNil(t, app.Router)
	require.NoError(t, app.Close())

	repo, err := repositories.NewRepository(cfg.Storage.Path)
	require.NoError(t, err)
	assert.NoError(t, repo.Close())
}
