package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"storenews/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIRoutes(t *testing.T) {
	repo := setupTestRepository(t)
	router, news := setupTestRouter(t, repo)
	item := setupTestData(t, repo, news)

	t.Run("GET /api/news returns the first page", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/news", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var res models.NewsItemListModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Equal(t, 1, res.PagingFilteringContext.PageNumber)
		require.Equal(t, 10, res.PagingFilteringContext.PageSize)
		require.Len(t, res.NewsItems, 1)
		require.Equal(t, item.ID, res.NewsItems[0].ID)
		require.Equal(t, "Test News", res.NewsItems[0].Title)
	})

	t.Run("GET /api/news/home returns the homepage block", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/news/home", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res models.HomePageNewsItemsModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.NewsItems, 1)
		require.NotNil(t, res.NewsItems[0].Comments)
	})

	t.Run("GET /api/news/{id} returns the item", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/news/"+strconv.Itoa(item.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res models.NewsItemModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Equal(t, "This is the full text of the test news", res.Full)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/news/"+strconv.Itoa(item.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("unknown API route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/posts", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})
}

func TestWebRoutes(t *testing.T) {
	repo := setupTestRepository(t)
	router, news := setupTestRouter(t, repo)
	item := setupTestData(t, repo, news)

	tests := []struct {
		name         string
		path         string
		expectedCode int
		contains     string
	}{
		{"home page", "/", http.StatusOK, "Test News"},
		{"news archive", "/news", http.StatusOK, "This is a short text"},
		{"news item", "/news/" + strconv.Itoa(item.ID), http.StatusOK, "This is the full text of the test news"},
		{"missing news item", "/news/999", http.StatusNotFound, "News item not found"},
		{"health check", "/healthz", http.StatusOK, `"status":"ok"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}

	t.Run("form comment from a guest is rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/news/"+strconv.Itoa(item.ID)+"/comments", strings.NewReader("commentText=hello"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMiddlewareApplied(t *testing.T) {
	repo := setupTestRepository(t)
	router, _ := setupTestRouter(t, repo)

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	t.Run("metrics endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/metrics", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "storenews_http_requests_total")
	})
}
