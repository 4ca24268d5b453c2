package controllers

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/sha3"

	"storenews/app/config"
	"storenews/app/factories"
	"storenews/app/logger"
	"storenews/app/middleware"
	"storenews/app/models"
	"storenews/app/repositories"
	"storenews/app/services"
	"storenews/app/views"
)

// ErrCommentsForbidden is returned when a guest tries to comment and guest comments are disabled
var ErrCommentsForbidden = errors.New("only registered customers can leave comments")

// NewsController handles HTTP requests for the news pages
type NewsController struct {
	newsService *services.NewsService
	factory     *factories.NewsModelFactory
	views       *views.Renderer
	settings    config.NewsSettings
	now         func() time.Time
}

// NewNewsController creates a new NewsController
func NewNewsController(newsService *services.NewsService, factory *factories.NewsModelFactory, renderer *views.Renderer, settings config.NewsSettings) *NewsController {
	return &NewsController{
		newsService: newsService,
		factory:     factory,
		views:       renderer,
		settings:    settings,
		now:         time.Now,
	}
}

// Home handles the homepage news block
func (nc *NewsController) Home(w http.ResponseWriter, r *http.Request) {
	wc := middleware.GetWorkContext(r.Context())

	model, err := nc.factory.PrepareHomePageNewsItemsModel(r.Context(), wc)
	if err != nil {
		nc.sendError(w, r, "Failed to load news: "+err.Error(), statusFor(err))
		return
	}

	nc.respond(w, r, "home", model)
}

// List handles the news archive
func (nc *NewsController) List(w http.ResponseWriter, r *http.Request) {
	command := &models.NewsPagingFilteringModel{}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			command.PageNumber = p
		}
	}
	if sizeStr := r.URL.Query().Get("pagesize"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil {
			command.PageSize = s
		}
	}
	if command.PageSize <= 0 {
		command.PageSize = nc.settings.NewsArchivePageSize
	}

	if err := command.Validate(); err != nil {
		nc.sendError(w, r, "Invalid paging: "+err.Error(), http.StatusBadRequest)
		return
	}

	wc := middleware.GetWorkContext(r.Context())
	model, err := nc.factory.PrepareNewsItemListModel(r.Context(), wc, command)
	if err != nil {
		nc.sendError(w, r, "Failed to load news: "+err.Error(), statusFor(err))
		return
	}

	nc.respond(w, r, "list", model)
}

// Show handles displaying a single news item with its approved comments
func (nc *NewsController) Show(w http.ResponseWriter, r *http.Request) {
	item, ok := nc.loadItem(w, r)
	if !ok {
		return
	}

	wc := middleware.GetWorkContext(r.Context())
	model, err := nc.factory.PrepareNewsItemModel(r.Context(), wc, models.NewNewsItemModel(), item, true)
	if err != nil {
		nc.sendError(w, r, "Failed to prepare news item: "+err.Error(), statusFor(err))
		return
	}

	nc.respond(w, r, "show", model)
}

// AddComment handles posting a comment on a news item. New comments await approval.
func (nc *NewsController) AddComment(w http.ResponseWriter, r *http.Request) {
	item, ok := nc.loadItem(w, r)
	if !ok {
		return
	}

	var form models.AddNewsCommentModel
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			nc.sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			nc.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		form.CommentTitle = r.FormValue("commentTitle")
		form.CommentText = r.FormValue("commentText")
	}

	wc := middleware.GetWorkContext(r.Context())
	customer := wc.Customer()
	if customer.IsGuest() && !nc.settings.AllowNotRegisteredUsersToLeaveComments {
		nc.sendError(w, r, ErrCommentsForbidden.Error(), http.StatusForbidden)
		return
	}

	comment := &models.NewsComment{
		NewsItemID:   item.ID,
		CustomerID:   customer.ID,
		StoreID:      wc.StoreID(),
		CommentTitle: strings.TrimSpace(form.CommentTitle),
		CommentText:  strings.TrimSpace(form.CommentText),
	}
	if err := nc.newsService.InsertComment(r.Context(), comment); err != nil {
		nc.sendError(w, r, "Failed to add comment: "+err.Error(), statusFor(err))
		return
	}

	if isAPIRequest(r) {
		nc.sendJSON(w, r, http.StatusCreated, map[string]interface{}{
			"id":         comment.ID,
			"newsItemId": comment.NewsItemID,
			"approved":   comment.IsApproved,
		})
	} else {
		http.Redirect(w, r, "/news/"+strconv.Itoa(item.ID), http.StatusSeeOther)
	}
}

// loadItem fetches the news item named in the route. Items that are unpublished,
// outside their display window or not mapped to the current store are not found.
func (nc *NewsController) loadItem(w http.ResponseWriter, r *http.Request) (*models.NewsItem, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		nc.sendError(w, r, "Invalid news ID", http.StatusBadRequest)
		return nil, false
	}

	item, err := nc.newsService.GetNewsByID(r.Context(), id)
	if err != nil {
		nc.sendError(w, r, "News item not found", statusFor(err))
		return nil, false
	}

	wc := middleware.GetWorkContext(r.Context())
	if !item.IsVisible(nc.now()) || !item.IsAvailableInStore(wc.StoreID()) {
		nc.sendError(w, r, "News item not found", http.StatusNotFound)
		return nil, false
	}
	return item, true
}

// Helper methods for consistent response handling

func (nc *NewsController) respond(w http.ResponseWriter, r *http.Request, page string, data interface{}) {
	if isAPIRequest(r) {
		nc.sendJSON(w, r, http.StatusOK, data)
		return
	}

	var buf bytes.Buffer
	if err := nc.views.Render(&buf, page, data); err != nil {
		nc.sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// sendJSON writes data with a content hash ETag and answers 304 when the
// client already holds that version.
func (nc *NewsController) sendJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		nc.sendError(w, r, "Failed to encode response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusOK {
		etag := ETag(body)
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.WriteHeader(status)
	w.Write(body)
}

func (nc *NewsController) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if status >= http.StatusInternalServerError {
		logger.WithFields(logger.Fields{
			"path":       r.URL.Path,
			"request_id": middleware.GetRequestID(r.Context()),
		}).Error(message)
	}

	if isAPIRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	sum := sha3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func isAPIRequest(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, factories.ErrInvalidArgument), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrCommentsNotAllowed):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
