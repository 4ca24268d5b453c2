package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"storenews/app/logger"
	"storenews/app/models"
)

const (
	// LanguageQueryParam selects the working language by its two letter code.
	LanguageQueryParam = "lang"
	// LanguageCookie remembers the working language between requests.
	LanguageCookie = "storenews.language"
	// CustomerIDHeader identifies the signed-in customer.
	CustomerIDHeader = "X-Customer-ID"

	workContextKey contextKey = "work_context"
)

// LanguageSource lists storefront languages.
type LanguageSource interface {
	List(showHidden bool) ([]*models.Language, error)
}

// StoreSource lists storefronts.
type StoreSource interface {
	List() ([]*models.Store, error)
}

// CustomerSource loads customers.
type CustomerSource interface {
	GetByID(id int) (*models.Customer, error)
}

// WorkContextResolver builds the work context of each request.
type WorkContextResolver struct {
	languages LanguageSource
	stores    StoreSource
	customers CustomerSource
}

func NewWorkContextResolver(languages LanguageSource, stores StoreSource, customers CustomerSource) *WorkContextResolver {
	return &WorkContextResolver{
		languages: languages,
		stores:    stores,
		customers: customers,
	}
}

// Middleware stores the resolved work context in the request context.
func (res *WorkContextResolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wc := res.Resolve(r)
		if code := r.URL.Query().Get(LanguageQueryParam); code != "" && wc.WorkingLanguage != nil &&
			strings.EqualFold(code, wc.WorkingLanguage.UniqueSeoCode) {
			http.SetCookie(w, &http.Cookie{Name: LanguageCookie, Value: wc.WorkingLanguage.UniqueSeoCode, Path: "/", HttpOnly: true})
		}
		next.ServeHTTP(w, r.WithContext(WithWorkContext(r.Context(), wc)))
	})
}

// Resolve picks the working language, current store and current customer of r.
// Lookup failures are logged and fall back to defaults.
func (res *WorkContextResolver) Resolve(r *http.Request) *models.WorkContext {
	return &models.WorkContext{
		WorkingLanguage: res.language(r),
		CurrentStore:    res.store(r),
		CurrentCustomer: res.customer(r),
	}
}

func (res *WorkContextResolver) language(r *http.Request) *models.Language {
	languages, err := res.languages.List(false)
	if err != nil {
		logger.Log.Warnf("list languages: %v", err)
		return nil
	}
	if len(languages) == 0 {
		return nil
	}

	code := r.URL.Query().Get(LanguageQueryParam)
	if code == "" {
		if c, err := r.Cookie(LanguageCookie); err == nil {
			code = c.Value
		}
	}
	for _, l := range languages {
		if code != "" && strings.EqualFold(l.UniqueSeoCode, code) {
			return l
		}
	}
	return languages[0]
}

func (res *WorkContextResolver) store(r *http.Request) *models.Store {
	stores, err := res.stores.List()
	if err != nil {
		logger.Log.Warnf("list stores: %v", err)
		return nil
	}
	if len(stores) == 0 {
		return nil
	}

	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	for _, s := range stores {
		for _, h := range strings.Split(s.Hosts, ",") {
			if strings.EqualFold(strings.TrimSpace(h), host) {
				return s
			}
		}
	}
	return stores[0]
}

func (res *WorkContextResolver) customer(r *http.Request) *models.Customer {
	raw := r.Header.Get(CustomerIDHeader)
	if raw == "" {
		return models.NewGuestCustomer()
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return models.NewGuestCustomer()
	}

	customer, err := res.customers.GetByID(id)
	if err != nil || !customer.Active {
		return models.NewGuestCustomer()
	}
	return customer
}

// WithWorkContext returns a copy of ctx carrying wc.
func WithWorkContext(ctx context.Context, wc *models.WorkContext) context.Context {
	return context.WithValue(ctx, workContextKey, wc)
}

// GetWorkContext returns the work context stored in ctx, or a guest context
// without language or store.
func GetWorkContext(ctx context.Context) *models.WorkContext {
	if wc, ok := ctx.Value(workContextKey).(*models.WorkContext); ok && wc != nil {
		return wc
	}
	return &models.WorkContext{CurrentCustomer: models.NewGuestCustomer()}
}
