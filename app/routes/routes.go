package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"storenews/app/controllers"
	"storenews/app/metrics"
	"storenews/app/middleware"
)

// Dependencies are the handlers and middleware the router is built from.
type Dependencies struct {
	News        *controllers.NewsController
	WorkContext *middleware.WorkContextResolver
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(deps.WorkContext.Middleware)

	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", healthz).Methods("GET")

	// Web routes
	router.HandleFunc("/", deps.News.Home).Methods("GET")

	news := router.PathPrefix("/news").Subrouter()
	news.HandleFunc("", deps.News.List).Methods("GET")
	news.HandleFunc("/{id:[0-9]+}", deps.News.Show).Methods("GET")
	news.HandleFunc("/{id:[0-9]+}/comments", deps.News.AddComment).Methods("POST")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.NotFoundHandler = http.HandlerFunc(apiNotFound)

	apiNews := api.PathPrefix("/news").Subrouter()
	apiNews.HandleFunc("", deps.News.List).Methods("GET")
	apiNews.HandleFunc("/home", deps.News.Home).Methods("GET")
	apiNews.HandleFunc("/{id:[0-9]+}", deps.News.Show).Methods("GET")
	apiNews.HandleFunc("/{id:[0-9]+}/comments", deps.News.AddComment).Methods("POST")

	return router
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
}
