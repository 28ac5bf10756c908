package routes

import (
	"net/http"

	"navsikhyo/internal/config"
	"navsikhyo/internal/handlers"
	"navsikhyo/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	blogHandler *handlers.BlogHandler,
	categoryHandler *handlers.CategoryHandler,
	automationHandler *handlers.AutomationHandler,
	seoHandler *handlers.SEOHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)

	// --- Публичные маршруты ---
	router.HandleFunc("/robots.txt", seoHandler.Robots).Methods("GET")
	router.HandleFunc("/sitemap.xml", seoHandler.Sitemap).Methods("GET")
	router.HandleFunc("/blog/{slug}", blogHandler.GetBySlug).Methods("GET")
	router.HandleFunc(middleware.LoginPath, authHandler.LoginPage).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	api.HandleFunc("/blogs", blogHandler.ListPublic).Methods("GET")

	api.HandleFunc("/categories", categoryHandler.List).Methods("GET")
	api.HandleFunc("/categories", categoryHandler.Create).Methods("POST")
	api.HandleFunc("/categories/{id}", categoryHandler.Delete).Methods("DELETE")

	// отдельная аутентификация общим секретом, мимо Session Guard
	api.HandleFunc("/automation/blogs", automationHandler.Create).Methods("POST")

	// --- Защищённые cookie-сессией ---
	guard := middleware.SessionGuard(cfg)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(guard)
	admin.HandleFunc("/blogs", blogHandler.AdminList).Methods("GET")
	admin.HandleFunc("/blogs", blogHandler.Create).Methods("POST")
	admin.HandleFunc("/blogs/{id}", blogHandler.GetByID).Methods("GET")
	admin.HandleFunc("/blogs/{id}", blogHandler.Update).Methods("PATCH")
	admin.HandleFunc("/blogs/{id}", blogHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/blogs/{id}/publish", blogHandler.SetPublish).Methods(http.MethodPatch, http.MethodOptions)

	dashboard := router.PathPrefix(middleware.DashboardPath).Subrouter()
	dashboard.Use(guard)
	dashboard.HandleFunc("", blogHandler.Dashboard).Methods("GET")
	dashboard.PathPrefix("/").HandlerFunc(blogHandler.Dashboard).Methods("GET")
}
