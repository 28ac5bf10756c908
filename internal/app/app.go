package app

import (
	"navsikhyo/internal/config"
	"navsikhyo/internal/db"
	"navsikhyo/internal/handlers"
	"navsikhyo/internal/repository"
	"navsikhyo/internal/routes"
	"navsikhyo/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.Get(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	blogRepo := repository.NewBlogRepo(conn)
	categoryRepo := repository.NewCategoryRepo(conn)

	// Сервисы
	slugSvc := services.NewSlugService(blogRepo)
	categorySvc := services.NewCategoryService(categoryRepo)
	blogSvc := services.NewBlogService(blogRepo, slugSvc, categorySvc)
	authSvc := services.NewAuthService(cfg)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authSvc, cfg)
	blogHandler := handlers.NewBlogHandler(blogSvc)
	categoryHandler := handlers.NewCategoryHandler(categorySvc)
	automationHandler := handlers.NewAutomationHandler(blogSvc, cfg)
	seoHandler := handlers.NewSEOHandler(blogSvc, cfg)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg, authHandler, blogHandler, categoryHandler, automationHandler, seoHandler)

	return router, nil
}
