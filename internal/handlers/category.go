package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"navsikhyo/internal/logger"
	"navsikhyo/internal/models"
	"navsikhyo/internal/repository"
	"navsikhyo/internal/services"
	helpers "navsikhyo/internal/utils/helpres"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	svc *services.CategoryService
}

func NewCategoryHandler(svc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary Список категорий
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} map[string]string
// @Router /api/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения категорий", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения категорий")
		return
	}

	if list == nil {
		list = []*models.Category{}
	}
	helpers.Raw(w, http.StatusOK, list)
}

// Create godoc
// @Summary Создать категорию
// @Tags categories
// @Accept json
// @Produce json
// @Param input body models.CreateCategoryRequest true "Имя категории"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Router /api/categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при создании категории", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	cat, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCategoryName):
			helpers.Error(w, http.StatusBadRequest, "Название обязательно")
		case errors.Is(err, repository.ErrDuplicate):
			helpers.Error(w, http.StatusBadRequest, "Категория уже существует")
		default:
			helpers.Error(w, http.StatusInternalServerError, "Ошибка создания категории")
		}
		return
	}

	helpers.Raw(w, http.StatusCreated, cat)
}

// Delete godoc
// @Summary Удалить категорию
// @Description Посты, ссылающиеся на неё по имени, не трогаются.
// @Tags categories
// @Param id path string true "ID категории"
// @Success 200 {string} string "Категория удалена"
// @Failure 404 {object} map[string]string
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Неверный id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			helpers.Error(w, http.StatusNotFound, "Категория не найдена")
			return
		}
		helpers.Error(w, http.StatusInternalServerError, "Ошибка удаления категории")
		return
	}

	helpers.JSON(w, http.StatusOK, "Категория удалена")
}
