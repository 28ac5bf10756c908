package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"navsikhyo/internal/logger"
	"navsikhyo/internal/models"
	"navsikhyo/internal/repository"
	"navsikhyo/internal/services"
	helpers "navsikhyo/internal/utils/helpres"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type BlogHandler struct {
	svc *services.BlogService
}

func NewBlogHandler(svc *services.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

// ListPublic godoc
// @Summary Публичный список постов
// @Description Только опубликованные; поиск по заголовку/контенту, фильтр по категории, пагинация.
// @Tags blogs
// @Produce json
// @Param page query int false "Страница (с 1)"
// @Param limit query int false "Размер страницы (по умолчанию 9)"
// @Param search query string false "Поисковая строка"
// @Param category query string false "Категория ('all' — без фильтра)"
// @Success 200 {object} models.BlogListResponse
// @Failure 500 {object} map[string]string
// @Router /api/blogs [get]
func (h *BlogHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	resp, err := h.svc.List(r.Context(), page, limit, search, category)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения постов")
		return
	}

	helpers.Raw(w, http.StatusOK, resp)
}

// GetBySlug godoc
// @Summary Пост по slug
// @Description Неопубликованные и отсутствующие посты — 404.
// @Tags blogs
// @Produce json
// @Param slug path string true "Slug поста"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]string
// @Router /blog/{slug} [get]
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	b, err := h.svc.GetBySlug(r.Context(), slug)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка получения поста по slug",
			zap.String("slug", slug), zap.Error(err))
		writeBlogError(w, err)
		return
	}

	helpers.Raw(w, http.StatusOK, b)
}

// AdminList godoc
// @Summary Список постов для дашборда (включая черновики)
// @Tags admin-blogs
// @Produce json
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} models.BlogListResponse
// @Failure 401 {object} map[string]string
// @Router /api/admin/blogs [get]
func (h *BlogHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.svc.AdminList(r.Context(), page, limit)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения постов")
		return
	}

	helpers.Raw(w, http.StatusOK, resp)
}

// GetByID godoc
// @Summary Пост по ID (для формы редактирования)
// @Tags admin-blogs
// @Produce json
// @Param id path string true "ID поста"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]string
// @Router /api/admin/blogs/{id} [get]
func (h *BlogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Неверный id")
		return
	}

	b, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeBlogError(w, err)
		return
	}

	helpers.Raw(w, http.StatusOK, b)
}

// Create godoc
// @Summary Создать пост
// @Description Интерактивный админ-путь: категория хранится свободным текстом, без реестра.
// @Tags admin-blogs
// @Accept json
// @Produce json
// @Param input body models.CreateBlogRequest true "Данные поста"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} map[string]string
// @Router /api/admin/blogs [post]
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при создании поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	b, err := h.svc.Create(r.Context(), req, false)
	if err != nil {
		writeBlogError(w, err)
		return
	}

	helpers.Raw(w, http.StatusCreated, b)
}

// Update godoc
// @Summary Обновить пост
// @Description Частичное обновление; slug и readingTime не пересчитываются.
// @Tags admin-blogs
// @Accept json
// @Produce json
// @Param id path string true "ID поста"
// @Param input body models.UpdateBlogRequest true "Изменённые поля"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]string
// @Router /api/admin/blogs/{id} [patch]
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Неверный id")
		return
	}

	var req models.UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при обновлении поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	b, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeBlogError(w, err)
		return
	}

	helpers.Raw(w, http.StatusOK, b)
}

// Delete godoc
// @Summary Удалить пост
// @Description Жёсткое удаление, без восстановления.
// @Tags admin-blogs
// @Param id path string true "ID поста"
// @Success 200 {string} string "Пост удалён"
// @Failure 404 {object} map[string]string
// @Router /api/admin/blogs/{id} [delete]
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Неверный id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeBlogError(w, err)
		return
	}

	helpers.JSON(w, http.StatusOK, "Пост удалён")
}

type publishRequest struct {
	IsPublished bool `json:"isPublished"`
}

// SetPublish godoc
// @Summary Переключить публикацию
// @Tags admin-blogs
// @Accept json
// @Produce json
// @Param id path string true "ID поста"
// @Param input body publishRequest true "Новый статус"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]string
// @Router /api/admin/blogs/{id}/publish [patch]
func (h *BlogHandler) SetPublish(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Неверный id")
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	b, err := h.svc.SetPublished(r.Context(), id, req.IsPublished)
	if err != nil {
		writeBlogError(w, err)
		return
	}

	helpers.Raw(w, http.StatusOK, b)
}

// Dashboard — защищённая точка входа дашборда: первая страница админского списка.
func (h *BlogHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.AdminList(r.Context(), 1, 0)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения постов")
		return
	}
	helpers.Raw(w, http.StatusOK, resp)
}

// writeBlogError отображает ошибки воркфлоу на таксономию статусов.
func writeBlogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyTitle), errors.Is(err, services.ErrEmptyContent):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Пост не найден")
	case errors.Is(err, repository.ErrDuplicate):
		helpers.Error(w, http.StatusBadRequest, "Slug уже используется")
	default:
		helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка")
	}
}
