package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"navsikhyo/internal/config"
	"navsikhyo/internal/logger"
	"navsikhyo/internal/models"
	"navsikhyo/internal/services"
	helpers "navsikhyo/internal/utils/helpres"

	"go.uber.org/zap"
)

// AutomationHandler — внешняя точка для программного создания постов.
// Вместо cookie-сессии — статический общий секрет в Authorization: Bearer.
type AutomationHandler struct {
	svc *services.BlogService
	cfg *config.Config
}

func NewAutomationHandler(svc *services.BlogService, cfg *config.Config) *AutomationHandler {
	return &AutomationHandler{svc: svc, cfg: cfg}
}

type automationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    automationData `json:"data"`
}

type automationData struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

// Create godoc
// @Summary Создать пост через автоматизацию
// @Description Категория проходит реестр (find-or-create), пост сразу публикуется.
// @Tags automation
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <API_SECRET>"
// @Param input body models.CreateBlogRequest true "Данные поста"
// @Success 201 {object} automationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/automation/blogs [post]
func (h *AutomationHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		log.Warn("Automation: отсутствует или некорректный заголовок Authorization")
		helpers.Error(w, http.StatusUnauthorized, "Отсутствует или некорректный токен")
		return
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if h.cfg.APISecret == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.APISecret)) != 1 {
		log.Warn("Automation: неверный токен")
		helpers.Error(w, http.StatusUnauthorized, "Неверный токен")
		return
	}

	var req models.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Automation: невалидный JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		helpers.Error(w, http.StatusBadRequest, "Обязательные поля: title, content")
		return
	}

	// автоматизация публикует сразу
	req.IsPublished = true

	b, err := h.svc.Create(r.Context(), req, true)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTitle) || errors.Is(err, services.ErrEmptyContent) {
			helpers.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Automation: ошибка создания поста", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}

	log.Info("Automation: пост создан", zap.String("id", b.ID.String()), zap.String("slug", b.Slug))
	helpers.Raw(w, http.StatusCreated, automationResponse{
		Success: true,
		Message: "Пост успешно создан",
		Data: automationData{
			ID:   b.ID.String(),
			Slug: b.Slug,
			URL:  "/blog/" + b.Slug,
		},
	})
}
