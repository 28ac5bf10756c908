package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"navsikhyo/internal/config"
	"navsikhyo/internal/logger"
	"navsikhyo/internal/middleware"
	"navsikhyo/internal/services"
	helpers "navsikhyo/internal/utils/helpres"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirectUrl"`
}

// Login godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные для входа"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Неверный логин или пароль"
// @Failure 500 {string} string "Ошибка конфигурации сервера"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	token, ttl, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthNotConfigured) {
			helpers.Error(w, http.StatusInternalServerError, "Ошибка конфигурации сервера")
			return
		}
		helpers.Error(w, http.StatusUnauthorized, "Неверный логин или пароль")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Env == "prod",
		SameSite: http.SameSiteStrictMode,
	})

	helpers.Raw(w, http.StatusOK, loginResponse{Success: true, RedirectURL: middleware.DashboardPath})
}

// Logout godoc
// @Summary Выход: сброс cookie сессии
// @Description Вызывается и beacon-ом при закрытии вкладки, поэтому тело не читается.
// @Tags auth
// @Success 200 {string} string "Сессия завершена"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Env == "prod",
		SameSite: http.SameSiteStrictMode,
	})

	logger.WithCtx(r.Context()).Info("Сессия администратора завершена")
	helpers.JSON(w, http.StatusOK, "Сессия завершена")
}

// LoginPage — точка входа для неаутентифицированных редиректов.
// С живым токеном здесь делать нечего — сразу в дашборд.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionValid(h.cfg, r) {
		http.Redirect(w, r, middleware.DashboardPath, http.StatusTemporaryRedirect)
		return
	}
	helpers.JSON(w, http.StatusOK, "Страница входа")
}
