package middleware

import (
	"net/http"
	"strings"

	"navsikhyo/internal/config"
	"navsikhyo/internal/logger"
	"navsikhyo/internal/utils"
	helpers "navsikhyo/internal/utils/helpres"

	"go.uber.org/zap"
)

const (
	SessionCookie = "admin_token"
	LoginPath     = "/nav-portal-login"
	DashboardPath = "/admin-dashboard"
)

// SessionGuard проверяет cookie-токен сессии на защищённых маршрутах.
// Guard stateless: аутентификация заново выводится из токена на каждом
// запросе; любой дефект токена (нет, мусор, просрочен, чужая подпись)
// трактуется одинаково. Браузерные пути уводятся на страницу входа,
// XHR-пути дашборда получают 401.
func SessionGuard(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if !sessionValid(cfg, r) {
				logger.WithCtx(r.Context()).Warn("SessionGuard: недействительный токен сессии",
					zap.String("path", r.URL.Path))
				if strings.HasPrefix(r.URL.Path, "/api/") {
					helpers.Error(w, http.StatusUnauthorized, "Недействительный токен сессии")
				} else {
					http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionValid — для страницы входа: живой токен уводит сразу в дашборд.
func SessionValid(cfg *config.Config, r *http.Request) bool {
	return sessionValid(cfg, r)
}

func sessionValid(cfg *config.Config, r *http.Request) bool {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return false
	}
	return utils.ParseSessionToken(cfg.JWTSecret, c.Value) == nil
}
