package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"navsikhyo/internal/config"
	"navsikhyo/internal/utils"
)

func guardedHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	return SessionGuard(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestSessionGuard_NoCookieRedirects(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	h := guardedHandler(t, cfg)

	req := httptest.NewRequest(http.MethodGet, DashboardPath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("ожидался 307, получен %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("ожидался редирект на %s, получен %q", LoginPath, loc)
	}
}

func TestSessionGuard_ExpiredToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	h := guardedHandler(t, cfg)

	token, err := utils.GenerateSessionToken(cfg.JWTSecret, -time.Minute)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, DashboardPath, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("просроченный токен: ожидался 307, получен %d", rec.Code)
	}
}

func TestSessionGuard_WrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	h := guardedHandler(t, cfg)

	token, err := utils.GenerateSessionToken("другой-секрет", time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, DashboardPath, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("чужая подпись: ожидался 307, получен %d", rec.Code)
	}
}

func TestSessionGuard_ValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	h := guardedHandler(t, cfg)

	token, err := utils.GenerateSessionToken(cfg.JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, DashboardPath, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("живой токен: ожидался 200, получен %d", rec.Code)
	}
}

func TestSessionGuard_APIPathGets401(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	h := guardedHandler(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/blogs", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("XHR-путь без cookie: ожидался 401, получен %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Fatal("XHR-путь не должен редиректить")
	}
}

func TestSessionGuard_OptionsPassThrough(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	h := guardedHandler(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/blogs", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("OPTIONS: ожидался 204, получен %d", rec.Code)
	}
}
