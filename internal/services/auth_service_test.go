package services

import (
	"context"
	"testing"
	"time"

	"navsikhyo/internal/config"
	"navsikhyo/internal/utils"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		SessionTTL:    "24h",
	}
}

func TestLogin_Success(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	token, ttl, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("ошибка входа: %v", err)
	}
	if ttl != 24*time.Hour {
		t.Fatalf("ожидался TTL 24h, получен %v", ttl)
	}
	if err := utils.ParseSessionToken("test-secret", token); err != nil {
		t.Fatalf("выданный токен не прошёл проверку: %v", err)
	}
}

func TestLogin_BcryptHash(t *testing.T) {
	hash, err := utils.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	cfg := testAuthConfig()
	cfg.AdminPassword = ""
	cfg.AdminPasswordHash = hash

	svc := NewAuthService(cfg)
	if _, _, err := svc.Login(context.Background(), "admin", "s3cret"); err != nil {
		t.Fatalf("вход по bcrypt-хешу не удался: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "admin", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("ожидалась ErrInvalidCredentials, получено %v", err)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	if _, _, err := svc.Login(context.Background(), "admin", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("неверный пароль: ожидалась ErrInvalidCredentials, получено %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "intruder", "s3cret"); err != ErrInvalidCredentials {
		t.Fatalf("неверный логин: ожидалась ErrInvalidCredentials, получено %v", err)
	}
}

func TestLogin_NotConfigured(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AdminPassword = ""

	svc := NewAuthService(cfg)
	if _, _, err := svc.Login(context.Background(), "admin", "s3cret"); err != ErrAuthNotConfigured {
		t.Fatalf("ожидалась ErrAuthNotConfigured, получено %v", err)
	}
}

func TestSessionTTL_Default(t *testing.T) {
	cfg := testAuthConfig()
	cfg.SessionTTL = "не длительность"

	svc := NewAuthService(cfg)
	if got := svc.SessionTTL(); got != 24*time.Hour {
		t.Fatalf("ожидался дефолт 24h, получен %v", got)
	}
}
