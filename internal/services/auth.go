package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"navsikhyo/internal/config"
	"navsikhyo/internal/logger"
	"navsikhyo/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrAuthNotConfigured  = errors.New("учётные данные администратора не настроены")
)

// AuthService — один админский аккаунт из конфига, без ролей и без
// серверного хранилища сессий: аутентификация каждый раз выводится из токена.
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login сверяет учётные данные и выдаёт токен сессии вместе с его TTL.
// Сравнения — постоянного времени (bcrypt либо subtle).
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Duration, error) {
	log := logger.WithCtx(ctx)

	if s.cfg.AdminUsername == "" || (s.cfg.AdminPassword == "" && s.cfg.AdminPasswordHash == "") {
		log.Error("Логин невозможен: учётные данные администратора не настроены")
		return "", 0, ErrAuthNotConfigured
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1

	var passOK bool
	if s.cfg.AdminPasswordHash != "" {
		passOK = utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash)
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	}

	if !userOK || !passOK {
		log.Warn("Неудачная попытка входа", zap.String("username", username))
		return "", 0, ErrInvalidCredentials
	}

	ttl := s.SessionTTL()
	token, err := utils.GenerateSessionToken(s.cfg.JWTSecret, ttl)
	if err != nil {
		log.Error("Ошибка генерации токена сессии", zap.Error(err))
		return "", 0, err
	}

	log.Info("Вход администратора выполнен", zap.Duration("ttl", ttl))
	return token, ttl, nil
}

func (s *AuthService) SessionTTL() time.Duration {
	ttl, err := time.ParseDuration(s.cfg.SessionTTL)
	if err != nil || ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
