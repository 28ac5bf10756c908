package utils

import (
	"testing"
	"time"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации: %v", err)
	}
	if err := ParseSessionToken("secret", token); err != nil {
		t.Fatalf("валидный токен отклонён: %v", err)
	}
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken("secret", -time.Minute)
	if err != nil {
		t.Fatalf("ошибка генерации: %v", err)
	}
	if err := ParseSessionToken("secret", token); err != ErrInvalidToken {
		t.Fatalf("просроченный токен: ожидалась ErrInvalidToken, получено %v", err)
	}
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("secret", time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации: %v", err)
	}
	if err := ParseSessionToken("другой", token); err != ErrInvalidToken {
		t.Fatalf("чужая подпись: ожидалась ErrInvalidToken, получено %v", err)
	}
}

func TestSessionToken_Garbage(t *testing.T) {
	if err := ParseSessionToken("secret", "не-токен"); err != ErrInvalidToken {
		t.Fatalf("мусор: ожидалась ErrInvalidToken, получено %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Fatal("верный пароль не прошёл проверку")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("неверный пароль прошёл проверку")
	}
}
