package services

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"navsikhyo/internal/logger"

	"go.uber.org/zap"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify приводит текст к URL-безопасному виду: нижний регистр,
// последовательности не-буквенно-цифровых символов схлопываются в один дефис.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugChecker — read-only проверка существования slug-а в хранилище.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type SlugService struct {
	repo SlugChecker
}

func NewSlugService(repo SlugChecker) *SlugService {
	return &SlugService{repo: repo}
}

// Resolve выбирает итоговый slug поста: явный override либо производный от
// заголовка ("untitled", если после нормализации ничего не осталось).
// При коллизии добавляется метка времени в миллисекундах; doubleCheck
// (automation-путь) перепроверяет ещё раз и добавляет случайный суффикс.
// Уникальность здесь best-effort: последнее слово за уникальным индексом БД.
func (s *SlugService) Resolve(ctx context.Context, title, override string, doubleCheck bool) (string, error) {
	log := logger.WithCtx(ctx)

	slug := Slugify(override)
	if slug == "" {
		slug = Slugify(title)
		if slug == "" {
			slug = "untitled"
		}
	}

	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return "", err
	}
	if !exists {
		return slug, nil
	}

	log.Info("Slug занят, добавляем метку времени", zap.String("slug", slug))
	slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())

	if doubleCheck {
		exists, err = s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if exists {
			// гонка в пределах одной миллисекунды
			slug = fmt.Sprintf("%s-%d", slug, rand.Intn(1000))
			log.Warn("Slug занят и после метки времени, добавлен случайный суффикс", zap.String("slug", slug))
		}
	}

	return slug, nil
}
