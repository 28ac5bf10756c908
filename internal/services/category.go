package services

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"navsikhyo/internal/logger"
	"navsikhyo/internal/models"
	"navsikhyo/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyCategoryName = errors.New("название категории обязательно")

type CategoryService struct {
	repo repository.CategoryRepo
}

func NewCategoryService(repo repository.CategoryRepo) *CategoryService {
	return &CategoryService{repo: repo}
}

// Resolve — find-or-create: свободный текст категории превращается в
// каноническую запись {name, slug}. Пустое имя — "General". Ошибка создания
// (скорее всего гонка с параллельным запросом) гасится компенсирующим
// перечитыванием; если и оно не удалось, пост продолжит жить с «сырым»
// нормализованным именем без записи в реестре.
func (s *CategoryService) Resolve(ctx context.Context, name string) (string, *models.Category) {
	log := logger.WithCtx(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		name = "General"
	}
	name = upperFirst(name)
	slug := Slugify(name)

	cat, err := s.repo.GetBySlug(ctx, slug)
	if err == nil {
		return name, cat
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Warn("Ошибка поиска категории", zap.String("slug", slug), zap.Error(err))
		return name, nil
	}

	cat, err = s.repo.Create(ctx, &models.Category{ID: uuid.New(), Name: name, Slug: slug})
	if err != nil {
		log.Warn("Категория не создана (возможно, уже существует)", zap.String("slug", slug), zap.Error(err))
		cat, err = s.repo.GetBySlug(ctx, slug)
		if err != nil {
			log.Warn("Категория не найдена и после компенсирующего чтения", zap.String("slug", slug), zap.Error(err))
			return name, nil
		}
		return name, cat
	}

	log.Info("Категория создана автоматически", zap.String("name", name), zap.String("slug", slug))
	return name, cat
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	log := logger.WithCtx(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}

	cat, err := s.repo.Create(ctx, &models.Category{ID: uuid.New(), Name: name, Slug: Slugify(name)})
	if err != nil {
		log.Warn("Ошибка создания категории", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	log.Info("Категория создана", zap.String("name", cat.Name), zap.String("slug", cat.Slug))
	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.WithCtx(ctx)

	// Посты хранят категорию значением, а не ссылкой: каскада нет,
	// осиротевшие посты с именем удалённой категории допустимы.
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warn("Ошибка удаления категории", zap.String("id", id.String()), zap.Error(err))
		return err
	}

	log.Info("Категория удалена", zap.String("id", id.String()))
	return nil
}

// Первая буква — заглавная, остальное не трогаем (не title-case).
func upperFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
