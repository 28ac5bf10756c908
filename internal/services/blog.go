package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"navsikhyo/internal/logger"
	"navsikhyo/internal/models"
	"navsikhyo/internal/repository"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

var (
	ErrEmptyTitle   = errors.New("заголовок обязателен")
	ErrEmptyContent = errors.New("контент обязателен")
)

const (
	wordsPerMinute  = 200
	defaultPageSize = 9
	maxPageSize     = 50
	listingCacheTTL = 5 * time.Minute
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// ReadingTime — ceil(слов в тексте без HTML-тегов / 200) минут.
func ReadingTime(content string) int {
	words := len(strings.Fields(htmlTagRe.ReplaceAllString(content, " ")))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

type BlogService struct {
	repo       repository.BlogRepo
	slugs      *SlugService
	categories *CategoryService
	policy     *bluemonday.Policy
	cache      *ListingCache
}

func NewBlogService(repo repository.BlogRepo, slugs *SlugService, categories *CategoryService) *BlogService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &BlogService{
		repo:       repo,
		slugs:      slugs,
		categories: categories,
		policy:     p,
		cache:      NewListingCache(listingCacheTTL),
	}
}

// Create создаёт пост. automated=true — путь автоматизации: категория
// проходит через реестр (find-or-create), а slug перепроверяется дважды.
// Интерактивный админ-путь хранит категорию свободным текстом как есть —
// это наблюдаемое поведение, не унифицируем.
func (s *BlogService) Create(ctx context.Context, req models.CreateBlogRequest, automated bool) (*models.BlogPost, error) {
	log := logger.WithCtx(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	slug, err := s.slugs.Resolve(ctx, title, req.Slug, automated)
	if err != nil {
		log.Error("Ошибка подбора slug", zap.Error(err))
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if automated {
		category, _ = s.categories.Resolve(ctx, category)
	}

	safe := s.policy.Sanitize(content)

	b := &models.BlogPost{
		ID:          uuid.New(),
		Title:       title,
		Slug:        slug,
		Content:     safe,
		Category:    category,
		Tags:        normalizeTags(req.Tags),
		Image:       req.Image,
		ReadingTime: ReadingTime(safe),
		IsPublished: req.IsPublished,
	}

	created, err := s.repo.Create(ctx, b)
	if errors.Is(err, repository.ErrDuplicate) {
		// уникальный индекс сработал раньше нашей проверки — последняя попытка
		b.Slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
		log.Warn("Конфликт slug при вставке, повтор с меткой времени", zap.String("slug", b.Slug))
		created, err = s.repo.Create(ctx, b)
	}
	if err != nil {
		log.Error("Ошибка создания поста (repo)", zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate()
	log.Info("Пост создан",
		zap.String("id", created.ID.String()),
		zap.String("slug", created.Slug),
		zap.Bool("published", created.IsPublished),
	)
	return created, nil
}

// Update сливает переданные поля в существующую запись. Slug и readingTime
// автоматически не пересчитываются; уникальность явно изменённого slug-а
// заново не проверяется — конфликт поймает индекс БД.
func (s *BlogService) Update(ctx context.Context, id uuid.UUID, req models.UpdateBlogRequest) (*models.BlogPost, error) {
	log := logger.WithCtx(ctx)

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Пост для обновления не найден (repo)", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		b.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Content != nil {
		b.Content = s.policy.Sanitize(*req.Content)
	}
	if req.Category != nil {
		b.Category = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		b.Tags = normalizeTags(*req.Tags)
	}
	if req.Image != nil {
		b.Image = *req.Image
	}
	if req.IsPublished != nil {
		b.IsPublished = *req.IsPublished
	}

	if err := s.repo.Update(ctx, b); err != nil {
		log.Error("Ошибка обновления поста (repo)", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate()
	log.Info("Пост обновлён", zap.String("id", id.String()))
	return b, nil
}

// Delete — жёсткое удаление без каскада и без восстановления.
func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.WithCtx(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Ошибка удаления поста (repo)", zap.String("id", id.String()), zap.Error(err))
		return err
	}

	s.cache.Invalidate()
	log.Info("Пост удалён", zap.String("id", id.String()))
	return nil
}

func (s *BlogService) SetPublished(ctx context.Context, id uuid.UUID, publish bool) (*models.BlogPost, error) {
	log := logger.WithCtx(ctx)

	if err := s.repo.UpdatePublish(ctx, id, publish); err != nil {
		log.Warn("Ошибка изменения статуса публикации (repo)", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate()
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info("Статус публикации изменён", zap.String("id", id.String()), zap.Bool("published", b.IsPublished))
	return b, nil
}

// List — публичный список: только опубликованные, поиск по заголовку и
// контенту без ранжирования, фильтр по точному имени категории ("all" и
// пустое значение — без фильтра), свежие сверху. hasMore считается по
// отдельному COUNT: страница и счётчик не атомарны, при параллельных
// записях возможно краткое расхождение.
func (s *BlogService) List(ctx context.Context, page, limit int, search, category string) (*models.BlogListResponse, error) {
	log := logger.WithCtx(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	cacheable := page == 1 && limit == defaultPageSize && search == "" && (category == "" || category == "all")
	if cacheable {
		if resp := s.cache.Get(); resp != nil {
			return resp, nil
		}
	}

	q := models.BlogQuery{
		OnlyPublished: true,
		Search:        search,
		Category:      category,
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}

	resp, err := s.fetchPage(ctx, q, page)
	if err != nil {
		log.Error("Ошибка получения списка постов (repo)", zap.Error(err))
		return nil, err
	}

	if cacheable {
		s.cache.Put(resp)
	}
	log.Debug("Список постов получен", zap.Int("count", len(resp.Blogs)), zap.Int("total", resp.Total))
	return resp, nil
}

// AdminList — список для дашборда, включая неопубликованные.
func (s *BlogService) AdminList(ctx context.Context, page, limit int) (*models.BlogListResponse, error) {
	log := logger.WithCtx(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	q := models.BlogQuery{Limit: limit, Offset: (page - 1) * limit}
	resp, err := s.fetchPage(ctx, q, page)
	if err != nil {
		log.Error("Ошибка получения админского списка (repo)", zap.Error(err))
		return nil, err
	}
	return resp, nil
}

func (s *BlogService) fetchPage(ctx context.Context, q models.BlogQuery, page int) (*models.BlogListResponse, error) {
	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*models.BlogPost{}
	}
	resp := &models.BlogListResponse{Blogs: items, Total: total}
	if q.Offset+len(items) < total {
		next := page + 1
		resp.NextPage = &next
	}
	return resp, nil
}

func (s *BlogService) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug — публичная страница поста: неопубликованные не отдаются.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.repo.GetBySlug(ctx, slug, true)
}

func (s *BlogService) SitemapEntries(ctx context.Context) ([]models.SitemapEntry, error) {
	return s.repo.ListForSitemap(ctx)
}

// Порядок тегов сохраняем — он значим для отображения.
func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
