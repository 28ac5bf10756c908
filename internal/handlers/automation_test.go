package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"navsikhyo/internal/config"
	"navsikhyo/internal/models"
	"navsikhyo/internal/repository"
	"navsikhyo/internal/services"

	"github.com/google/uuid"
)

// Мок-репозитории уровня handlers: ровно столько, сколько нужно
// для прохода запроса через сервисный слой.
type memBlogRepo struct {
	posts []*models.BlogPost
}

func (m *memBlogRepo) Create(_ context.Context, b *models.BlogPost) (*models.BlogPost, error) {
	for _, p := range m.posts {
		if p.Slug == b.Slug {
			return nil, repository.ErrDuplicate
		}
	}
	cp := *b
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.posts = append(m.posts, &cp)
	return &cp, nil
}

func (m *memBlogRepo) GetByID(_ context.Context, id uuid.UUID) (*models.BlogPost, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memBlogRepo) GetBySlug(_ context.Context, slug string, onlyPublished bool) (*models.BlogPost, error) {
	for _, p := range m.posts {
		if p.Slug == slug && (!onlyPublished || p.IsPublished) {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memBlogRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBlogRepo) Update(_ context.Context, b *models.BlogPost) error { return nil }

func (m *memBlogRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

func (m *memBlogRepo) UpdatePublish(_ context.Context, id uuid.UUID, publish bool) error { return nil }

func (m *memBlogRepo) List(_ context.Context, q models.BlogQuery) ([]*models.BlogPost, error) {
	return m.posts, nil
}

func (m *memBlogRepo) Count(_ context.Context, q models.BlogQuery) (int, error) {
	return len(m.posts), nil
}

func (m *memBlogRepo) ListForSitemap(_ context.Context) ([]models.SitemapEntry, error) {
	var out []models.SitemapEntry
	for _, p := range m.posts {
		if p.IsPublished {
			out = append(out, models.SitemapEntry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
	}
	return out, nil
}

type memCategoryRepo struct {
	bySlug map[string]*models.Category
}

func (m *memCategoryRepo) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	if _, ok := m.bySlug[c.Slug]; ok {
		return nil, repository.ErrDuplicate
	}
	cp := *c
	cp.ID = uuid.New()
	m.bySlug[c.Slug] = &cp
	return &cp, nil
}

func (m *memCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	if c, ok := m.bySlug[slug]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCategoryRepo) List(_ context.Context) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(m.bySlug))
	for _, c := range m.bySlug {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

func newAutomationTestHandler(secret string) (*AutomationHandler, *memBlogRepo) {
	repo := &memBlogRepo{}
	catRepo := &memCategoryRepo{bySlug: map[string]*models.Category{}}
	svc := services.NewBlogService(repo, services.NewSlugService(repo), services.NewCategoryService(catRepo))
	cfg := &config.Config{APISecret: secret}
	return NewAutomationHandler(svc, cfg), repo
}

func postAutomation(h *AutomationHandler, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/automation/blogs", &buf)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestAutomation_MissingAuth(t *testing.T) {
	h, _ := newAutomationTestHandler("secret-token")

	rec := postAutomation(h, "", map[string]string{"title": "T", "content": "<p>x</p>"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("без заголовка: ожидался 401, получен %d", rec.Code)
	}
}

func TestAutomation_WrongToken(t *testing.T) {
	h, _ := newAutomationTestHandler("secret-token")

	rec := postAutomation(h, "Bearer wrong", map[string]string{"title": "T", "content": "<p>x</p>"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("неверный токен: ожидался 401, получен %d", rec.Code)
	}
}

func TestAutomation_EmptySecretRejectsAll(t *testing.T) {
	h, _ := newAutomationTestHandler("")

	rec := postAutomation(h, "Bearer ", map[string]string{"title": "T", "content": "<p>x</p>"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("пустой секрет: ожидался 401, получен %d", rec.Code)
	}
}

func TestAutomation_MissingFields(t *testing.T) {
	h, _ := newAutomationTestHandler("secret-token")

	rec := postAutomation(h, "Bearer secret-token", map[string]string{"title": "T"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("без content: ожидался 400, получен %d", rec.Code)
	}

	rec = postAutomation(h, "Bearer secret-token", map[string]string{"content": "<p>x</p>"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("без title: ожидался 400, получен %d", rec.Code)
	}
}

func TestAutomation_CreateSuccess(t *testing.T) {
	h, repo := newAutomationTestHandler("secret-token")

	rec := postAutomation(h, "Bearer secret-token", map[string]any{
		"title":   "Test",
		"content": "<p>hello world</p>",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}

	var resp automationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("невалидный ответ: %v", err)
	}
	if !resp.Success {
		t.Fatal("ожидался success=true")
	}
	if resp.Data.Slug != "test" {
		t.Fatalf("ожидался slug 'test', получен %q", resp.Data.Slug)
	}
	if resp.Data.URL != "/blog/test" {
		t.Fatalf("ожидался url '/blog/test', получен %q", resp.Data.URL)
	}

	if len(repo.posts) != 1 {
		t.Fatalf("ожидался 1 пост в хранилище, получено %d", len(repo.posts))
	}
	b := repo.posts[0]
	if !b.IsPublished {
		t.Fatal("automation-пост должен публиковаться сразу")
	}
	if b.Category != "General" {
		t.Fatalf("ожидалась категория 'General', получено %q", b.Category)
	}
	if b.ReadingTime != 1 {
		t.Fatalf("ожидался readingTime 1, получен %d", b.ReadingTime)
	}
}
