package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"navsikhyo/internal/config"
	"navsikhyo/internal/models"
	"navsikhyo/internal/services"

	"github.com/google/uuid"
)

func newSEOTestHandler(repo *memBlogRepo, siteURL string) *SEOHandler {
	catRepo := &memCategoryRepo{bySlug: map[string]*models.Category{}}
	svc := services.NewBlogService(repo, services.NewSlugService(repo), services.NewCategoryService(catRepo))
	return NewSEOHandler(svc, &config.Config{SiteURL: siteURL})
}

func TestRobots_DisallowLines(t *testing.T) {
	h := newSEOTestHandler(&memBlogRepo{}, "")

	rec := httptest.NewRecorder()
	h.Robots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	body := rec.Body.String()
	for _, line := range []string{
		"Disallow: /api/",
		"Disallow: /admin-dashboard/",
		"Disallow: /nav-portal-login/",
	} {
		if !strings.Contains(body, line) {
			t.Errorf("в robots.txt нет строки %q", line)
		}
	}
	if strings.Contains(body, "Sitemap:") {
		t.Error("ссылка на sitemap без SITE_URL не ожидалась")
	}
}

func TestRobots_SitemapLink(t *testing.T) {
	h := newSEOTestHandler(&memBlogRepo{}, "https://example.com")

	rec := httptest.NewRecorder()
	h.Robots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	if !strings.Contains(rec.Body.String(), "Sitemap: https://example.com/sitemap.xml") {
		t.Fatal("ожидалась ссылка на sitemap при заданном SITE_URL")
	}
}

func TestSitemap_PublishedOnly(t *testing.T) {
	updated := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	repo := &memBlogRepo{posts: []*models.BlogPost{
		{ID: uuid.New(), Slug: "published-post", IsPublished: true, UpdatedAt: updated},
		{ID: uuid.New(), Slug: "draft-post", IsPublished: false, UpdatedAt: updated},
	}}
	h := newSEOTestHandler(repo, "https://example.com")

	rec := httptest.NewRecorder()
	h.Sitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	body := rec.Body.String()

	if !strings.Contains(body, "<loc>https://example.com/</loc>") {
		t.Error("в sitemap нет главной страницы")
	}
	if !strings.Contains(body, "<loc>https://example.com/blog/published-post</loc>") {
		t.Error("в sitemap нет опубликованного поста")
	}
	if strings.Contains(body, "draft-post") {
		t.Error("черновик попал в sitemap")
	}
	if !strings.Contains(body, "<lastmod>"+updated.Format(time.RFC3339)+"</lastmod>") {
		t.Error("lastmod поста не совпадает с updated_at")
	}
}

func TestSitemap_StoreDown(t *testing.T) {
	catRepo := &memCategoryRepo{bySlug: map[string]*models.Category{}}
	repo := downBlogRepo{}
	svc := services.NewBlogService(repo, services.NewSlugService(repo), services.NewCategoryService(catRepo))
	h := NewSEOHandler(svc, &config.Config{})

	rec := httptest.NewRecorder()
	h.Sitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("недоступное хранилище: ожидался 500, получен %d", rec.Code)
	}
}
