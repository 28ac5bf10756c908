package handlers

import (
	"encoding/xml"
	"net/http"
	"time"

	"navsikhyo/internal/config"
	"navsikhyo/internal/logger"
	"navsikhyo/internal/services"

	"go.uber.org/zap"
)

// SEOHandler отдаёт robots.txt и sitemap.xml — служебные маршруты
// для поисковиков, без аутентификации.
type SEOHandler struct {
	svc *services.BlogService
	cfg *config.Config
}

func NewSEOHandler(svc *services.BlogService, cfg *config.Config) *SEOHandler {
	return &SEOHandler{svc: svc, cfg: cfg}
}

const robotsBody = `User-agent: *
Allow: /
Disallow: /api/
Disallow: /admin-dashboard/
Disallow: /nav-portal-login/
`

func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(robotsBody))
	if h.cfg.SiteURL != "" {
		_, _ = w.Write([]byte("\nSitemap: " + h.cfg.SiteURL + "/sitemap.xml\n"))
	}
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap перечисляет главную страницу и каждый опубликованный пост.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.SitemapEntries(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка построения sitemap", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	base := h.cfg.SiteURL
	urls := []sitemapURL{
		{Loc: base + "/", LastMod: time.Now().Format(time.RFC3339)},
	}
	for _, e := range entries {
		urls = append(urls, sitemapURL{
			Loc:     base + "/blog/" + e.Slug,
			LastMod: e.UpdatedAt.Format(time.RFC3339),
		})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_ = xml.NewEncoder(w).Encode(sitemap)
}
