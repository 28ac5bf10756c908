package models

import (
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	ID          uuid.UUID `db:"id"           json:"id"`
	Title       string    `db:"title"        json:"title"`
	Slug        string    `db:"slug"         json:"slug"`
	Content     string    `db:"content"      json:"content"`
	Category    string    `db:"category"     json:"category,omitempty"`
	Tags        []string  `db:"-"            json:"tags"`
	Image       string    `db:"image"        json:"image,omitempty"`
	ReadingTime int       `db:"reading_time" json:"readingTime,omitempty"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updatedAt"`
}

// swagger:model CreateBlogRequest
type CreateBlogRequest struct {
	Title       string   `json:"title"    example:"Как писать middleware в Go"`
	Slug        string   `json:"slug,omitempty" example:"custom-url-slug"`
	Content     string   `json:"content"  example:"<p>Контент</p>"`
	Category    string   `json:"category,omitempty" example:"Backend"`
	Tags        []string `json:"tags,omitempty" example:"go,backend"`
	Image       string   `json:"image,omitempty"`
	IsPublished bool     `json:"isPublished"`
}

// UpdateBlogRequest — частичное обновление: применяются только переданные поля.
// Slug и readingTime автоматически не пересчитываются.
type UpdateBlogRequest struct {
	Title       *string   `json:"title,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Image       *string   `json:"image,omitempty"`
	IsPublished *bool     `json:"isPublished,omitempty"`
}

// BlogQuery — фильтры публичного и админского списков.
type BlogQuery struct {
	OnlyPublished bool
	Search        string
	Category      string
	Limit         int
	Offset        int
}

type BlogListResponse struct {
	Blogs    []*BlogPost `json:"blogs"`
	NextPage *int        `json:"nextPage,omitempty"`
	Total    int         `json:"total"`
}

// SitemapEntry — то немногое, что нужно для sitemap.xml.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}
