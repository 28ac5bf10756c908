package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"navsikhyo/internal/models"
)

type BlogRepo interface {
	Create(ctx context.Context, b *models.BlogPost) (*models.BlogPost, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string, onlyPublished bool) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, b *models.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePublish(ctx context.Context, id uuid.UUID, publish bool) error
	List(ctx context.Context, q models.BlogQuery) ([]*models.BlogPost, error)
	Count(ctx context.Context, q models.BlogQuery) (int, error)
	ListForSitemap(ctx context.Context) ([]models.SitemapEntry, error)
}

type blogRepo struct{ db *pgxpool.Pool }

func NewBlogRepo(db *pgxpool.Pool) BlogRepo { return &blogRepo{db: db} }

const blogColumns = `id, title, slug, content, category, tags, image, reading_time, is_published, created_at, updated_at`

func (r *blogRepo) Create(ctx context.Context, b *models.BlogPost) (*models.BlogPost, error) {
	tagsJSON, _ := json.Marshal(b.Tags)

	const q = `
		INSERT INTO blogs (id, title, slug, content, category, tags, image, reading_time, is_published)
		VALUES ($1,$2,$3,$4,$5,$6::jsonb,$7,$8,$9)
		RETURNING ` + blogColumns

	row := r.db.QueryRow(ctx, q,
		b.ID,
		b.Title,
		b.Slug,
		b.Content,
		b.Category,
		tagsJSON,
		b.Image,
		b.ReadingTime,
		b.IsPublished,
	)
	out, err := scanBlog(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

func (r *blogRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	q := `SELECT ` + blogColumns + ` FROM blogs WHERE id=$1`
	out, err := scanBlog(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return out, err
}

func (r *blogRepo) GetBySlug(ctx context.Context, slug string, onlyPublished bool) (*models.BlogPost, error) {
	q := `SELECT ` + blogColumns + ` FROM blogs WHERE slug=$1`
	if onlyPublished {
		q += ` AND is_published = true`
	}
	out, err := scanBlog(r.db.QueryRow(ctx, q, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return out, err
}

func (r *blogRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM blogs WHERE slug=$1)`, slug).Scan(&exists)
	return exists, err
}

func (r *blogRepo) Update(ctx context.Context, b *models.BlogPost) error {
	tagsJSON, _ := json.Marshal(b.Tags)
	const q = `
		UPDATE blogs
		SET title=$1,
		    slug=$2,
		    content=$3,
		    category=$4,
		    tags=$5::jsonb,
		    image=$6,
		    reading_time=$7,
		    is_published=$8,
		    updated_at=NOW()
		WHERE id=$9
	`
	ct, err := r.db.Exec(ctx, q, b.Title, b.Slug, b.Content, b.Category, tagsJSON, b.Image, b.ReadingTime, b.IsPublished, b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *blogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *blogRepo) UpdatePublish(ctx context.Context, id uuid.UUID, publish bool) error {
	const q = `UPDATE blogs SET is_published=$2, updated_at=NOW() WHERE id=$1`
	ct, err := r.db.Exec(ctx, q, id, publish)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *blogRepo) List(ctx context.Context, q models.BlogQuery) ([]*models.BlogPost, error) {
	where, args := buildBlogWhere(q)
	sql := `SELECT ` + blogColumns + ` FROM blogs` + where
	sql += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.BlogPost
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *blogRepo) Count(ctx context.Context, q models.BlogQuery) (int, error) {
	where, args := buildBlogWhere(q)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`+where, args...).Scan(&total)
	return total, err
}

func (r *blogRepo) ListForSitemap(ctx context.Context) ([]models.SitemapEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT slug, updated_at FROM blogs WHERE is_published = true ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SitemapEntry
	for rows.Next() {
		var e models.SitemapEntry
		if err := rows.Scan(&e.Slug, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// buildBlogWhere собирает WHERE под фильтры списка; порядок placeholder-ов
// должен совпадать между List и Count, иначе hasMore посчитается неверно.
func buildBlogWhere(q models.BlogQuery) (string, []interface{}) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if q.OnlyPublished {
		where = append(where, fmt.Sprintf("is_published = $%d", i))
		args = append(args, true)
		i++
	}
	if q.Search != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", i, i))
		args = append(args, "%"+escapeLike(q.Search)+"%")
		i++
	}
	if q.Category != "" && q.Category != "all" {
		where = append(where, fmt.Sprintf("category = $%d", i))
		args = append(args, q.Category)
		i++
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// escapeLike экранирует спецсимволы шаблона LIKE/ILIKE в пользовательском вводе,
// чтобы поиск сравнивал их буквально.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*models.BlogPost, error) {
	var b models.BlogPost
	var tagsRaw []byte
	if err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Content, &b.Category, &tagsRaw,
		&b.Image, &b.ReadingTime, &b.IsPublished, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	_ = json.Unmarshal(tagsRaw, &b.Tags)
	return &b, nil
}
