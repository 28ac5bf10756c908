package services

import (
	"context"
	"testing"

	"navsikhyo/internal/models"
	"navsikhyo/internal/repository"

	"github.com/google/uuid"
)

// Мок-репозиторий категорий (map по slug)
type mockCategoryRepo struct {
	bySlug      map[string]*models.Category
	createCalls int
	failCreate  bool
	// при failCreate имитируем гонку: запись "появляется" после неудачной вставки
	appearAfterFail *models.Category
}

func (m *mockCategoryRepo) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	m.createCalls++
	if m.failCreate {
		if m.appearAfterFail != nil {
			m.bySlug[m.appearAfterFail.Slug] = m.appearAfterFail
		}
		return nil, repository.ErrDuplicate
	}
	if _, ok := m.bySlug[c.Slug]; ok {
		return nil, repository.ErrDuplicate
	}
	m.bySlug[c.Slug] = c
	return c, nil
}

func (m *mockCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	c, ok := m.bySlug[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockCategoryRepo) List(_ context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range m.bySlug {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for slug, c := range m.bySlug {
		if c.ID == id {
			delete(m.bySlug, slug)
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestResolve_DefaultGeneral(t *testing.T) {
	repo := &mockCategoryRepo{bySlug: map[string]*models.Category{}}
	svc := NewCategoryService(repo)

	name, cat := svc.Resolve(context.Background(), "")
	if name != "General" {
		t.Fatalf("ожидалось имя 'General', получено %q", name)
	}
	if cat == nil || cat.Slug != "general" {
		t.Fatalf("ожидалась категория со slug 'general', получено %+v", cat)
	}

	// идемпотентность: второй вызов не создаёт дубликат
	name2, cat2 := svc.Resolve(context.Background(), "")
	if name2 != "General" || cat2 == nil || cat2.ID != cat.ID {
		t.Fatal("повторный Resolve вернул другую категорию")
	}
	if repo.createCalls != 1 {
		t.Fatalf("ожидался ровно один Create, было %d", repo.createCalls)
	}
}

func TestResolve_Normalization(t *testing.T) {
	repo := &mockCategoryRepo{bySlug: map[string]*models.Category{}}
	svc := NewCategoryService(repo)

	name, cat := svc.Resolve(context.Background(), "tech news")
	if name != "Tech news" {
		t.Fatalf("ожидалось 'Tech news' (только первая буква), получено %q", name)
	}
	if cat == nil || cat.Slug != "tech-news" {
		t.Fatalf("ожидался slug 'tech-news', получено %+v", cat)
	}
}

func TestResolve_RaceFallback(t *testing.T) {
	existing := &models.Category{ID: uuid.New(), Name: "Backend", Slug: "backend"}
	repo := &mockCategoryRepo{
		bySlug:          map[string]*models.Category{},
		failCreate:      true,
		appearAfterFail: existing,
	}
	svc := NewCategoryService(repo)

	name, cat := svc.Resolve(context.Background(), "backend")
	if name != "Backend" {
		t.Fatalf("ожидалось имя 'Backend', получено %q", name)
	}
	if cat == nil || cat.ID != existing.ID {
		t.Fatal("компенсирующее чтение не вернуло запись, созданную конкурентом")
	}
}

func TestResolve_TotalFailure(t *testing.T) {
	repo := &mockCategoryRepo{bySlug: map[string]*models.Category{}, failCreate: true}
	svc := NewCategoryService(repo)

	name, cat := svc.Resolve(context.Background(), "orphan")
	if name != "Orphan" {
		t.Fatalf("ожидалось нормализованное имя 'Orphan', получено %q", name)
	}
	if cat != nil {
		t.Fatal("при полном провале реестра категория должна быть nil")
	}
}

func TestCreateCategory_Duplicate(t *testing.T) {
	repo := &mockCategoryRepo{bySlug: map[string]*models.Category{}}
	svc := NewCategoryService(repo)

	if _, err := svc.Create(context.Background(), "Backend"); err != nil {
		t.Fatalf("первая категория не создана: %v", err)
	}
	_, err := svc.Create(context.Background(), "Backend")
	if err == nil {
		t.Fatal("ожидалась ошибка дубликата")
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{bySlug: map[string]*models.Category{}})

	if _, err := svc.Create(context.Background(), "   "); err == nil {
		t.Fatal("ожидалась ошибка валидации пустого имени")
	}
}
