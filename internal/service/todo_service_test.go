package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/todolist/internal/db"
	"github.com/vbonduro/todolist/internal/domain"
	"github.com/vbonduro/todolist/internal/store"
)

func newTestService(t *testing.T) *TodoService {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	st, err := store.New(d, slog.Default())
	require.NoError(t, err)

	return NewTodoService(st.Categories, st.Items, slog.Default())
}

func TestTodoServiceCreateCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "  Work "})
	require.NoError(t, err)
	assert.NotZero(t, category.ID)
	assert.Equal(t, "Work", category.Name)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Work", categories[0].Name)
}

func TestTodoServiceCreateCategory_EmptyNameAccepted(t *testing.T) {
	svc := newTestService(t)

	category, err := svc.CreateCategory(context.Background(), CategoryInput{Name: ""})
	require.NoError(t, err)
	assert.NotZero(t, category.ID)
}

func TestTodoServiceCreateCategory_NameTooLong(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryInput{Name: strings.Repeat("x", 201)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestTodoServiceUpdateCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, CategoryInput{Name: "Wrok"})
	require.NoError(t, err)

	for range 2 {
		updated, err := svc.UpdateCategory(ctx, created.ID, CategoryInput{Name: "Work"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Work", updated.Name)
	}

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestTodoServiceUpdateCategory_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateCategory(context.Background(), 99999, CategoryInput{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTodoServiceGetCategoryWithItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)
	home, err := svc.CreateCategory(ctx, CategoryInput{Name: "Home"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, ItemInput{Description: "Deploy", CategoryID: work.ID})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, ItemInput{Description: "Vacuum", CategoryID: home.ID})
	require.NoError(t, err)

	summary, err := svc.GetCategoryWithItems(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", summary.Name)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Deploy", summary.Items[0].Description)

	_, err = svc.GetCategoryWithItems(ctx, 99999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTodoServiceCreateItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, ItemInput{Description: "Buy milk", CategoryID: work.ID})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Description)
	assert.Equal(t, work.ID, items[0].Category.ID)
	assert.Equal(t, "Work", items[0].Category.Name)
}

func TestTodoServiceCreateItem_NoCategorySelected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, ItemInput{Description: "Buy milk", CategoryID: 0})
	assert.ErrorIs(t, err, ErrNoCategorySelected)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTodoServiceCreateItem_UnknownCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, ItemInput{Description: "Buy milk", CategoryID: 42})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTodoServiceCreateItem_NegativeCategory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateItem(context.Background(), ItemInput{Description: "Buy milk", CategoryID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTodoServiceUpdateItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)
	home, err := svc.CreateCategory(ctx, CategoryInput{Name: "Home"})
	require.NoError(t, err)
	created, err := svc.CreateItem(ctx, ItemInput{Description: "Buy milk", CategoryID: work.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, created.ID, ItemInput{Description: "Buy oat milk", Completed: true, CategoryID: home.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Buy oat milk", updated.Description)
	assert.True(t, updated.Completed)

	item, err := svc.GetItemWithCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", item.Category.Name)
}

func TestTodoServiceUpdateItem_NoCategorySelected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)
	created, err := svc.CreateItem(ctx, ItemInput{Description: "Buy milk", CategoryID: work.ID})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, created.ID, ItemInput{Description: "Changed", CategoryID: 0})
	assert.ErrorIs(t, err, ErrNoCategorySelected)

	item, err := svc.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", item.Description)
}

func TestTodoServiceUpdateItem_NotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, 99999, ItemInput{Description: "Ghost", CategoryID: work.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTodoServiceDeleteItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)
	doomed, err := svc.CreateItem(ctx, ItemInput{Description: "Deploy", CategoryID: work.ID})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, ItemInput{Description: "Review", CategoryID: work.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, doomed.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, doomed.ID), domain.ErrNotFound)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Review", items[0].Description)
}

// Deleting a category takes its items with it.
func TestTodoServiceScenario_DeleteCategoryCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)
	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Work", categories[0].Name)

	_, err = svc.CreateItem(ctx, ItemInput{Description: "Buy milk", CategoryID: work.ID})
	require.NoError(t, err)
	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Work", items[0].Category.Name)

	n, err := svc.CountCategoryItems(ctx, work.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	removed, err := svc.DeleteCategory(ctx, work.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	items, err = svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.DeleteCategory(ctx, work.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTodoServiceCategoryOptions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)
	home, err := svc.CreateCategory(ctx, CategoryInput{Name: "Home"})
	require.NoError(t, err)

	options, err := svc.CategoryOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Option{{ID: home.ID, Label: "Home"}, {ID: work.ID, Label: "Work"}}, options)
}

// failingCategories records calls and fails every one of them.
type failingCategories struct {
	calls int
}

var errStore = errors.New("store unavailable")

func (f *failingCategories) Create(context.Context, *domain.Category) error { f.calls++; return errStore }
func (f *failingCategories) GetByID(context.Context, int64) (*domain.Category, error) {
	f.calls++
	return nil, errStore
}
func (f *failingCategories) List(context.Context) ([]*domain.Category, error) {
	f.calls++
	return nil, errStore
}
func (f *failingCategories) Options(context.Context) ([]domain.Option, error) {
	f.calls++
	return nil, errStore
}
func (f *failingCategories) Update(context.Context, *domain.Category) error { f.calls++; return errStore }
func (f *failingCategories) Delete(context.Context, int64) (int64, error) {
	f.calls++
	return 0, errStore
}

func TestTodoServiceCreateItem_SentinelSkipsStore(t *testing.T) {
	cats := &failingCategories{}
	svc := NewTodoService(cats, nil, slog.Default())

	_, err := svc.CreateItem(context.Background(), ItemInput{Description: "Buy milk"})
	assert.ErrorIs(t, err, ErrNoCategorySelected)
	assert.Zero(t, cats.calls)
}

func TestTodoServiceStoreErrorsPropagate(t *testing.T) {
	cats := &failingCategories{}
	svc := NewTodoService(cats, nil, slog.Default())
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryInput{Name: "Work"})
	assert.ErrorIs(t, err, errStore)

	_, err = svc.CreateItem(ctx, ItemInput{Description: "Buy milk", CategoryID: 1})
	assert.ErrorIs(t, err, errStore)
	assert.NotErrorIs(t, err, ErrUnknownCategory)
}
