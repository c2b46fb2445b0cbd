package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vbonduro/todolist/internal/domain"
)

// categoryRepository is the subset of store.CategoryStore that TodoService requires.
type categoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Options(ctx context.Context) ([]domain.Option, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// itemRepository is the subset of store.ItemStore that TodoService requires.
type itemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	GetWithCategory(ctx context.Context, id int64) (*domain.ItemWithCategory, error)
	ListWithCategory(ctx context.Context) ([]*domain.ItemWithCategory, error)
	ListByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Item, error)
	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error
}

type TodoService struct {
	categoryStore categoryRepository
	itemStore     itemRepository
	logger        *slog.Logger
}

func NewTodoService(categoryStore categoryRepository, itemStore itemRepository, logger *slog.Logger) *TodoService {
	return &TodoService{
		categoryStore: categoryStore,
		itemStore:     itemStore,
		logger:        logger,
	}
}

func (s *TodoService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryStore.List(ctx)
}

func (s *TodoService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryStore.GetByID(ctx, id)
}

// CategorySummary bundles a category with its items for detail rendering.
type CategorySummary struct {
	*domain.Category
	Items []*domain.Item
}

func (s *TodoService) GetCategoryWithItems(ctx context.Context, id int64) (*CategorySummary, error) {
	category, err := s.categoryStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.itemStore.ListByCategoryID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for category %d: %w", id, err)
	}

	return &CategorySummary{Category: category, Items: items}, nil
}

// CountCategoryItems reports how many items a category delete would remove.
func (s *TodoService) CountCategoryItems(ctx context.Context, id int64) (int64, error) {
	return s.itemStore.CountByCategoryID(ctx, id)
}

func (s *TodoService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	category := &domain.Category{Name: in.Name}
	if err := s.categoryStore.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "category_id", category.ID)
	return category, nil
}

func (s *TodoService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*domain.Category, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	if err := s.categoryStore.Update(ctx, &domain.Category{ID: id, Name: in.Name}); err != nil {
		return nil, err
	}

	s.logger.Info("category updated", "category_id", id)
	return s.categoryStore.GetByID(ctx, id)
}

// DeleteCategory removes the category and all of its items, returning the
// number of items removed.
func (s *TodoService) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	n, err := s.categoryStore.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logger.Info("category deleted", "category_id", id, "items_deleted", n)
	return n, nil
}

func (s *TodoService) CategoryOptions(ctx context.Context) ([]domain.Option, error) {
	return s.categoryStore.Options(ctx)
}

func (s *TodoService) ListItems(ctx context.Context) ([]*domain.ItemWithCategory, error) {
	return s.itemStore.ListWithCategory(ctx)
}

func (s *TodoService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.itemStore.GetByID(ctx, id)
}

func (s *TodoService) GetItemWithCategory(ctx context.Context, id int64) (*domain.ItemWithCategory, error) {
	return s.itemStore.GetWithCategory(ctx, id)
}

func (s *TodoService) CreateItem(ctx context.Context, in ItemInput) (*domain.Item, error) {
	if err := s.checkItemInput(ctx, &in); err != nil {
		return nil, err
	}

	item := &domain.Item{
		Description: in.Description,
		Completed:   in.Completed,
		CategoryID:  in.CategoryID,
	}
	if err := s.itemStore.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created", "item_id", item.ID, "category_id", item.CategoryID)
	return item, nil
}

func (s *TodoService) UpdateItem(ctx context.Context, id int64, in ItemInput) (*domain.Item, error) {
	if err := s.checkItemInput(ctx, &in); err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:          id,
		Description: in.Description,
		Completed:   in.Completed,
		CategoryID:  in.CategoryID,
	}
	if err := s.itemStore.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item updated", "item_id", id, "category_id", item.CategoryID)
	return s.itemStore.GetByID(ctx, id)
}

func (s *TodoService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.itemStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("item deleted", "item_id", id)
	return nil
}

// checkItemInput validates in and confirms its category exists. The sentinel
// category id 0 is rejected before any store access.
func (s *TodoService) checkItemInput(ctx context.Context, in *ItemInput) error {
	if in.CategoryID == 0 {
		return ErrNoCategorySelected
	}
	if err := in.normalize(); err != nil {
		return err
	}

	_, err := s.categoryStore.GetByID(ctx, in.CategoryID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, in.CategoryID)
	}
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	return nil
}
