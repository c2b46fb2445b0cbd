package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vbonduro/todolist/internal/domain"
)

type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := s.db.WithContext(ctx).Where("category_id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetForItem returns the category the given item belongs to.
func (s *CategoryStore) GetForItem(ctx context.Context, itemID int64) (*domain.Category, error) {
	var category domain.Category
	err := s.db.WithContext(ctx).
		Joins("JOIN items ON items.category_id = categories.category_id").
		Where("items.item_id = ?", itemID).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category for item: %w", err)
	}
	return &category, nil
}

func (s *CategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := s.db.WithContext(ctx).Order("name ASC, category_id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Options returns every category as an (id, name) pair in list order.
func (s *CategoryStore) Options(ctx context.Context) ([]domain.Option, error) {
	var options []domain.Option
	err := s.db.WithContext(ctx).
		Model(&domain.Category{}).
		Select("category_id AS id, name AS label").
		Order("name ASC, category_id ASC").
		Scan(&options).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list category options: %w", err)
	}
	return options, nil
}

// Update replaces the stored fields of the category identified by category.ID.
func (s *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("category_id = ?", category.ID).
		Updates(map[string]any{
			"name":       category.Name,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the category and every item in it as one transaction and
// reports how many items went with it.
func (s *CategoryStore) Delete(ctx context.Context, id int64) (int64, error) {
	var itemsDeleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := tx.Where("category_id = ?", id).Delete(&domain.Item{})
		if items.Error != nil {
			return fmt.Errorf("failed to delete items: %w", items.Error)
		}

		result := tx.Where("category_id = ?", id).Delete(&domain.Category{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		itemsDeleted = items.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return itemsDeleted, nil
}
