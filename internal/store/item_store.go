package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vbonduro/todolist/internal/domain"
)

type ItemStore struct {
	db *gorm.DB
}

func NewItemStore(db *gorm.DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	err := s.db.WithContext(ctx).Where("item_id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (s *ItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	var items []*domain.Item
	if err := s.db.WithContext(ctx).Order("description ASC, item_id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (s *ItemStore) ListByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("description ASC, item_id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (s *ItemStore) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.Item{}).Where("category_id = ?", categoryID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

// itemCategoryRow is one row of the items/categories join.
type itemCategoryRow struct {
	domain.Item
	CategoryName      string
	CategoryCreatedAt time.Time
	CategoryUpdatedAt time.Time
}

func (r *itemCategoryRow) toDomain() *domain.ItemWithCategory {
	item := r.Item
	return &domain.ItemWithCategory{
		Item: &item,
		Category: &domain.Category{
			ID:        r.CategoryID,
			Name:      r.CategoryName,
			CreatedAt: r.CategoryCreatedAt,
			UpdatedAt: r.CategoryUpdatedAt,
		},
	}
}

func (s *ItemStore) joinCategories(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("items").
		Select("items.*, " +
			"categories.name AS category_name, " +
			"categories.created_at AS category_created_at, " +
			"categories.updated_at AS category_updated_at").
		Joins("JOIN categories ON categories.category_id = items.category_id")
}

// ListWithCategory returns every item together with its category in a single
// query.
func (s *ItemStore) ListWithCategory(ctx context.Context) ([]*domain.ItemWithCategory, error) {
	var rows []itemCategoryRow
	err := s.joinCategories(ctx).
		Order("items.description ASC, items.item_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*domain.ItemWithCategory, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}
	return items, nil
}

func (s *ItemStore) GetWithCategory(ctx context.Context, id int64) (*domain.ItemWithCategory, error) {
	var rows []itemCategoryRow
	err := s.joinCategories(ctx).
		Where("items.item_id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0].toDomain(), nil
}

// Update replaces the stored fields of the item identified by item.ID.
func (s *ItemStore) Update(ctx context.Context, item *domain.Item) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("item_id = ?", item.ID).
		Updates(map[string]any{
			"description": item.Description,
			"completed":   item.Completed,
			"category_id": item.CategoryID,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Where("item_id = ?", id).Delete(&domain.Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
