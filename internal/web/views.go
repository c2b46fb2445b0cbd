package web

import (
	"github.com/vbonduro/todolist/internal/domain"
	"github.com/vbonduro/todolist/internal/service"
)

// page holds the fields base.html reads on every page.
type page struct {
	Title     string
	ActiveNav string
}

type categoryListPage struct {
	page
	Categories []*domain.Category
}

type categoryDetailPage struct {
	page
	Category *service.CategorySummary
}

type categoryFormPage struct {
	page
	Action   string
	Category *domain.Category
}

type categoryDeletePage struct {
	page
	Category  *domain.Category
	ItemCount int64
}

type itemListPage struct {
	page
	Items []*domain.ItemWithCategory
}

type itemDetailPage struct {
	page
	Item *domain.ItemWithCategory
}

type itemFormPage struct {
	page
	Action          string
	Item            *domain.Item
	Categories      []SelectOption
	MissingCategory bool
}

type itemDeletePage struct {
	page
	Item *domain.ItemWithCategory
}

// SelectOption is one <option> of a category dropdown.
type SelectOption struct {
	Value    int64
	Label    string
	Selected bool
}

// selectOptions marks the option whose id equals selected. An id of 0 selects
// nothing, leaving the placeholder option active.
func selectOptions(options []domain.Option, selected int64) []SelectOption {
	out := make([]SelectOption, 0, len(options))
	for _, o := range options {
		out = append(out, SelectOption{
			Value:    o.ID,
			Label:    displayName(o.Label),
			Selected: selected != 0 && o.ID == selected,
		})
	}
	return out
}
