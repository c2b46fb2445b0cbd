package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vbonduro/todolist/internal/domain"
	"github.com/vbonduro/todolist/internal/service"
)

// missingCategoryQuery flags a form that was bounced back because no category
// was chosen.
const missingCategoryQuery = "error=category"

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.ListItems(r.Context())
	if err != nil {
		s.writeError(w, r, "list items", err)
		return
	}

	s.render(w, itemListPage{
		page:  page{Title: "Items", ActiveNav: "items"},
		Items: items,
	}, "pages/items.html")
}

func (s *Server) handleItemDetails(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	item, err := s.service.GetItemWithCategory(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get item", err)
		return
	}

	s.render(w, itemDetailPage{
		page: page{Title: item.Description, ActiveNav: "items"},
		Item: item,
	}, "pages/item_detail.html")
}

func (s *Server) handleCreateItemForm(w http.ResponseWriter, r *http.Request) {
	options, err := s.service.CategoryOptions(r.Context())
	if err != nil {
		s.writeError(w, r, "list category options", err)
		return
	}

	s.render(w, itemFormPage{
		page:            page{Title: "New item", ActiveNav: "items"},
		Action:          "/items/create",
		Item:            &domain.Item{},
		Categories:      selectOptions(options, 0),
		MissingCategory: r.URL.Query().Get("error") == "category",
	}, "pages/item_form.html")
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	in, err := parseItemInput(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = s.service.CreateItem(r.Context(), in)
	if errors.Is(err, service.ErrNoCategorySelected) {
		redirect(w, r, "/items/create?"+missingCategoryQuery)
		return
	}
	if err != nil {
		s.writeError(w, r, "create item", err)
		return
	}
	redirect(w, r, "/items")
}

func (s *Server) handleEditItemForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	item, err := s.service.GetItem(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get item", err)
		return
	}
	options, err := s.service.CategoryOptions(r.Context())
	if err != nil {
		s.writeError(w, r, "list category options", err)
		return
	}

	s.render(w, itemFormPage{
		page:            page{Title: "Edit item", ActiveNav: "items"},
		Action:          "/items/edit",
		Item:            item,
		Categories:      selectOptions(options, item.CategoryID),
		MissingCategory: r.URL.Query().Get("error") == "category",
	}, "pages/item_form.html")
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseFormID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	in, err := parseItemInput(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = s.service.UpdateItem(r.Context(), id, in)
	if errors.Is(err, service.ErrNoCategorySelected) {
		redirect(w, r, fmt.Sprintf("/items/edit/%d?%s", id, missingCategoryQuery))
		return
	}
	if err != nil {
		s.writeError(w, r, "update item", err)
		return
	}
	redirect(w, r, "/items")
}

// handleDeleteItemConfirm renders the confirmation step; nothing is deleted
// on GET.
func (s *Server) handleDeleteItemConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	item, err := s.service.GetItemWithCategory(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get item", err)
		return
	}

	s.render(w, itemDeletePage{
		page: page{Title: "Delete item", ActiveNav: "items"},
		Item: item,
	}, "pages/item_delete.html")
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseFormID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if err := s.service.DeleteItem(r.Context(), id); err != nil {
		s.writeError(w, r, "delete item", err)
		return
	}
	redirect(w, r, "/items")
}

func parseItemInput(r *http.Request) (service.ItemInput, error) {
	categoryID, err := parseCategoryID(r)
	if err != nil {
		return service.ItemInput{}, errors.New("invalid category id")
	}
	return service.ItemInput{
		Description: r.PostFormValue("description"),
		Completed:   parseCheckbox(r.PostFormValue("completed")),
		CategoryID:  categoryID,
	}, nil
}
