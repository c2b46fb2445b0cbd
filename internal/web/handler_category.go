package web

import (
	"net/http"

	"github.com/vbonduro/todolist/internal/domain"
	"github.com/vbonduro/todolist/internal/service"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, r, "list categories", err)
		return
	}

	s.render(w, categoryListPage{
		page:       page{Title: "Categories", ActiveNav: "categories"},
		Categories: categories,
	}, "pages/categories.html")
}

func (s *Server) handleCreateCategoryForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, categoryFormPage{
		page:     page{Title: "New category", ActiveNav: "categories"},
		Action:   "/categories/create",
		Category: &domain.Category{},
	}, "pages/category_form.html")
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	in := service.CategoryInput{Name: r.PostFormValue("name")}
	if _, err := s.service.CreateCategory(r.Context(), in); err != nil {
		s.writeError(w, r, "create category", err)
		return
	}
	redirect(w, r, "/categories")
}

func (s *Server) handleCategoryDetails(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	category, err := s.service.GetCategoryWithItems(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get category", err)
		return
	}

	s.render(w, categoryDetailPage{
		page:     page{Title: displayName(category.Name), ActiveNav: "categories"},
		Category: category,
	}, "pages/category_detail.html", "partials/item_rows.html")
}

func (s *Server) handleEditCategoryForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	category, err := s.service.GetCategory(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get category", err)
		return
	}

	s.render(w, categoryFormPage{
		page:     page{Title: "Edit category", ActiveNav: "categories"},
		Action:   "/categories/edit",
		Category: category,
	}, "pages/category_form.html")
}

func (s *Server) handleEditCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseFormID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	in := service.CategoryInput{Name: r.PostFormValue("name")}
	if _, err := s.service.UpdateCategory(r.Context(), id, in); err != nil {
		s.writeError(w, r, "update category", err)
		return
	}
	redirect(w, r, "/categories")
}

// handleDeleteCategoryConfirm renders the confirmation step; nothing is
// deleted on GET.
func (s *Server) handleDeleteCategoryConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	category, err := s.service.GetCategory(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get category", err)
		return
	}
	count, err := s.service.CountCategoryItems(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "count category items", err)
		return
	}

	s.render(w, categoryDeletePage{
		page:      page{Title: "Delete category", ActiveNav: "categories"},
		Category:  category,
		ItemCount: count,
	}, "pages/category_delete.html")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseFormID(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if _, err := s.service.DeleteCategory(r.Context(), id); err != nil {
		s.writeError(w, r, "delete category", err)
		return
	}
	redirect(w, r, "/categories")
}
