package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vbonduro/todolist/internal/domain"
	"github.com/vbonduro/todolist/internal/service"
)

// parseID extracts the {id} path variable and returns it as int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// parseFormID reads the posted "id" field of a submit-edit or confirm-delete
// form.
func parseFormID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PostFormValue("id"), 10, 64)
}

// parseCategoryID reads the posted category choice. An empty value is the
// sentinel 0, "no category selected".
func parseCategoryID(r *http.Request) (int64, error) {
	raw := r.PostFormValue("category_id")
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func parseCheckbox(v string) bool {
	if v == "on" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// writeError maps a service error onto a response. Unexpected errors are
// logged and answered with a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrUnknownCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "failed to "+action, http.StatusInternalServerError)
		s.logger.Error(action+" failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func (s *Server) render(w http.ResponseWriter, data any, files ...string) {
	all := append([]string{"base.html"}, files...)
	if err := s.renderPage(w, data, all...); err != nil {
		s.logger.Error("render page failed", "files", files, "error", err)
	}
}
