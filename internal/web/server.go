package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/todolist/internal/domain"
	"github.com/vbonduro/todolist/internal/service"
)

// todoService is the subset of service.TodoService the handlers use.
type todoService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	GetCategoryWithItems(ctx context.Context, id int64) (*service.CategorySummary, error)
	CountCategoryItems(ctx context.Context, id int64) (int64, error)
	CreateCategory(ctx context.Context, in service.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, in service.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) (int64, error)
	CategoryOptions(ctx context.Context) ([]domain.Option, error)

	ListItems(ctx context.Context) ([]*domain.ItemWithCategory, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	GetItemWithCategory(ctx context.Context, id int64) (*domain.ItemWithCategory, error)
	CreateItem(ctx context.Context, in service.ItemInput) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int64, in service.ItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type Server struct {
	service   todoService
	templates embed.FS
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(svc todoService, tmpl embed.FS, logger *slog.Logger) *Server {
	s := &Server{
		service:   svc,
		templates: tmpl,
		mux:       http.NewServeMux(),
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"displayName": displayName,
			"date":        func(t time.Time) string { return t.Format("2 Jan 2006 15:04") },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/items", http.StatusSeeOther)
	})

	s.mux.HandleFunc("GET /categories", s.handleListCategories)
	s.mux.HandleFunc("GET /categories/create", s.handleCreateCategoryForm)
	s.mux.HandleFunc("POST /categories/create", s.handleCreateCategory)
	s.mux.HandleFunc("GET /categories/details/{id}", s.handleCategoryDetails)
	s.mux.HandleFunc("GET /categories/edit/{id}", s.handleEditCategoryForm)
	s.mux.HandleFunc("POST /categories/edit", s.handleEditCategory)
	s.mux.HandleFunc("GET /categories/delete/{id}", s.handleDeleteCategoryConfirm)
	s.mux.HandleFunc("POST /categories/delete", s.handleDeleteCategory)

	s.mux.HandleFunc("GET /items", s.handleListItems)
	s.mux.HandleFunc("GET /items/details/{id}", s.handleItemDetails)
	s.mux.HandleFunc("GET /items/create", s.handleCreateItemForm)
	s.mux.HandleFunc("POST /items/create", s.handleCreateItem)
	s.mux.HandleFunc("GET /items/edit/{id}", s.handleEditItemForm)
	s.mux.HandleFunc("POST /items/edit", s.handleEditItem)
	s.mux.HandleFunc("GET /items/delete/{id}", s.handleDeleteItemConfirm)
	s.mux.HandleFunc("POST /items/delete", s.handleDeleteItem)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"form-action 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

const requestIDHeader = "X-Request-ID"

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		)
	})
}

// recoverer turns a handler panic into a generic 500 instead of a dropped
// connection.
func recoverer(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.Error("handler panic", "method", r.Method, "path", r.URL.Path, "panic", v)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, recoverer(s.logger, securityHeaders(s.mux))).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}

// displayName renders an empty category name as a placeholder.
func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
