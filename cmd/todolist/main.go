package main

import (
	"log"

	"github.com/vbonduro/todolist/internal/config"
	"github.com/vbonduro/todolist/internal/db"
	"github.com/vbonduro/todolist/internal/logging"
	"github.com/vbonduro/todolist/internal/service"
	"github.com/vbonduro/todolist/internal/store"
	"github.com/vbonduro/todolist/internal/web"
	"github.com/vbonduro/todolist/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile, cfg.LogMaxSizeMB)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	st, err := store.New(database, logger)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		return
	}

	todoService := service.NewTodoService(st.Categories, st.Items, logger)
	server := web.NewServer(todoService, templates.FS, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
