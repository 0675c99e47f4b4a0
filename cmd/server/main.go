package main

import (
	"kanban-board-api/internal/auth"
	"kanban-board-api/internal/config"
	"kanban-board-api/internal/database"
	"kanban-board-api/internal/logging"
	"kanban-board-api/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logging.Init(cfg)
	auth.Configure(cfg)

	if err := database.InitDB(cfg); err != nil {
		logging.Logger.WithError(err).Fatal("failed to initialize database")
	}

	ginRoutes := routes.SetupRoutes(database.GetDB())

	logging.Logger.WithField("addr", cfg.ListenAddr).Info("server starting")
	if err := ginRoutes.Run(cfg.ListenAddr); err != nil {
		logging.Logger.WithError(err).Fatal("failed to start server")
	}
}
