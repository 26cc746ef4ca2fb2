package main

import (
	"fmt"
	"net/http"

	"github.com/aimentor/mentor-go/internal/account"
	"github.com/aimentor/mentor-go/internal/config"
	"github.com/aimentor/mentor-go/internal/llm"
	"github.com/aimentor/mentor-go/internal/logger"
	"github.com/aimentor/mentor-go/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		return
	}
	logger.SetLevel(cfg.Log.Level)

	accounts := account.Open(cfg.Storage.Path, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	defer accounts.Close()

	llmClient := llm.NewClient(cfg.LLM)

	srv := server.New(accounts, llmClient, cfg.Auth.RequireToken)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting server", "address", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.L.Error("failed to start server", "error", err)
	}
}
