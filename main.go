package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"image-story-web/internal/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// .env はローカル実行時のみ存在するため、読み込み失敗は無視します。
	// 必須値の検証は config.ValidateEssentialConfig が行います。
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration from .env file")
	}

	if err := server.Run(context.Background()); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}
