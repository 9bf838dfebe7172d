package config

import (
	"fmt"
	"os"
	"time"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration は time.ParseDuration 形式の環境変数を読み取ります。
// 解析できない値はフォールバックに丸めます。
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
func ValidateEssentialConfig(cfg *Config) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("configuration error: GEMINI_API_KEY is not set")
	}

	if cfg.Port == "" {
		return fmt.Errorf("configuration error: PORT must not be empty")
	}

	if cfg.HistoryTTL <= 0 {
		return fmt.Errorf("configuration error: HISTORY_TTL must be positive")
	}

	return nil
}
