package config

import (
	"os"
	"path"
	"time"
)

const (
	// DefaultModel 画像理解とテキスト生成の両方を担うマルチモーダルモデル
	DefaultModel = "gemini-flash-latest"

	// DescribeTemperature 画像解説は事実ベースに寄せるため低めに設定
	DescribeTemperature = float32(0.2)
	// CreativeTemperature 創作テキストはばらつきを許容
	CreativeTemperature = float32(0.7)

	DescribeMaxTokens = int32(800)
	CreativeMaxTokens = int32(1500)

	// DefaultHTTPTimeout Gemini API の応答を考慮したタイムアウト
	DefaultHTTPTimeout = 60 * time.Second

	// DefaultHistoryTTL 放置されたセッション履歴を破棄するまでの時間
	DefaultHistoryTTL = 12 * time.Hour

	// DefaultMaxUploadBytes アップロード画像の上限 (10MiB)
	DefaultMaxUploadBytes = int64(10 << 20)
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	Port            string
	GeminiAPIKey    string
	GeminiModel     string // 画像解説・創作テキスト生成用モデル
	SlackWebhookURL string
	TemplateDir     string // HTMLテンプレートの格納ディレクトリ
	MaxUploadBytes  int64
	HistoryTTL      time.Duration
	ShutdownTimeout time.Duration

	// SessionSecret はセッションクッキーのHMAC署名用シークレットキーです。
	// 未設定の場合は起動時にランダム生成します（再起動で履歴は失効します）。
	SessionSecret string
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	// 実行環境（Cloud Run, ko）に応じたパスの解決
	baseDir := "."
	if os.Getenv("KO_DATA_PATH") != "" || os.Getenv("K_SERVICE") != "" {
		baseDir = "/app"
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", DefaultModel),
		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		TemplateDir:     path.Join(baseDir, "templates"),
		MaxUploadBytes:  DefaultMaxUploadBytes,
		HistoryTTL:      getEnvDuration("HISTORY_TTL", DefaultHistoryTTL),
		ShutdownTimeout: 15 * time.Second,
		SessionSecret:   getEnv("SESSION_SECRET", ""),
	}
}
