package builder

import (
	"context"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/shouni/go-http-kit/pkg/httpkit"

	"image-story-web/internal/adapters"
	"image-story-web/internal/config"
	"image-story-web/internal/gemini"
	"image-story-web/internal/history"
	"image-story-web/internal/pipeline"
)

// AppContext はアプリケーションの依存関係を保持します。
// 各フィールドをインターフェースで定義することで、将来的なモック利用を容易にします。
type AppContext struct {
	Config        *config.Config
	Generator     pipeline.TextGenerator
	History       *history.Store
	Sessions      sessions.Store
	Pipeline      *pipeline.GenerationPipeline
	HTTPClient    httpkit.ClientInterface
	SlackNotifier adapters.SlackNotifier
}

// BuildAppContext は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	// 2. 生成 AI クライアントの初期化
	generator, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: config.DefaultHTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	// 3. セッションと履歴ストアの初期化
	sessionStore := sessions.NewCookieStore(sessionKey(cfg))
	historyStore := history.NewStore(cfg.HistoryTTL)

	// 4. アダプターの初期化
	slack, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	return &AppContext{
		Config:        cfg,
		Generator:     generator,
		History:       historyStore,
		Sessions:      sessionStore,
		Pipeline:      pipeline.NewGenerationPipeline(generator, historyStore, slack),
		HTTPClient:    httpClient,
		SlackNotifier: slack,
	}, nil
}

// sessionKey は署名キーを返します。未設定の場合はランダム生成で代替します
// （プロセス再起動で既存セッションは無効になりますが、履歴自体が
// セッションスコープなので許容しています）。
func sessionKey(cfg *config.Config) []byte {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret)
	}
	return securecookie.GenerateRandomKey(32)
}
