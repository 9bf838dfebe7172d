package handlers

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/gorilla/sessions"

	"image-story-web/internal/config"
	"image-story-web/internal/domain"
	"image-story-web/internal/history"
)

const titleSuffix = " - Image Story Web"

// GenerationExecutor は 1 回の送信に対する生成フローの実行を抽象化します。
type GenerationExecutor interface {
	Execute(ctx context.Context, sessionID string, req domain.GenerationRequest) (*domain.GenerationResult, error)
}

type Handler struct {
	cfg           *config.Config
	templateCache map[string]*template.Template
	sessions      sessions.Store
	historyStore  *history.Store
	executor      GenerationExecutor
}

// NewHandler は指定された構成に基づいて新しいハンドラーを初期化します。
// テンプレートをコンパイルし、レイアウトファイルが存在することを確認します。
func NewHandler(
	cfg *config.Config,
	sessionStore sessions.Store,
	historyStore *history.Store,
	executor GenerationExecutor,
) (*Handler, error) {
	cache := make(map[string]*template.Template)
	layoutPath := filepath.Join(cfg.TemplateDir, "layout.html")
	if _, err := os.Stat(layoutPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("レイアウトテンプレートが見つかりません: %s", layoutPath)
	}

	pagePaths, err := filepath.Glob(filepath.Join(cfg.TemplateDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("ページテンプレートの検索に失敗しました: %w", err)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}

	for _, pagePath := range pagePaths {
		pageName := filepath.Base(pagePath)
		if pageName == "layout.html" {
			continue
		}

		tmpl := template.New(pageName).Funcs(funcMap)
		tmpl, err = tmpl.ParseFiles(layoutPath, pagePath)
		if err != nil {
			return nil, fmt.Errorf("テンプレート %s の解析に失敗しました: %w", pageName, err)
		}
		cache[pageName] = tmpl
	}

	return &Handler{
		cfg:           cfg,
		templateCache: cache,
		sessions:      sessionStore,
		historyStore:  historyStore,
		executor:      executor,
	}, nil
}
