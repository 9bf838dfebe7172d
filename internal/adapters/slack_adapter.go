package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"image-story-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
	"github.com/shouni/go-notifier/pkg/slack"
)

// --- インターフェース定義 ---

type SlackNotifier interface {
	Notify(ctx context.Context, req domain.NotificationRequest) error
	NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	httpClient  httpkit.ClientInterface
	webhookURL  string
	slackClient *slack.Client
}

// NewSlackAdapter は通知クライアントを初期化します。webhookURL が空の場合は
// 通知を全てスキップする無効状態のアダプターを返します。
func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{webhookURL: webhookURL}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("Slackクライアントの初期化に失敗したのだ: %w", err)
	}

	return &SlackAdapter{
		httpClient:  httpClient,
		webhookURL:  webhookURL,
		slackClient: client,
	}, nil
}

// Notify 生成完了時のSlack通知送信。
func (a *SlackAdapter) Notify(ctx context.Context, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、通知をスキップします。", "source_file", req.SourceFile)
		return nil
	}

	// 形式に応じた絵文字の出し分けをすると可愛いのだ！
	icon := "📖"
	if req.ContentType == string(domain.ContentBlog) {
		icon = "📝"
	} else if req.ContentType == string(domain.ContentDescription) {
		icon = "🖼️"
	}

	title := fmt.Sprintf("%s 画像からの文章生成が完了しました！", icon)
	content := a.buildSlackContent(req)

	if err := a.slackClient.SendTextWithHeader(ctx, title, content); err != nil {
		return fmt.Errorf("Slackへの投稿に失敗しました: %w", err)
	}

	slog.Info("Slack に完了通知を送信しました。", "source_file", req.SourceFile)
	return nil
}

// NotifyError エラー詳細と実行メタデータを含むSlackエラー通知の送信。
func (a *SlackAdapter) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、エラー通知をスキップします。", "error", errDetail)
		return nil
	}

	title := "❌ 生成中にエラーが発生しました"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*画像ファイル:* `%s`\n", req.SourceFile))
	sb.WriteString(fmt.Sprintf("*実行モード:* `%s`\n\n", req.ExecutionMode))

	// エラー詳細をコードブロックで囲むことで可読性を向上させます。
	sb.WriteString("*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.Info("Slack にエラー通知を送信しました。", "error", errDetail)
	return nil
}

// buildSlackContent 通知リクエストに基づき、Slack メッセージの内容を生成します。
func (a *SlackAdapter) buildSlackContent(req domain.NotificationRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**画像ファイル:** `%s`\n", req.SourceFile))
	sb.WriteString(fmt.Sprintf("**形式:** `%s`\n", req.ContentType))
	sb.WriteString(fmt.Sprintf("**実行モード:** `%s`\n", req.ExecutionMode))
	return sb.String()
}
