package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"image-story-web/internal/adapters"
	"image-story-web/internal/config"
	"image-story-web/internal/domain"
	"image-story-web/internal/gemini"
	"image-story-web/internal/history"
	"image-story-web/internal/prompt"
)

// TextGenerator は外部プロバイダへの単発同期呼び出しを抽象化します。
type TextGenerator interface {
	GenerateFromImage(ctx context.Context, instruction string, imageData []byte, mimeType string, opts gemini.GenerateOptions) (string, error)
}

// GenerationPipeline は 1 回の送信に対する生成フロー全体
// （プロンプト合成 → 画像解説 → 創作テキスト → 履歴追記 → 通知）を実行します。
type GenerationPipeline struct {
	generator TextGenerator
	store     *history.Store
	notifier  adapters.SlackNotifier
}

func NewGenerationPipeline(generator TextGenerator, store *history.Store, notifier adapters.SlackNotifier) *GenerationPipeline {
	return &GenerationPipeline{
		generator: generator,
		store:     store,
		notifier:  notifier,
	}
}

// Execute は生成フローを同期的に実行し、成功時に履歴へちょうど 1 件追記します。
// 失敗時は履歴を変更せず、入力エラーかプロバイダエラーをそのまま返します。
func (p *GenerationPipeline) Execute(ctx context.Context, sessionID string, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	describe, creative, err := prompt.Compose(req)
	if err != nil {
		// 入力不備は利用者へ差し戻すだけで、通知は行いません。
		return nil, err
	}

	slog.InfoContext(ctx, "Generation started",
		"file", req.FileName,
		"tone", req.Tone,
		"length", req.Length,
		"content_type", req.ContentType,
	)

	description, err := p.runStep(ctx, req, describe, gemini.GenerateOptions{
		Temperature:     config.DescribeTemperature,
		MaxOutputTokens: config.DescribeMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("image description step failed: %w", err)
	}

	generated, err := p.runStep(ctx, req, creative, gemini.GenerateOptions{
		Temperature:     config.CreativeTemperature,
		MaxOutputTokens: config.CreativeMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("creative text step failed: %w", err)
	}

	result := domain.GenerationResult{
		Timestamp:     time.Now().UTC(),
		FileName:      req.FileName,
		Tone:          req.Tone,
		Length:        req.Length,
		ContentType:   req.ContentType,
		Prompt:        req.Prompt,
		Description:   description,
		GeneratedText: generated,
	}
	p.store.Append(sessionID, result)

	if notifyErr := p.notifier.Notify(ctx, p.buildNotification(req)); notifyErr != nil {
		// 通知処理自体の失敗は、生成の成否には影響させません。
		slog.ErrorContext(ctx, "Notification failed", "error", notifyErr)
	}

	return &result, nil
}

// runStep は 1 つのペイロードをプロバイダへ送信します。
// プロバイダ失敗はエラー通知を送ったうえで呼び出し元へ返します。
func (p *GenerationPipeline) runStep(ctx context.Context, req domain.GenerationRequest, payload prompt.Payload, opts gemini.GenerateOptions) (string, error) {
	text, err := p.generator.GenerateFromImage(ctx, payload.Instruction, payload.ImageData, payload.ImageMIMEType, opts)
	if err != nil {
		p.notifyError(ctx, req, err)
		return "", err
	}
	return text, nil
}

func (p *GenerationPipeline) buildNotification(req domain.GenerationRequest) domain.NotificationRequest {
	return domain.NotificationRequest{
		SourceFile:    req.FileName,
		ContentType:   string(req.ContentType),
		ExecutionMode: fmt.Sprintf("%s / %s", req.Tone, req.Length),
	}
}

func (p *GenerationPipeline) notifyError(ctx context.Context, req domain.GenerationRequest, opErr error) {
	if err := p.notifier.NotifyError(ctx, opErr, p.buildNotification(req)); err != nil {
		slog.ErrorContext(ctx, "Failed to send error notification", "error", err)
	}
}
