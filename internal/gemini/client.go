package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"image-story-web/internal/domain"
)

// truncationNote MAX_TOKENS で途切れた応答に付記する注意書き
const truncationNote = "\n\n[Note: Response was truncated due to length limit]"

// defaultSafetySettings は 4 つの有害カテゴリを中程度以上でブロックします。
var defaultSafetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// Config は Gemini クライアントの初期化設定です。
type Config struct {
	APIKey string
	Model  string
	// Timeout は 1 リクエストあたりの HTTP タイムアウトです。
	Timeout time.Duration
}

// GenerateOptions は 1 回の生成リクエストに適用するパラメータです。
type GenerateOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Client は google.golang.org/genai の薄いラッパーです。
// ストリーミングなし・リトライなしの単発同期呼び出しのみを提供します。
type Client struct {
	genaiClient *genai.Client
	model       string
}

// NewClient は Gemini API バックエンドのクライアントを初期化します。
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIキーが設定されていません")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("モデル名が設定されていません")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	genaiClient, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("genai クライアントの初期化に失敗しました: %w", err)
	}

	return &Client{genaiClient: genaiClient, model: cfg.Model}, nil
}

// GenerateFromImage はテキスト指示と画像 1 枚を送信し、生成テキストを返します。
// プロバイダ側のあらゆる失敗は *domain.ProviderError として返します。
func (c *Client) GenerateFromImage(ctx context.Context, instruction string, imageData []byte, mimeType string, opts GenerateOptions) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(instruction)}
	if len(imageData) > 0 {
		parts = append(parts, genai.NewPartFromBytes(imageData, mimeType))
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
		SafetySettings:  defaultSafetySettings,
	}

	resp, err := c.genaiClient.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		return "", domain.NewProviderError("generation request failed", err)
	}

	return parseResponse(resp)
}

// parseResponse は終端理由ごとに応答を解釈します。
//   - STOP: テキストをそのまま返す
//   - MAX_TOKENS: 取得できたテキストに途切れの注記を付けて返す
//   - SAFETY: セーフティ評価の内訳を添えて ProviderError
//   - それ以外・候補なし: ProviderError
func parseResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", domain.NewProviderError("no response generated, the content may have been blocked by safety filters", nil)
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonStop, "":
		text := resp.Text()
		if text == "" {
			return "", domain.NewProviderError("response contained no text", nil)
		}
		return text, nil

	case genai.FinishReasonMaxTokens:
		text := resp.Text()
		if text == "" {
			return "", domain.NewProviderError("response exceeded maximum length and could not be retrieved", nil)
		}
		return text + truncationNote, nil

	case genai.FinishReasonSafety:
		return "", domain.NewProviderError(
			"content blocked by safety filters\n"+formatSafetyRatings(candidate.SafetyRatings), nil)

	default:
		return "", domain.NewProviderError(
			fmt.Sprintf("generation stopped, reason: %s", candidate.FinishReason), nil)
	}
}

// formatSafetyRatings はブロック理由の内訳を 1 行ずつ列挙します。
func formatSafetyRatings(ratings []*genai.SafetyRating) string {
	if len(ratings) == 0 {
		return "(no safety ratings reported)"
	}
	lines := make([]string, 0, len(ratings))
	for _, r := range ratings {
		lines = append(lines, fmt.Sprintf("- %s: %s", r.Category, r.Probability))
	}
	return strings.Join(lines, "\n")
}
