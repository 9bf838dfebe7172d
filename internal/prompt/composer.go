package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"image-story-web/internal/domain"
)

// DescribeInstruction は画像解説用の固定プロンプトです。
const DescribeInstruction = "Describe this image in detail. Mention key objects, setting, actions, " +
	"colors, emotions, and any visible text. Be precise but readable."

// defaultUserPrompt 自由入力が空だった場合の補完指示
const defaultUserPrompt = "Let the image itself guide the subject and mood."

// スタイルガイド群。キーの文字列 (tone/length/type 名) は合成結果に
// そのまま埋め込まれ、利用者が選んだ値が最終ペイロードで追跡できるようにします。
var toneGuide = map[domain.Tone]string{
	domain.ToneNeutral:  "Write in a clear, neutral tone.",
	domain.ToneAcademic: "Write in an academic, structured tone.",
	domain.TonePlayful:  "Write in a light, playful tone.",
	domain.TonePoetic:   "Write in a poetic and reflective tone.",
}

var lengthGuide = map[domain.Length]string{
	domain.LengthShort:  "Keep it concise (about 150-250 words).",
	domain.LengthMedium: "Moderate length (about 300-500 words).",
	domain.LengthLong:   "More detailed (about 600-900 words).",
}

var contentGuide = map[domain.ContentType]string{
	domain.ContentDescription: "Write an evocative long-form description that walks the reader through the scene.",
	domain.ContentStory:       "Write a narrative story with a beginning, middle, and end.",
	domain.ContentBlog:        "Write a blog-style piece with a hook, clear structure, and a takeaway.",
}

// creativeTemplate は創作テキスト用の固定指示テンプレートです。
var creativeTemplate = template.Must(template.New("creative").Parse(
	`You are given an image and a user prompt.
Task:
1) Use the image as inspiration.
2) Follow the user prompt closely.
3) {{.Form}}
4) {{.Style}}
5) {{.Size}}
6) Requested style: tone "{{.Tone}}", length "{{.Length}}", type "{{.ContentType}}".
Output only the final text.

User prompt:
{{.UserPrompt}}`))

// Payload は外部プロバイダへ送る単一のリクエストです。
type Payload struct {
	// Instruction は合成済みのテキスト指示です。
	Instruction string
	// ImageData / ImageMIMEType はインライン添付する画像です。
	ImageData     []byte
	ImageMIMEType string
}

// Compose は GenerationRequest から画像解説用と創作用の 2 つのペイロードを
// 合成します。画像が無い場合は domain.ErrMissingImage を返します。
func Compose(req domain.GenerationRequest) (describe Payload, creative Payload, err error) {
	if len(req.ImageData) == 0 {
		return Payload{}, Payload{}, domain.ErrMissingImage
	}

	userPrompt := strings.TrimSpace(req.Prompt)
	if userPrompt == "" {
		userPrompt = defaultUserPrompt
	}

	data := struct {
		Form, Style, Size                     string
		Tone, Length, ContentType, UserPrompt string
	}{
		Form:        guideFor(contentGuide, req.ContentType, domain.DefaultContentType),
		Style:       guideFor(toneGuide, req.Tone, domain.DefaultTone),
		Size:        guideFor(lengthGuide, req.Length, domain.DefaultLength),
		Tone:        string(domain.ParseTone(string(req.Tone))),
		Length:      string(domain.ParseLength(string(req.Length))),
		ContentType: string(domain.ParseContentType(string(req.ContentType))),
		UserPrompt:  userPrompt,
	}

	var sb strings.Builder
	if err := creativeTemplate.Execute(&sb, data); err != nil {
		return Payload{}, Payload{}, fmt.Errorf("創作プロンプトの合成に失敗しました: %w", err)
	}

	describe = Payload{
		Instruction:   DescribeInstruction,
		ImageData:     req.ImageData,
		ImageMIMEType: req.ImageMIMEType,
	}
	creative = Payload{
		Instruction:   sb.String(),
		ImageData:     req.ImageData,
		ImageMIMEType: req.ImageMIMEType,
	}
	return describe, creative, nil
}

// guideFor は未知のキーをデフォルトへ丸めてガイド文を引きます。
func guideFor[K comparable](guides map[K]string, key, fallback K) string {
	if g, ok := guides[key]; ok {
		return g
	}
	return guides[fallback]
}
