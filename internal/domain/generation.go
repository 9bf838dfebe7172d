package domain

import (
	"strings"
	"time"
)

// Tone は生成テキストの文体を表します。
type Tone string

// Length は生成テキストのおおよその分量を表します。
type Length string

// ContentType は生成する文章の形式を表します。
type ContentType string

const (
	ToneNeutral  Tone = "neutral"
	ToneAcademic Tone = "academic"
	TonePlayful  Tone = "playful"
	TonePoetic   Tone = "poetic"

	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"

	ContentDescription ContentType = "description"
	ContentStory       ContentType = "story"
	ContentBlog        ContentType = "blog"
)

const (
	DefaultTone        = ToneNeutral
	DefaultLength      = LengthMedium
	DefaultContentType = ContentStory
)

// Tones はフォームの選択肢として提示する順序付きの一覧です。
func Tones() []Tone {
	return []Tone{ToneNeutral, ToneAcademic, TonePlayful, TonePoetic}
}

func Lengths() []Length {
	return []Length{LengthShort, LengthMedium, LengthLong}
}

func ContentTypes() []ContentType {
	return []ContentType{ContentDescription, ContentStory, ContentBlog}
}

// ParseTone は入力値を正規化します。未知の値はデフォルトに丸めます
// （バリデーションエラーにはせず、そのまま既定スタイルで生成を続行します）。
func ParseTone(s string) Tone {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case ToneNeutral, ToneAcademic, TonePlayful, TonePoetic:
		return Tone(strings.ToLower(strings.TrimSpace(s)))
	default:
		return DefaultTone
	}
}

func ParseLength(s string) Length {
	switch Length(strings.ToLower(strings.TrimSpace(s))) {
	case LengthShort, LengthMedium, LengthLong:
		return Length(strings.ToLower(strings.TrimSpace(s)))
	default:
		return DefaultLength
	}
}

func ParseContentType(s string) ContentType {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case ContentDescription, ContentStory, ContentBlog:
		return ContentType(strings.ToLower(strings.TrimSpace(s)))
	default:
		return DefaultContentType
	}
}

// GenerationRequest は 1 回のフォーム送信を表します。送信後は変更しません。
type GenerationRequest struct {
	// ImageData はアップロードされた画像のバイト列です。必須項目です。
	ImageData []byte
	// ImageMIMEType は ImageData のスニッフィング結果です。(例: "image/png")
	ImageMIMEType string
	// FileName はアップロード時の元ファイル名です。履歴表示にのみ使用します。
	FileName string

	Tone        Tone
	Length      Length
	ContentType ContentType
	// Prompt はユーザーの自由入力です。空の場合でも生成は続行します。
	Prompt string
}

// GenerationResult は 1 回の生成の成果です。履歴には追記のみ行います。
type GenerationResult struct {
	Timestamp   time.Time   `json:"timestamp"`
	FileName    string      `json:"filename"`
	Tone        Tone        `json:"tone"`
	Length      Length      `json:"length"`
	ContentType ContentType `json:"content_type"`
	Prompt      string      `json:"prompt"`
	// Description は画像の詳細解説テキストです。
	Description string `json:"image_description"`
	// GeneratedText は form/tone/length を反映した創作テキストです。
	GeneratedText string `json:"generated_text"`
}
