package domain

// NotificationRequest は Slack 等の通知コンポーネントで共有されるデータ構造です。
// 生成結果のメタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// SourceFile は、生成の元になった画像のファイル名です。
	SourceFile string `json:"source_file"`

	// ContentType は、生成した文章の形式です。(例: "story", "blog")
	ContentType string `json:"content_type"`

	// ExecutionMode は、実行されたスタイル指定です。(例: "poetic / short")
	ExecutionMode string `json:"execution_mode"`
}
