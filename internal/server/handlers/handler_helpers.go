package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"image-story-web/internal/domain"
)

const sessionName = "image-story-session"

// formData はフォームページ (index.html / result.html) に渡す共通データです。
type formData struct {
	Tones        []domain.Tone
	Lengths      []domain.Length
	ContentTypes []domain.ContentType
	History      []domain.GenerationResult

	// Warning は入力不備など、利用者の操作で解消できるメッセージです。
	Warning string
	// Error はプロバイダ障害などのインラインエラーメッセージです。
	Error string

	// Result は直前の生成結果です。result.html でのみ設定されます。
	Result *domain.GenerationResult
}

// render は HTML テンプレートをレンダリングし、レスポンスを書き込みます。
func (h *Handler) render(w http.ResponseWriter, status int, pageName string, title string, data any) {
	tmpl, ok := h.templateCache[pageName]
	if !ok {
		slog.Error("キャッシュ内にテンプレートが見つかりません", "page", pageName)
		http.Error(w, "システムエラーが発生しました（テンプレート未定義）", http.StatusInternalServerError)
		return
	}

	renderData := struct {
		Title string
		Data  any
	}{
		Title: title + titleSuffix,
		Data:  data,
	}

	var buf bytes.Buffer
	// レイアウトファイルをベースに実行します
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", renderData); err != nil {
		slog.Error("テンプレートのレンダリングに失敗しました", "page", pageName, "error", err)
		http.Error(w, "画面の表示中にエラーが発生しました", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", "error", err)
	}
}

// sessionID はリクエストのセッションIDを返します。セッションが未確立の
// 場合は新しいIDを発行してクッキーに保存します。
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	// 復号に失敗した場合もエラーではなく新規セッションとして扱います。
	sess, _ := h.sessions.Get(r, sessionName)

	if sid, ok := sess.Values["sid"].(string); ok && sid != "" {
		return sid
	}

	sid := uuid.NewString()
	sess.Values["sid"] = sid
	if err := sess.Save(r, w); err != nil {
		slog.WarnContext(r.Context(), "セッションクッキーの保存に失敗しました", "error", err)
	}
	return sid
}

// newFormData は選択肢と現在のセッション履歴を詰めた formData を返します。
func (h *Handler) newFormData(sessionID string) formData {
	return formData{
		Tones:        domain.Tones(),
		Lengths:      domain.Lengths(),
		ContentTypes: domain.ContentTypes(),
		History:      h.historyStore.Records(sessionID),
	}
}
