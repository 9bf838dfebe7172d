package handlers

import (
	"log/slog"
	"net/http"

	"image-story-web/internal/history"
)

// ExportHistory は現在のセッション履歴を CSV としてダウンロードさせます。
// 履歴が空でもヘッダー行のみの CSV を返します。
func (h *Handler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	records := h.historyStore.Records(sid)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+history.ExportFileName+`"`)

	if err := history.WriteCSV(w, records); err != nil {
		// ヘッダー送信後はステータスを変更できないため、ログのみ残します。
		slog.ErrorContext(r.Context(), "履歴CSVの書き出しに失敗しました", "error", err)
	}
}

// ClearHistory は現在のセッション履歴を破棄し、フォームへ戻します。
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	h.historyStore.Clear(sid)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
