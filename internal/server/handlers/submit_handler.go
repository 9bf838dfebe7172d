package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"image-story-web/internal/domain"
)

// HandleSubmit は画像とプロンプト設定のフォーム送信を処理します。
// 成功時は生成結果ページを、失敗時は元のフォームをメッセージ付きで返します。
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		slog.WarnContext(r.Context(), "フォームの解析に失敗しました", "error", err)
		h.renderWarning(w, r, sid, http.StatusBadRequest, "Could not read the upload. The image may exceed the size limit.")
		return
	}

	req, err := h.buildRequest(r)
	if err != nil {
		if errors.Is(err, domain.ErrMissingImage) {
			h.renderWarning(w, r, sid, http.StatusBadRequest, "Please upload an image first.")
			return
		}
		slog.WarnContext(r.Context(), "アップロード画像を読み取れませんでした", "error", err)
		h.renderWarning(w, r, sid, http.StatusBadRequest, "Could not read the image. Try another file.")
		return
	}

	result, err := h.executor.Execute(r.Context(), sid, req)
	if err != nil {
		h.handleGenerationError(w, r, sid, err)
		return
	}

	data := h.newFormData(sid)
	data.Result = result
	h.render(w, http.StatusOK, "result.html", "Result", data)
}

// buildRequest はマルチパートフォームから GenerationRequest を組み立てます。
// 画像が欠けている場合は domain.ErrMissingImage を返します。
func (h *Handler) buildRequest(r *http.Request) (domain.GenerationRequest, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return domain.GenerationRequest{}, domain.ErrMissingImage
		}
		return domain.GenerationRequest{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.GenerationRequest{}, err
	}
	if len(data) == 0 {
		return domain.GenerationRequest{}, domain.ErrMissingImage
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.GenerationRequest{}, errors.New("uploaded file is not an image: " + mimeType)
	}

	return domain.GenerationRequest{
		ImageData:     data,
		ImageMIMEType: mimeType,
		FileName:      header.Filename,
		Tone:          domain.ParseTone(r.FormValue("tone")),
		Length:        domain.ParseLength(r.FormValue("length")),
		ContentType:   domain.ParseContentType(r.FormValue("content_type")),
		Prompt:        strings.TrimSpace(r.FormValue("prompt")),
	}, nil
}

// handleGenerationError は生成フローのエラーを利用者向け表示に変換します。
// どのエラーでもプロセスとセッションは継続し、履歴は変更されません。
func (h *Handler) handleGenerationError(w http.ResponseWriter, r *http.Request, sid string, err error) {
	if errors.Is(err, domain.ErrMissingImage) {
		h.renderWarning(w, r, sid, http.StatusBadRequest, "Please upload an image first.")
		return
	}

	var provErr *domain.ProviderError
	if errors.As(err, &provErr) {
		slog.ErrorContext(r.Context(), "プロバイダ呼び出しに失敗しました", "reason", provErr.Reason, "error", provErr.Err)
		data := h.newFormData(sid)
		data.Error = "Generation failed: " + provErr.Reason
		h.render(w, http.StatusBadGateway, "index.html", "Generate", data)
		return
	}

	slog.ErrorContext(r.Context(), "生成フローで予期しないエラーが発生しました", "error", err)
	data := h.newFormData(sid)
	data.Error = "An unexpected error occurred. Please try again."
	h.render(w, http.StatusInternalServerError, "index.html", "Generate", data)
}

func (h *Handler) renderWarning(w http.ResponseWriter, r *http.Request, sid string, status int, msg string) {
	data := h.newFormData(sid)
	data.Warning = msg
	h.render(w, status, "index.html", "Generate", data)
}
