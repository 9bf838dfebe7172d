package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"image-story-web/internal/domain"
)

// ExportFileName CSV ダウンロード時のファイル名
const ExportFileName = "image_text_results.csv"

// csvHeader は GenerationResult のフィールドと 1:1 対応する列見出しです。
var csvHeader = []string{
	"timestamp",
	"filename",
	"tone",
	"length",
	"type",
	"prompt",
	"image_description",
	"generated_text",
}

// WriteCSV は履歴全件をヘッダー行 + 1 結果 1 行のフラットな CSV として
// 書き出します。フィルタリングや差分出力は行いません。
func WriteCSV(w io.Writer, records []domain.GenerationResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("CSVヘッダーの書き込みに失敗しました: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Timestamp.UTC().Format(time.RFC3339),
			r.FileName,
			string(r.Tone),
			string(r.Length),
			string(r.ContentType),
			r.Prompt,
			r.Description,
			r.GeneratedText,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("CSV行の書き込みに失敗しました: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
