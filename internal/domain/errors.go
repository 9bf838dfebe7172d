package domain

import (
	"errors"
	"fmt"
)

// ErrMissingImage は画像なしで生成を要求されたことを表します。
// 利用者に再アップロードを促すメッセージとして表示され、履歴には影響しません。
var ErrMissingImage = errors.New("image is required")

// ProviderError は外部生成 AI サービス側の失敗を表します。
// ネットワーク障害・クォータ超過・無効なAPIキー・セーフティブロックなど、
// 原因を問わずプロセスは継続し、画面上のインラインエラーとして表示します。
type ProviderError struct {
	// Reason は利用者に提示できる短い説明です。
	Reason string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Reason, e.Err)
	}
	return "provider error: " + e.Reason
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError は原因エラーを包んだ ProviderError を返します。
func NewProviderError(reason string, err error) *ProviderError {
	return &ProviderError{Reason: reason, Err: err}
}
