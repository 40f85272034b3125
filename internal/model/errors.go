// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, not_found, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidUsername = "INVALID_USERNAME"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeDossierNotFound = "DOSSIER_NOT_FOUND"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// NewInvalidUsernameError は無効なユーザー名エラーを生成する。
// 正規化の結果が空になる入力（空文字、空白のみ、"@"のみ等）に対して返す。
func NewInvalidUsernameError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidUsername,
		Message:  "Username is missing or invalid.",
		Category: "validation",
		Action:   "Enter the account's username, for example @handle.",
	}
}

// NewInvalidRequestError はリクエストボディの解析に失敗した場合のエラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "The request body could not be parsed.",
		Category: "validation",
		Action:   "Send a JSON body of the form {\"username\": \"...\"}.",
	}
}

// NewDossierNotFoundError は未知のdossier IDに対するエラーを生成する。
// 発行済みIDの紛失と未発行IDとの区別はつかないため、メッセージは共通。
func NewDossierNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeDossierNotFound,
		Message:  "No dossier exists for this link.",
		Category: "not_found",
		Action:   "Check that the URL was copied completely. Lost dossier links cannot be recovered.",
	}
}

// NewInternalError は内部エラーの統一レスポンスを生成する。
// ストレージ障害の詳細はログにのみ記録し、呼び出し側には一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "An internal error occurred.",
		Category: "system",
		Action:   "Please wait a moment and try again.",
	}
}
