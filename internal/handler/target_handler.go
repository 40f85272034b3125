// Package handler はHTTP APIのハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/leviproof/internal/model"
)

// TargetServiceInterface はターゲットハンドラーが必要とするサービスインターフェース。
type TargetServiceInterface interface {
	// Register は生のユーザー名からターゲットを登録する（冪等）。
	Register(ctx context.Context, rawUsername string) (*model.Target, error)
}

// TargetHandler はターゲット登録のHTTPハンドラー。
type TargetHandler struct {
	service TargetServiceInterface
}

// NewTargetHandler はTargetHandlerを生成する。
func NewTargetHandler(service TargetServiceInterface) *TargetHandler {
	return &TargetHandler{service: service}
}

// registerTargetRequest はターゲット登録リクエストのボディ。
type registerTargetRequest struct {
	Username *string `json:"username"`
}

// registerTargetResponse はターゲット登録のAPIレスポンス。
// dossier IDは再発行も復元もできないため、呼び出し側で保存する必要がある。
type registerTargetResponse struct {
	DossierID string `json:"dossierId"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// RegisterTarget はターゲット登録を処理する。
// POST /targets
func (h *TargetHandler) RegisterTarget(w http.ResponseWriter, r *http.Request) {
	var req registerTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	// usernameキーの欠落はJSONとしては正しいため、デコードエラーとは別に検査する
	if req.Username == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidUsernameError())
		return
	}

	target, err := h.service.Register(r.Context(), *req.Username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(registerTargetResponse{
		DossierID: target.DossierID,
	})
}

// --- ヘルパー関数 ---

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーはストレージ障害等の内部エラーとして扱う。
	// 詳細はログのみに記録し、応答には一般的なメッセージを返す。
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidUsername, model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeDossierNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
