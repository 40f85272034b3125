package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/leviproof/internal/dossier"
	"github.com/hitoshi/leviproof/internal/model"
)

// DossierServiceInterface はdossierハンドラーが必要とするサービスインターフェース。
type DossierServiceInterface interface {
	// Fetch はdossier IDからドキュメントを構築する。
	Fetch(ctx context.Context, dossierID string) (*dossier.Document, error)
}

// DossierHandler はdossier閲覧のHTTPハンドラー。
type DossierHandler struct {
	service DossierServiceInterface
}

// NewDossierHandler はDossierHandlerを生成する。
func NewDossierHandler(service DossierServiceInterface) *DossierHandler {
	return &DossierHandler{service: service}
}

// storyResponse はストーリー1件のAPIレスポンス。
type storyResponse struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	MediaType    string    `json:"mediaType"`
	MediaURL     string    `json:"mediaUrl,omitempty"`
	Summary      string    `json:"summary"`
	FullAnalysis string    `json:"fullAnalysis"`
}

// dossierResponse はdossierのAPIレスポンス。
type dossierResponse struct {
	DossierID     string          `json:"dossierId"`
	Username      string          `json:"username"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	StoryCount    int             `json:"storyCount"`
	Stories       []storyResponse `json:"stories"`
}

// GetDossier はdossier閲覧を処理する。
// GET /dossier/{dossierId}
func (h *DossierHandler) GetDossier(w http.ResponseWriter, r *http.Request) {
	dossierID := chi.URLParam(r, "dossierId")
	if dossierID == "" {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewDossierNotFoundError())
		return
	}

	doc, err := h.service.Fetch(r.Context(), dossierID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDossierResponse(doc))
}

// toDossierResponse はdossier.DocumentからAPIレスポンスに変換する。
func toDossierResponse(doc *dossier.Document) dossierResponse {
	stories := make([]storyResponse, 0, len(doc.Stories))
	for _, story := range doc.Stories {
		stories = append(stories, storyResponse{
			ID:           story.ID,
			Timestamp:    story.Timestamp,
			MediaType:    string(story.MediaType),
			MediaURL:     story.MediaURL,
			Summary:      story.Summary,
			FullAnalysis: story.FullAnalysis,
		})
	}

	return dossierResponse{
		DossierID:     doc.Target.DossierID,
		Username:      doc.Target.Username,
		CreatedAt:     doc.Target.CreatedAt,
		LastUpdatedAt: doc.Target.LastUpdatedAt,
		StoryCount:    doc.StoryCount(),
		Stories:       stories,
	}
}
