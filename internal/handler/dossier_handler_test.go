package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/leviproof/internal/dossier"
	"github.com/hitoshi/leviproof/internal/model"
)

// --- モック定義 ---

// mockDossierService はDossierServiceInterfaceのモック実装。
type mockDossierService struct {
	fetchFn func(ctx context.Context, dossierID string) (*dossier.Document, error)
}

func (m *mockDossierService) Fetch(ctx context.Context, dossierID string) (*dossier.Document, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, dossierID)
	}
	return nil, nil
}

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// --- GET /dossier/{dossierId} テスト ---

func TestDossierHandler_GetDossier_Success(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)

	svc := &mockDossierService{
		fetchFn: func(ctx context.Context, dossierID string) (*dossier.Document, error) {
			if dossierID != "demoXY9zP1q8" {
				t.Errorf("dossierID = %q, want %q", dossierID, "demoXY9zP1q8")
			}
			return &dossier.Document{
				Target: &model.Target{
					ID:            "target-id-1",
					Username:      "crypto_guru_ca",
					DossierID:     "demoXY9zP1q8",
					CreatedAt:     created,
					LastUpdatedAt: updated,
				},
				Stories: []*model.Story{
					{
						ID:           "story-1",
						StoryID:      "ig-3001",
						Timestamp:    updated,
						MediaType:    model.MediaTypeVideo,
						MediaURL:     "https://media.example.com/3001.mp4",
						Summary:      "Newest",
						FullAnalysis: "Analysis 3",
					},
					{
						ID:        "story-2",
						StoryID:   "ig-2001",
						Timestamp: updated.Add(-time.Hour),
						MediaType: model.MediaTypeImage,
						Summary:   "Older",
					},
				},
			}, nil
		},
	}

	h := NewDossierHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/dossier/demoXY9zP1q8", nil)
	req = withChiURLParam(req, "dossierId", "demoXY9zP1q8")
	w := httptest.NewRecorder()

	h.GetDossier(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var result struct {
		DossierID  string `json:"dossierId"`
		Username   string `json:"username"`
		StoryCount int    `json:"storyCount"`
		Stories    []struct {
			ID        string `json:"id"`
			MediaType string `json:"mediaType"`
			MediaURL  string `json:"mediaUrl"`
		} `json:"stories"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.DossierID != "demoXY9zP1q8" {
		t.Errorf("dossierId = %q, want %q", result.DossierID, "demoXY9zP1q8")
	}
	if result.Username != "crypto_guru_ca" {
		t.Errorf("username = %q, want %q", result.Username, "crypto_guru_ca")
	}
	if result.StoryCount != 2 {
		t.Errorf("storyCount = %d, want 2", result.StoryCount)
	}
	if len(result.Stories) != 2 {
		t.Fatalf("len(stories) = %d, want 2", len(result.Stories))
	}
	// サービスが返した順序（新しい順）が維持される
	if result.Stories[0].ID != "story-1" {
		t.Errorf("stories[0].id = %q, want story-1", result.Stories[0].ID)
	}
	if result.Stories[0].MediaType != "video" {
		t.Errorf("stories[0].mediaType = %q, want video", result.Stories[0].MediaType)
	}
}

// media_urlが空の場合はmediaUrlキー自体が省略されることを検証
func TestDossierHandler_GetDossier_EmptyMediaURLOmitted(t *testing.T) {
	svc := &mockDossierService{
		fetchFn: func(ctx context.Context, dossierID string) (*dossier.Document, error) {
			return &dossier.Document{
				Target: &model.Target{DossierID: dossierID, Username: "alice"},
				Stories: []*model.Story{
					{ID: "story-1", Timestamp: time.Now(), MediaType: model.MediaTypeImage},
				},
			}, nil
		},
	}

	h := NewDossierHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/dossier/demoXY9zP1q8", nil)
	req = withChiURLParam(req, "dossierId", "demoXY9zP1q8")
	w := httptest.NewRecorder()

	h.GetDossier(w, req)

	var raw map[string]any
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	stories := raw["stories"].([]any)
	story := stories[0].(map[string]any)
	if _, present := story["mediaUrl"]; present {
		t.Error("empty mediaUrl should be omitted from the response")
	}
}

func TestDossierHandler_GetDossier_ZeroStories(t *testing.T) {
	svc := &mockDossierService{
		fetchFn: func(ctx context.Context, dossierID string) (*dossier.Document, error) {
			return &dossier.Document{
				Target:  &model.Target{DossierID: dossierID, Username: "alice"},
				Stories: []*model.Story{},
			}, nil
		},
	}

	h := NewDossierHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/dossier/demoXY9zP1q8", nil)
	req = withChiURLParam(req, "dossierId", "demoXY9zP1q8")
	w := httptest.NewRecorder()

	h.GetDossier(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var raw map[string]any
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if raw["storyCount"] != float64(0) {
		t.Errorf("storyCount = %v, want 0", raw["storyCount"])
	}
	// 空でもstoriesは配列として存在する（nullではない）
	if _, ok := raw["stories"].([]any); !ok {
		t.Errorf("stories = %v, want empty array", raw["stories"])
	}
}

func TestDossierHandler_GetDossier_UnknownID_Returns404(t *testing.T) {
	svc := &mockDossierService{
		fetchFn: func(ctx context.Context, dossierID string) (*dossier.Document, error) {
			return nil, model.NewDossierNotFoundError()
		},
	}

	h := NewDossierHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/dossier/neverIssued1", nil)
	req = withChiURLParam(req, "dossierId", "neverIssued1")
	w := httptest.NewRecorder()

	h.GetDossier(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}

	result := parseAPIErrorResponse(t, w)
	if result["code"] != model.ErrCodeDossierNotFound {
		t.Errorf("code = %q, want %q", result["code"], model.ErrCodeDossierNotFound)
	}
}

// ストレージ障害は404ではなく500になることを検証
func TestDossierHandler_GetDossier_StorageError_Returns500(t *testing.T) {
	svc := &mockDossierService{
		fetchFn: func(ctx context.Context, dossierID string) (*dossier.Document, error) {
			return nil, errors.New("connection refused")
		},
	}

	h := NewDossierHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/dossier/demoXY9zP1q8", nil)
	req = withChiURLParam(req, "dossierId", "demoXY9zP1q8")
	w := httptest.NewRecorder()

	h.GetDossier(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
}
