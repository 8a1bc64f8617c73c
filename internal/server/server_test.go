package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/designpro/designpro/internal/cache"
	"github.com/designpro/designpro/internal/usecase"
)

// stubService embeds Service so tests only implement the methods the
// route under test actually calls.
type stubService struct {
	Service

	health               func() map[string]string
	listTemplates        func(context.Context, usecase.ListTemplatesOption) ([]usecase.Template, int, error)
	getDesignByID        func(context.Context, uuid.UUID) (usecase.Design, error)
	createDesign         func(context.Context, usecase.Design) (usecase.Design, error)
	createUser           func(context.Context, usecase.User) (usecase.User, error)
	toggleDesignFavorite func(context.Context, uuid.UUID) (bool, error)
	exportDesign         func(context.Context, uuid.UUID, usecase.ExportOption) (usecase.ExportResult, error)
	deleteTemplate       func(context.Context, uuid.UUID) error
	updateDesign         func(context.Context, uuid.UUID, usecase.UpdateDesignOption) (usecase.Design, error)
}

func (s *stubService) Health() map[string]string { return s.health() }

func (s *stubService) ListTemplates(ctx context.Context, opt usecase.ListTemplatesOption) ([]usecase.Template, int, error) {
	return s.listTemplates(ctx, opt)
}

func (s *stubService) GetDesignByID(ctx context.Context, id uuid.UUID) (usecase.Design, error) {
	return s.getDesignByID(ctx, id)
}

func (s *stubService) CreateDesign(ctx context.Context, d usecase.Design) (usecase.Design, error) {
	return s.createDesign(ctx, d)
}

func (s *stubService) CreateUser(ctx context.Context, u usecase.User) (usecase.User, error) {
	return s.createUser(ctx, u)
}

func (s *stubService) ToggleDesignFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.toggleDesignFavorite(ctx, id)
}

func (s *stubService) ExportDesign(ctx context.Context, id uuid.UUID, opt usecase.ExportOption) (usecase.ExportResult, error) {
	return s.exportDesign(ctx, id, opt)
}

func (s *stubService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return s.deleteTemplate(ctx, id)
}

func (s *stubService) UpdateDesign(ctx context.Context, id uuid.UUID, opt usecase.UpdateDesignOption) (usecase.Design, error) {
	return s.updateDesign(ctx, id, opt)
}

func newTestServer(svc Service) http.Handler {
	s := &Server{
		server:    svc,
		validator: validator.New(),
		cache:     cache.New(nil),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return s.RegisterRoutes()
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthHandler(t *testing.T) {
	h := newTestServer(&stubService{
		health: func() map[string]string {
			return map[string]string{"status": "up"}
		},
	})

	rec := doJSON(t, h, http.MethodGet, "/api/health", "")
	if rec.Code != 200 {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["status"] != "up" {
		t.Errorf("health payload: %v", body)
	}
}

func TestListTemplatesEnvelope(t *testing.T) {
	h := newTestServer(&stubService{
		listTemplates: func(_ context.Context, opt usecase.ListTemplatesOption) ([]usecase.Template, int, error) {
			if opt.Limit != 50 {
				t.Errorf("default limit: got %d", opt.Limit)
			}
			return []usecase.Template{{
				ID:        uuid.New(),
				Name:      "Instagram Post",
				Category:  "social",
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}}, 12, nil
		},
	})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/templates", "")
	if rec.Code != 200 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}

	var res struct {
		Data []Template `json:"data"`
		Meta *Meta      `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(res.Data) != 1 || res.Data[0].Name != "Instagram Post" {
		t.Errorf("data: %+v", res.Data)
	}
	if res.Meta == nil || res.Meta.Total != 12 || res.Meta.Limit != 50 {
		t.Errorf("meta: %+v", res.Meta)
	}
	if res.Data[0].Tags == nil || res.Data[0].Elements == nil {
		t.Error("tags and elements must serialize as empty arrays, not null")
	}
}

func TestListTemplatesRejectsBadLimit(t *testing.T) {
	h := newTestServer(&stubService{})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/templates?limit=500", "")
	if rec.Code != 422 {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestListTemplatesSplitsCommaTags(t *testing.T) {
	var got []string
	h := newTestServer(&stubService{
		listTemplates: func(_ context.Context, opt usecase.ListTemplatesOption) ([]usecase.Template, int, error) {
			got = opt.Tags
			return nil, 0, nil
		},
	})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/templates?tags=minimal,%20dark&tags=retro", "")
	if rec.Code != 200 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}
	want := []string{"minimal", "dark", "retro"}
	if len(got) != len(want) {
		t.Fatalf("tags: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tags[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCreateDesignWithoutUser(t *testing.T) {
	h := newTestServer(&stubService{
		createDesign: func(_ context.Context, d usecase.Design) (usecase.Design, error) {
			if d.UserID != "" {
				t.Errorf("user id: got %q, want empty", d.UserID)
			}
			d.ID = uuid.New()
			return d, nil
		},
	})

	rec := doJSON(t, h, http.MethodPost, "/api/v1/designs",
		`{"name":"Poster","dimensions":{"width":800,"height":600}}`)
	if rec.Code != 201 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}
}

func TestGetDesignFillsElementDefaults(t *testing.T) {
	id := uuid.New()
	h := newTestServer(&stubService{
		getDesignByID: func(context.Context, uuid.UUID) (usecase.Design, error) {
			return usecase.Design{
				ID:       id,
				Name:     "Bare",
				Elements: []usecase.Element{{ID: "el-1", Kind: "text", X: 10, Y: 20}},
			}, nil
		},
	})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/designs/"+id.String(), "")
	if rec.Code != 200 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}

	var res struct {
		Data Design `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(res.Data.Elements) != 1 {
		t.Fatalf("elements: %+v", res.Data.Elements)
	}
	el := res.Data.Elements[0]
	if el.Opacity == nil || *el.Opacity != 1 {
		t.Errorf("opacity: %v", el.Opacity)
	}
	if el.Rotation == nil || *el.Rotation != 0 {
		t.Errorf("rotation: %v", el.Rotation)
	}
	if el.ZIndex == nil || *el.ZIndex != 0 {
		t.Errorf("zIndex: %v", el.ZIndex)
	}
	if el.Visible == nil || !*el.Visible {
		t.Errorf("visible: %v", el.Visible)
	}
}

func TestGetDesignStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", usecase.ErrNotFound, 404},
		{"store down", usecase.ErrUnavailable, 503},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestServer(&stubService{
				getDesignByID: func(context.Context, uuid.UUID) (usecase.Design, error) {
					return usecase.Design{}, tc.err
				},
			})

			rec := doJSON(t, h, http.MethodGet, "/api/v1/designs/"+uuid.NewString(), "")
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestGetDesignRejectsMalformedID(t *testing.T) {
	h := newTestServer(&stubService{})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/designs/not-a-uuid", "")
	if rec.Code != 422 {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCreateUserConflict(t *testing.T) {
	h := newTestServer(&stubService{
		createUser: func(context.Context, usecase.User) (usecase.User, error) {
			return usecase.User{}, usecase.ErrConflict
		},
	})

	rec := doJSON(t, h, http.MethodPost, "/api/v1/users",
		`{"name":"Mina","email":"mina@example.com"}`)
	if rec.Code != 409 {
		t.Fatalf("expected 409, got %d, body %s", rec.Code, rec.Body)
	}
}

func TestCreateUserValidation(t *testing.T) {
	h := newTestServer(&stubService{})

	rec := doJSON(t, h, http.MethodPost, "/api/v1/users",
		`{"name":"Mina","email":"not-an-email"}`)
	if rec.Code != 422 {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestToggleDesignFavorite(t *testing.T) {
	id := uuid.New()
	h := newTestServer(&stubService{
		toggleDesignFavorite: func(_ context.Context, got uuid.UUID) (bool, error) {
			if got != id {
				t.Errorf("toggled %s, want %s", got, id)
			}
			return true, nil
		},
	})

	rec := doJSON(t, h, http.MethodPatch, "/api/v1/designs/"+id.String()+"/favorite", "")
	if rec.Code != 200 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}

	var res struct {
		Data ToggleDesignFavoriteResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("body: %v", err)
	}
	if res.Data.ID != id.String() || !res.Data.IsFavorite {
		t.Errorf("result: %+v", res.Data)
	}
}

func TestUpdateDesignPassesOnlyProvidedFields(t *testing.T) {
	id := uuid.New()
	h := newTestServer(&stubService{
		updateDesign: func(_ context.Context, _ uuid.UUID, opt usecase.UpdateDesignOption) (usecase.Design, error) {
			if opt.Name == nil || *opt.Name != "Renamed" {
				t.Errorf("name: %v", opt.Name)
			}
			if opt.Description != nil || opt.Tags != nil || opt.Elements != nil {
				t.Error("absent fields must stay nil")
			}
			return usecase.Design{ID: id, Name: *opt.Name}, nil
		},
	})

	rec := doJSON(t, h, http.MethodPut, "/api/v1/designs/"+id.String(),
		`{"name":"Renamed"}`)
	if rec.Code != 200 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}
}

func TestExportDesignAttachment(t *testing.T) {
	id := uuid.New()
	h := newTestServer(&stubService{
		exportDesign: func(_ context.Context, _ uuid.UUID, opt usecase.ExportOption) (usecase.ExportResult, error) {
			if opt.Format != "png" || opt.Quality != 90 {
				t.Errorf("defaults not applied: %+v", opt)
			}
			return usecase.ExportResult{
				Data:        []byte{1, 2, 3},
				ContentType: "image/png",
				Filename:    "design_" + id.String() + ".png",
			}, nil
		},
	})

	rec := doJSON(t, h, http.MethodPost, "/api/v1/export/design/"+id.String(), "{}")
	if rec.Code != 200 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content disposition: %q", cd)
	}
}

func TestDeleteTemplateNotFound(t *testing.T) {
	h := newTestServer(&stubService{
		deleteTemplate: func(context.Context, uuid.UUID) error {
			return usecase.ErrNotFound
		},
	})

	rec := doJSON(t, h, http.MethodDelete, "/api/v1/templates/"+uuid.NewString(), "")
	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetUploadInfo(t *testing.T) {
	h := newTestServer(&stubService{})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/upload/info", "")
	if rec.Code != 200 {
		t.Fatalf("status: got %d", rec.Code)
	}

	var res struct {
		Data UploadInfo `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("body: %v", err)
	}
	if res.Data.MaxFileSize != usecase.MaxUploadSize {
		t.Errorf("max file size: %d", res.Data.MaxFileSize)
	}
	if len(res.Data.AllowedExtensions) == 0 {
		t.Error("allowed extensions missing")
	}
}

func TestExportFormatsRoute(t *testing.T) {
	h := newTestServer(&stubService{})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/export/formats", "")
	if rec.Code != 200 {
		t.Fatalf("status: got %d", rec.Code)
	}
	var res struct {
		Data []ExportFormat `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(res.Data) != 3 {
		t.Errorf("expected 3 formats, got %d", len(res.Data))
	}
}
