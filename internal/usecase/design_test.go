package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/designpro/designpro/internal/usecase"
)

func strPtr(s string) *string { return &s }

func seedDesign(t *testing.T, uc usecase.Usecase, d usecase.Design) usecase.Design {
	t.Helper()
	created, err := uc.CreateDesign(context.Background(), d)
	if err != nil {
		t.Fatalf("seed design: %v", err)
	}
	return created
}

func TestCreateDesignSetsTimestamps(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	d := seedDesign(t, uc, usecase.Design{Name: "Poster", UserID: "user_1"})

	if d.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if d.CreatedAt.IsZero() || !d.CreatedAt.Equal(d.UpdatedAt) {
		t.Errorf("createdAt and updatedAt should be set and equal, got %v / %v", d.CreatedAt, d.UpdatedAt)
	}
}

func TestDuplicateDesign(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	src := seedDesign(t, uc, usecase.Design{
		Name:   "Poster",
		UserID: "user_1",
		Tags:   []string{"summer"},
		Elements: []usecase.Element{
			{ID: "el-1", Kind: usecase.ElementKindText, Content: strPtr("hello")},
		},
	})

	dup, err := uc.DuplicateDesign(context.Background(), src.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	if dup.ID == src.ID {
		t.Error("duplicate must get a new id")
	}
	if dup.Name != "Copy of Poster" {
		t.Errorf("expected prefixed name, got %q", dup.Name)
	}
	if dup.CreatedAt.Before(src.CreatedAt) {
		t.Error("duplicate timestamps should be fresh")
	}

	// mutating the copy must not leak into the source
	dup.Tags[0] = "winter"
	got, err := uc.GetDesignByID(context.Background(), src.ID)
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if got.Tags[0] != "summer" {
		t.Error("duplicate shares tag storage with source")
	}
}

func TestDuplicateDesignNotFound(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	_, err := uc.DuplicateDesign(context.Background(), uuid.New())
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleDesignFavoriteIsInvolution(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	d := seedDesign(t, uc, usecase.Design{Name: "Poster", UserID: "user_1"})

	fav, err := uc.ToggleDesignFavorite(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !fav {
		t.Error("first toggle should set favorite")
	}

	fav, err = uc.ToggleDesignFavorite(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if fav {
		t.Error("second toggle should clear favorite")
	}
}

func TestUpdateDesignPatchKeepsOtherFields(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	d := seedDesign(t, uc, usecase.Design{
		Name:        "Poster",
		Description: "summer campaign",
		UserID:      "user_1",
		Tags:        []string{"summer"},
	})

	got, err := uc.UpdateDesign(context.Background(), d.ID, usecase.UpdateDesignOption{
		Name: strPtr("Poster v2"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if got.Name != "Poster v2" {
		t.Errorf("name not updated, got %q", got.Name)
	}
	if got.Description != "summer campaign" {
		t.Errorf("description should be untouched, got %q", got.Description)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "summer" {
		t.Errorf("tags should be untouched, got %v", got.Tags)
	}
}

func TestUpdateDesignRejectsDuplicateElementIDs(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	d := seedDesign(t, uc, usecase.Design{Name: "Poster", UserID: "user_1"})

	elements := []usecase.Element{
		{ID: "el-1", Kind: usecase.ElementKindText},
		{ID: "el-1", Kind: usecase.ElementKindShape},
	}
	_, err := uc.UpdateDesign(context.Background(), d.ID, usecase.UpdateDesignOption{
		Elements: &elements,
	})

	var ve usecase.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestListDesignsPaginationDoesNotOverlap(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	for i := 0; i < 5; i++ {
		seedDesign(t, uc, usecase.Design{Name: "Design " + strings.Repeat("x", i+1), UserID: "user_1"})
	}

	first, total, err := uc.ListDesigns(context.Background(), usecase.ListDesignsOption{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	second, _, err := uc.ListDesigns(context.Background(), usecase.ListDesignsOption{Skip: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	seen := make(map[uuid.UUID]struct{})
	for _, d := range append(first, second...) {
		if _, ok := seen[d.ID]; ok {
			t.Fatalf("design %s appeared on both pages", d.ID)
		}
		seen[d.ID] = struct{}{}
	}
}

func TestGetUserDesignStats(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	for i := 0; i < 7; i++ {
		d := seedDesign(t, uc, usecase.Design{Name: "Design", UserID: "user_1"})
		if i < 3 {
			if _, err := uc.ToggleDesignFavorite(context.Background(), d.ID); err != nil {
				t.Fatalf("toggle: %v", err)
			}
		}
	}
	seedDesign(t, uc, usecase.Design{Name: "Other", UserID: "user_2"})

	st, err := uc.GetUserDesignStats(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if st.Total != 7 {
		t.Errorf("expected 7 designs, got %d", st.Total)
	}
	if st.Favorites != 3 {
		t.Errorf("expected 3 favorites, got %d", st.Favorites)
	}
	if len(st.Recent) != 5 {
		t.Errorf("expected 5 recent designs, got %d", len(st.Recent))
	}
	for _, d := range st.Recent {
		if d.UserID != "user_1" {
			t.Errorf("recent design belongs to %q", d.UserID)
		}
	}
}
