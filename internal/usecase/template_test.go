package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/designpro/designpro/internal/usecase"
)

func boolPtr(b bool) *bool { return &b }

func seedTemplate(t *testing.T, uc usecase.Usecase, tpl usecase.Template) usecase.Template {
	t.Helper()
	created, err := uc.CreateTemplate(context.Background(), tpl)
	if err != nil {
		t.Fatalf("seed template: %v", err)
	}
	return created
}

func TestCreateTemplateNormalizesElements(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	tpl := seedTemplate(t, uc, usecase.Template{
		Name:     "Instagram Post",
		Category: "social",
		Elements: []usecase.Element{
			{Kind: usecase.ElementKindText, ZIndex: intPtr(2)},
			{Kind: usecase.ElementKindBackground, ZIndex: intPtr(0)},
		},
	})

	if len(tpl.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(tpl.Elements))
	}
	for _, e := range tpl.Elements {
		if e.ID == "" {
			t.Error("element missing generated id")
		}
	}
	if *tpl.Elements[0].ZIndex != 0 {
		t.Error("elements should be ordered by zIndex")
	}
}

func TestListTemplatesFiltersCompose(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	seedTemplate(t, uc, usecase.Template{
		Name: "Summer Sale", Category: "social", Tags: []string{"sale", "summer"},
	})
	seedTemplate(t, uc, usecase.Template{
		Name: "Winter Sale", Category: "social", Tags: []string{"sale", "winter"}, IsPremium: true,
	})
	seedTemplate(t, uc, usecase.Template{
		Name: "Summer Banner", Category: "web", Tags: []string{"summer"},
	})

	// filters compose with AND, tags within the filter with OR
	list, total, err := uc.ListTemplates(context.Background(), usecase.ListTemplatesOption{
		Limit:    50,
		Category: "social",
		Tags:     []string{"summer", "winter"},
		Search:   "sale",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 matches, got total=%d len=%d", total, len(list))
	}

	premium := boolPtr(true)
	list, _, err = uc.ListTemplates(context.Background(), usecase.ListTemplatesOption{
		Limit:     50,
		Category:  "social",
		IsPremium: premium,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Winter Sale" {
		t.Fatalf("premium filter mismatch: %+v", list)
	}
}

func TestUpdateTemplateKeepsIdentity(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	tpl := seedTemplate(t, uc, usecase.Template{Name: "Old", Category: "social"})

	updated, err := uc.UpdateTemplate(context.Background(), usecase.Template{
		ID:       tpl.ID,
		Name:     "New",
		Category: "web",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != tpl.ID {
		t.Error("id changed on update")
	}
	if !updated.CreatedAt.Equal(tpl.CreatedAt) {
		t.Error("createdAt changed on update")
	}
	if updated.Name != "New" || updated.Category != "web" {
		t.Errorf("fields not replaced: %+v", updated)
	}
}

func TestDeleteTemplateNotFound(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	err := uc.DeleteTemplate(context.Background(), uuid.New())
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetTemplateStats(t *testing.T) {
	uc := usecase.New(newFakeRepo(), nil, nil, nil)

	seedTemplate(t, uc, usecase.Template{Name: "A", Category: "social"})
	seedTemplate(t, uc, usecase.Template{Name: "B", Category: "social", IsPremium: true})
	seedTemplate(t, uc, usecase.Template{Name: "C", Category: "web"})

	st, err := uc.GetTemplateStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if st.Total != 3 || st.Premium != 1 || st.Free != 2 {
		t.Errorf("counts: %+v", st)
	}
	if len(st.Categories) != 2 || st.Categories[0].Category != "social" {
		t.Errorf("categories should be ordered by count: %+v", st.Categories)
	}
}
