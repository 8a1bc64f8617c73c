package usecase_test

import (
	"errors"
	"testing"

	"github.com/designpro/designpro/internal/usecase"
)

func intPtr(n int) *int { return &n }

func TestNormalizeElementsAssignsIDs(t *testing.T) {
	out, err := usecase.NormalizeElements([]usecase.Element{
		{Kind: usecase.ElementKindText},
		{ID: "el-1", Kind: usecase.ElementKindShape},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ID == "" {
		t.Error("expected generated id for element without one")
	}
	if out[1].ID != "el-1" {
		t.Errorf("existing id should be kept, got %q", out[1].ID)
	}
}

func TestNormalizeElementsRejectsDuplicateIDs(t *testing.T) {
	_, err := usecase.NormalizeElements([]usecase.Element{
		{ID: "el-1", Kind: usecase.ElementKindText},
		{ID: "el-1", Kind: usecase.ElementKindShape},
	})
	var ve usecase.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "elements" {
		t.Errorf("expected field elements, got %q", ve.Field)
	}
}

func TestNormalizeElementsSortsByZIndex(t *testing.T) {
	out, err := usecase.NormalizeElements([]usecase.Element{
		{ID: "top", Kind: usecase.ElementKindText, ZIndex: intPtr(5)},
		{ID: "bottom", Kind: usecase.ElementKindBackground, ZIndex: intPtr(-1)},
		{ID: "mid-a", Kind: usecase.ElementKindShape},
		{ID: "mid-b", Kind: usecase.ElementKindShape, ZIndex: intPtr(0)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, 0, len(out))
	for _, e := range out {
		got = append(got, e.ID)
	}
	// ties at zIndex 0 keep their relative order
	want := []string{"bottom", "mid-a", "mid-b", "top"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestNormalizeElementsDoesNotMutateInput(t *testing.T) {
	in := []usecase.Element{
		{ID: "b", Kind: usecase.ElementKindText, ZIndex: intPtr(2)},
		{ID: "a", Kind: usecase.ElementKindText, ZIndex: intPtr(1)},
	}
	if _, err := usecase.NormalizeElements(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in[0].ID != "b" || in[1].ID != "a" {
		t.Error("input slice was reordered")
	}
}
