package usecase

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Known element kinds. The field is an open string so documents written
// by a newer editor still load; unknown kinds pass through untouched.
const (
	ElementKindText       = "text"
	ElementKindShape      = "shape"
	ElementKindImage      = "image"
	ElementKindBackground = "background"
)

// Element is one positioned visual object on a canvas. Kind-specific
// fields are pointers and stay nil for the kinds they do not apply to.
type Element struct {
	ID   string
	Kind string

	X      float64
	Y      float64
	Width  *float64
	Height *float64

	Color           *string
	BackgroundColor *string
	Gradient        *string
	Opacity         *float64
	Rotation        *float64
	ZIndex          *int
	Visible         *bool

	// text
	Content    *string
	FontSize   *int
	FontFamily *string
	FontWeight *string

	// shape
	ShapeType   *string
	BorderColor *string
	BorderWidth *int

	// image
	ImageURL *string
	Filter   *string
}

func (e Element) zIndex() int {
	if e.ZIndex == nil {
		return 0
	}
	return *e.ZIndex
}

// Dimensions is the pixel size of a template or design canvas.
type Dimensions struct {
	Width  int
	Height int
}

// NormalizeElements prepares an element list for persistence: elements
// without an id get a generated one, duplicate ids are rejected, and the
// list is ordered by ascending zIndex with ties keeping insertion order.
func NormalizeElements(elements []Element) ([]Element, error) {
	out := make([]Element, len(elements))
	copy(out, elements)

	seen := make(map[string]struct{}, len(out))
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if _, ok := seen[out[i].ID]; ok {
			return nil, ValidationError{
				Field:  "elements",
				Reason: fmt.Sprintf("duplicate element id %q", out[i].ID),
			}
		}
		seen[out[i].ID] = struct{}{}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].zIndex() < out[j].zIndex()
	})

	return out, nil
}
