package server

import (
	"strings"

	"github.com/designpro/designpro/internal/usecase"
)

// splitTags flattens bound tag query values into individual tags. The
// filter accepts one comma-separated value (`?tags=a,b`) as well as a
// repeated parameter; blanks are dropped.
func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// Element is the wire form of a canvas element. Keys are camelCase to
// match the editor's document format.
type Element struct {
	ID   string  `json:"id,omitempty"`
	Type string  `json:"type" validate:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`

	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	Color           *string  `json:"color,omitempty"`
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
	Gradient        *string  `json:"gradient,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty"`
	Rotation        *float64 `json:"rotation,omitempty"`
	ZIndex          *int     `json:"zIndex,omitempty"`
	Visible         *bool    `json:"visible,omitempty"`

	Content    *string `json:"content,omitempty"`
	FontSize   *int    `json:"fontSize,omitempty"`
	FontFamily *string `json:"fontFamily,omitempty"`
	FontWeight *string `json:"fontWeight,omitempty"`

	ShapeType   *string `json:"shapeType,omitempty"`
	BorderColor *string `json:"borderColor,omitempty"`
	BorderWidth *int    `json:"borderWidth,omitempty"`

	ImageURL *string `json:"imageUrl,omitempty"`
	Filter   *string `json:"filter,omitempty"`
}

type Dimensions struct {
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}

func toUsecaseElements(list []Element) []usecase.Element {
	elements := make([]usecase.Element, 0, len(list))
	for _, e := range list {
		elements = append(elements, usecase.Element{
			ID:              e.ID,
			Kind:            e.Type,
			X:               e.X,
			Y:               e.Y,
			Width:           e.Width,
			Height:          e.Height,
			Color:           e.Color,
			BackgroundColor: e.BackgroundColor,
			Gradient:        e.Gradient,
			Opacity:         e.Opacity,
			Rotation:        e.Rotation,
			ZIndex:          e.ZIndex,
			Visible:         e.Visible,
			Content:         e.Content,
			FontSize:        e.FontSize,
			FontFamily:      e.FontFamily,
			FontWeight:      e.FontWeight,
			ShapeType:       e.ShapeType,
			BorderColor:     e.BorderColor,
			BorderWidth:     e.BorderWidth,
			ImageURL:        e.ImageURL,
			Filter:          e.Filter,
		})
	}
	return elements
}

// fromUsecaseElements converts stored elements to their wire form.
// Presentation defaults are materialized so clients always see opacity,
// rotation, zIndex and visible even when the document omits them.
func fromUsecaseElements(list []usecase.Element) []Element {
	elements := make([]Element, 0, len(list))
	for _, e := range list {
		el := Element{
			ID:              e.ID,
			Type:            e.Kind,
			X:               e.X,
			Y:               e.Y,
			Width:           e.Width,
			Height:          e.Height,
			Color:           e.Color,
			BackgroundColor: e.BackgroundColor,
			Gradient:        e.Gradient,
			Opacity:         e.Opacity,
			Rotation:        e.Rotation,
			ZIndex:          e.ZIndex,
			Visible:         e.Visible,
			Content:         e.Content,
			FontSize:        e.FontSize,
			FontFamily:      e.FontFamily,
			FontWeight:      e.FontWeight,
			ShapeType:       e.ShapeType,
			BorderColor:     e.BorderColor,
			BorderWidth:     e.BorderWidth,
			ImageURL:        e.ImageURL,
			Filter:          e.Filter,
		}
		if el.Opacity == nil {
			opacity := 1.0
			el.Opacity = &opacity
		}
		if el.Rotation == nil {
			rotation := 0.0
			el.Rotation = &rotation
		}
		if el.ZIndex == nil {
			zIndex := 0
			el.ZIndex = &zIndex
		}
		if el.Visible == nil {
			visible := true
			el.Visible = &visible
		}
		elements = append(elements, el)
	}
	return elements
}
