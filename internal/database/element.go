package database

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/designpro/designpro/internal/usecase"
)

// elementDoc is the JSONB representation of one canvas element. Field
// names match the wire format the editor writes.
type elementDoc struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	X      float64  `json:"x"`
	Y      float64  `json:"y"`
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

func marshalElements(elements []usecase.Element) (datatypes.JSON, error) {
	docs := make([]elementDoc, 0, len(elements))
	for _, e := range elements {
		docs = append(docs, elementDoc{
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
		})
	}
	return json.Marshal(docs)
}

func unmarshalElements(data datatypes.JSON) ([]usecase.Element, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var docs []elementDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}

	elements := make([]usecase.Element, 0, len(docs))
	for _, d := range docs {
		elements = append(elements, usecase.Element{
			ID:              d.ID,
			Kind:            d.Type,
			X:               d.X,
			Y:               d.Y,
			Width:           d.Width,
			Height:          d.Height,
			Color:           d.Color,
			BackgroundColor: d.BackgroundColor,
			Gradient:        d.Gradient,
			Opacity:         d.Opacity,
			Rotation:        d.Rotation,
			ZIndex:          d.ZIndex,
			Visible:         d.Visible,
			Content:         d.Content,
			FontSize:        d.FontSize,
			FontFamily:      d.FontFamily,
			FontWeight:      d.FontWeight,
			ShapeType:       d.ShapeType,
			BorderColor:     d.BorderColor,
			BorderWidth:     d.BorderWidth,
			ImageURL:        d.ImageURL,
			Filter:          d.Filter,
		})
	}
	return elements, nil
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

func unmarshalTags(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
