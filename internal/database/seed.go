package database

import (
	"context"
	"log"

	"gorm.io/datatypes"
)

// seed inserts starter templates and a demo account into an empty
// database so a fresh install has something to show in the gallery.
func (s *service) seed(ctx context.Context) error {
	var templates int64
	if err := s.db.WithContext(ctx).Model(&Template{}).Count(&templates).Error; err != nil {
		return err
	}

	if templates == 0 {
		starters := starterTemplates()
		if err := s.db.WithContext(ctx).Create(&starters).Error; err != nil {
			return err
		}
		log.Println("Starter templates inserted")
	}

	var users int64
	if err := s.db.WithContext(ctx).Model(&User{}).Count(&users).Error; err != nil {
		return err
	}

	if users == 0 {
		demo := User{
			Name:  "Demo User",
			Email: "demo@designpro.app",
		}
		if err := s.db.WithContext(ctx).Create(&demo).Error; err != nil {
			return err
		}
		log.Println("Demo user inserted")
	}

	return nil
}

func starterTemplates() []Template {
	return []Template{
		{
			Name:        "Instagram Post",
			Category:    "social",
			Description: "Square template for Instagram posts",
			Width:       1080,
			Height:      1080,
			Preview:     "https://images.unsplash.com/photo-1611224923853-80b023f02d71?w=300&h=300&fit=crop",
			Elements: datatypes.JSON(`[
				{"id":"bg1","type":"background","color":"#4F46E5","gradient":"linear-gradient(135deg, #667eea 0%, #764ba2 100%)","x":0,"y":0,"width":1080,"height":1080,"zIndex":0,"visible":true},
				{"id":"text1","type":"text","content":"Your Message Here","x":100,"y":400,"fontSize":48,"fontWeight":"bold","color":"#FFFFFF","fontFamily":"Arial","zIndex":1,"visible":true}
			]`),
			Tags: datatypes.JSON(`["instagram","social","post"]`),
		},
		{
			Name:        "Facebook Cover",
			Category:    "social",
			Description: "Professional Facebook cover",
			Width:       1200,
			Height:      630,
			Preview:     "https://images.unsplash.com/photo-1557804506-669a67965ba0?w=300&h=150&fit=crop",
			Elements: datatypes.JSON(`[
				{"id":"bg2","type":"background","color":"#1877F2","gradient":"linear-gradient(90deg, #1877F2 0%, #42A5F5 100%)","x":0,"y":0,"width":1200,"height":630,"zIndex":0,"visible":true},
				{"id":"text2","type":"text","content":"Facebook Cover","x":50,"y":250,"fontSize":64,"fontWeight":"bold","color":"#FFFFFF","fontFamily":"Arial","zIndex":1,"visible":true}
			]`),
			Tags: datatypes.JSON(`["facebook","social","cover"]`),
		},
		{
			Name:        "Web Banner",
			Category:    "web",
			Description: "Promotional banner for websites",
			Width:       1200,
			Height:      400,
			Preview:     "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=300&h=100&fit=crop",
			Elements: datatypes.JSON(`[
				{"id":"bg3","type":"background","color":"#059669","gradient":"linear-gradient(45deg, #059669 0%, #10B981 100%)","x":0,"y":0,"width":1200,"height":400,"zIndex":0,"visible":true},
				{"id":"text3","type":"text","content":"Promo Banner","x":100,"y":150,"fontSize":42,"fontWeight":"bold","color":"#FFFFFF","fontFamily":"Arial","zIndex":1,"visible":true}
			]`),
			Tags: datatypes.JSON(`["web","banner","promo"]`),
		},
		{
			Name:        "Instagram Story",
			Category:    "social",
			Description: "Vertical template for Instagram Stories",
			Width:       1080,
			Height:      1920,
			Preview:     "https://images.unsplash.com/photo-1542744094-3a31f272c490?w=300&h=500&fit=crop",
			Elements: datatypes.JSON(`[
				{"id":"bg4","type":"background","color":"#EC4899","gradient":"linear-gradient(180deg, #EC4899 0%, #F59E0B 100%)","x":0,"y":0,"width":1080,"height":1920,"zIndex":0,"visible":true},
				{"id":"text4","type":"text","content":"Story","x":100,"y":800,"fontSize":72,"fontWeight":"bold","color":"#FFFFFF","fontFamily":"Arial","zIndex":1,"visible":true}
			]`),
			Tags: datatypes.JSON(`["instagram","story","social"]`),
		},
		{
			Name:        "YouTube Thumbnail",
			Category:    "social",
			Description: "Eye-catching YouTube thumbnail",
			Width:       1280,
			Height:      720,
			Preview:     "https://images.unsplash.com/photo-1611162617474-5b21e879e113?w=300&h=150&fit=crop",
			Elements: datatypes.JSON(`[
				{"id":"bg5","type":"background","color":"#FF0000","gradient":"linear-gradient(45deg, #FF0000 0%, #FF4444 100%)","x":0,"y":0,"width":1280,"height":720,"zIndex":0,"visible":true},
				{"id":"text5","type":"text","content":"THUMBNAIL","x":100,"y":300,"fontSize":64,"fontWeight":"bold","color":"#FFFFFF","fontFamily":"Arial","zIndex":1,"visible":true}
			]`),
			Tags: datatypes.JSON(`["youtube","thumbnail","video"]`),
		},
	}
}
