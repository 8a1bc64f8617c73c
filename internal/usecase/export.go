package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/designpro/designpro/internal/config"
)

// Rendering a design to a real raster image is out of scope; export
// returns a fixed 1x1 placeholder in the requested format. These are the
// same canned payloads the editor prototype ships with.
const (
	// 1x1 transparent PNG.
	placeholderPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	// 1x1 white JPEG.
	placeholderJPEGBase64 = "/9j/4AAQSkZJRgABAQEAYABgAAD/2wBDAAEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQH/2wBDAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQH/wAARCAABAAEDASIAAhEBAxEB/8QAFQABAQAAAAAAAAAAAAAAAAAAAAv/xAAUEAEAAAAAAAAAAAAAAAAAAAAA/8QAFQEBAQAAAAAAAAAAAAAAAAAAAAX/xAAUEQEAAAAAAAAAAAAAAAAAAAAA/9oADAMBAAIRAxEAPwA/8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A8A=="
)

// 1x1 transparent SVG placeholder.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"/>`

type ExportFormat struct {
	ID          string
	Name        string
	Description string
	Extension   string
	MimeType    string
}

type ExportOption struct {
	Format  string
	Quality int
	Width   *int
	Height  *int
}

type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

type Base64Export struct {
	DesignID   uuid.UUID
	Format     string
	Base64     string
	ExportedAt time.Time
}

type BatchExportItem struct {
	DesignID string
	Success  bool
	Base64   string
	Format   string
	Error    string
}

type BatchExportResult struct {
	BatchID    string
	Results    []BatchExportItem
	ExportedAt time.Time
}

func ExportFormats() []ExportFormat {
	return []ExportFormat{
		{
			ID:          "png",
			Name:        "PNG",
			Description: "Portable Network Graphics - best for transparency",
			Extension:   "png",
			MimeType:    "image/png",
		},
		{
			ID:          "jpg",
			Name:        "JPEG",
			Description: "JPEG - best for photos and color-rich images",
			Extension:   "jpg",
			MimeType:    "image/jpeg",
		},
		{
			ID:          "svg",
			Name:        "SVG",
			Description: "Scalable Vector Graphics",
			Extension:   "svg",
			MimeType:    "image/svg+xml",
		},
	}
}

func exportMimeType(format string) string {
	switch format {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "svg":
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

func placeholderBase64(format string) string {
	switch format {
	case "jpg", "jpeg":
		return placeholderJPEGBase64
	case "svg":
		return base64.StdEncoding.EncodeToString([]byte(placeholderSVG))
	default:
		return placeholderPNGBase64
	}
}

func placeholderImage(format string) []byte {
	if format == "svg" {
		return []byte(placeholderSVG)
	}
	data, err := base64.StdEncoding.DecodeString(placeholderBase64(format))
	if err != nil {
		// the constants are known-good base64
		panic(err)
	}
	return data
}

// ExportDesign returns the design "rendered" as image bytes. The design
// must exist; the payload is a placeholder, see above.
func (u Usecase) ExportDesign(ctx context.Context, id uuid.UUID, opt ExportOption) (ExportResult, error) {
	if _, err := u.repo.GetDesignByID(ctx, id); err != nil {
		return ExportResult{}, err
	}

	return ExportResult{
		Data:        placeholderImage(opt.Format),
		ContentType: exportMimeType(opt.Format),
		Filename:    fmt.Sprintf("design_%s.%s", id, opt.Format),
	}, nil
}

func (u Usecase) ExportDesignBase64(ctx context.Context, id uuid.UUID, opt ExportOption) (Base64Export, error) {
	if _, err := u.repo.GetDesignByID(ctx, id); err != nil {
		return Base64Export{}, err
	}

	return Base64Export{
		DesignID:   id,
		Format:     opt.Format,
		Base64:     placeholderBase64(opt.Format),
		ExportedAt: time.Now().UTC(),
	}, nil
}

// DesignShareQR encodes the design's share link as a QR code PNG.
func (u Usecase) DesignShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := u.repo.GetDesignByID(ctx, id); err != nil {
		return nil, err
	}

	appURL := os.Getenv(config.ENV_KEY_APP_URL)
	if appURL == "" {
		appURL = "https://designpro.app"
	}

	return qrcode.Encode(fmt.Sprintf("%s/designs/%s", appURL, id), qrcode.Medium, 256)
}

// BatchExportDesigns exports several designs in one call. Failures are
// recorded per item; the batch always completes.
func (u Usecase) BatchExportDesigns(ctx context.Context, ids []uuid.UUID, format string) (BatchExportResult, error) {
	results := make([]BatchExportItem, 0, len(ids))
	for _, id := range ids {
		item := BatchExportItem{DesignID: id.String(), Format: format}

		if _, err := u.repo.GetDesignByID(ctx, id); err != nil {
			item.Error = "design not found"
			if !errors.Is(err, ErrNotFound) {
				item.Error = err.Error()
			}
			results = append(results, item)
			continue
		}

		item.Success = true
		item.Base64 = placeholderBase64(format)
		results = append(results, item)
	}

	return BatchExportResult{
		BatchID:    "batch_" + uuid.NewString(),
		Results:    results,
		ExportedAt: time.Now().UTC(),
	}, nil
}
