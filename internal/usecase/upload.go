package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	// decoders for palette extraction
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cenkalti/dominantcolor"
	"github.com/google/uuid"
)

const (
	// MaxUploadSize is the per-file upload limit in bytes.
	MaxUploadSize = 10 * 1024 * 1024

	// MaxFilesPerBatch caps a multi-file upload request.
	MaxFilesPerBatch = 10
)

var allowedUploadExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type Upload struct {
	ID           uuid.UUID
	Filename     string
	OriginalName string
	Size         int
	MimeType     string
	Base64       string
	// Palette holds up to four dominant colors as hex strings when the
	// image could be decoded.
	Palette    []string
	Object     string
	URL        string
	UploadedAt time.Time
}

type UploadFormat struct {
	Extension   string
	MimeType    string
	Description string
}

type UploadInfo struct {
	MaxFileSize       int
	MaxFileSizeMB     float64
	AllowedExtensions []string
	MaxFilesPerBatch  int
	SupportedFormats  []UploadFormat
}

func GetUploadInfo() UploadInfo {
	return UploadInfo{
		MaxFileSize:       MaxUploadSize,
		MaxFileSizeMB:     MaxUploadSize / (1024 * 1024),
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
		MaxFilesPerBatch:  MaxFilesPerBatch,
		SupportedFormats: []UploadFormat{
			{Extension: ".jpg", MimeType: "image/jpeg", Description: "JPEG Image"},
			{Extension: ".png", MimeType: "image/png", Description: "PNG Image"},
			{Extension: ".gif", MimeType: "image/gif", Description: "GIF Image"},
			{Extension: ".webp", MimeType: "image/webp", Description: "WebP Image"},
			{Extension: ".svg", MimeType: "image/svg+xml", Description: "SVG Vector Image"},
		},
	}
}

// UploadImage validates and stores a single image asset. The bytes are
// returned inline as a data URI so the editor can use them immediately;
// when object storage is configured the asset is persisted there too.
func (u Usecase) UploadImage(ctx context.Context, file UploadFile) (Upload, error) {
	ext := strings.ToLower(filepath.Ext(file.Name))
	mime, ok := allowedUploadExtensions[ext]
	if !ok {
		return Upload{}, ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("unsupported file type %q", ext),
		}
	}
	if len(file.Data) > MaxUploadSize {
		return Upload{}, ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("file too large: %.1fMB, max %dMB", float64(len(file.Data))/(1024*1024), MaxUploadSize/(1024*1024)),
		}
	}
	if file.ContentType != "" {
		mime = file.ContentType
	}

	id := uuid.New()
	upload := Upload{
		ID:           id,
		Filename:     id.String() + ext,
		OriginalName: file.Name,
		Size:         len(file.Data),
		MimeType:     mime,
		Base64:       fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(file.Data)),
		Palette:      extractPalette(file.Data),
		UploadedAt:   time.Now().UTC(),
	}

	if u.fileStorageProvider != nil {
		object := "uploads/" + upload.Filename
		if err := u.fileStorageProvider.PutObject(ctx, object, mime, file.Data); err != nil {
			slog.Warn("failed to store upload",
				slog.String("object", object),
				slog.String("err", err.Error()))
		} else {
			upload.Object = object
			if url, err := u.fileStorageProvider.GetPresignedURL(ctx, object); err == nil {
				upload.URL = url
			}
		}
	}

	return upload, nil
}

// DeleteUploadedImage removes a stored asset by its generated filename.
func (u Usecase) DeleteUploadedImage(ctx context.Context, filename string) error {
	if u.fileStorageProvider == nil {
		return nil
	}
	return u.fileStorageProvider.RemoveObject(ctx, "uploads/"+filename)
}

// GetTempUploadURL returns a presigned URL for direct-to-storage uploads.
func (u Usecase) GetTempUploadURL(ctx context.Context, name string) (string, error) {
	if u.fileStorageProvider == nil {
		return "", ErrUnavailable
	}
	path := fmt.Sprintf("%d/%s", time.Now().Unix(), name)
	return u.fileStorageProvider.GetTempUploadURL(ctx, path)
}

// extractPalette finds up to four dominant colors. SVG and WebP payloads
// do not decode here, they simply get no palette.
func extractPalette(data []byte) []string {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	colors := dominantcolor.FindN(img, 4)
	palette := make([]string, 0, len(colors))
	for _, c := range colors {
		palette = append(palette, dominantcolor.Hex(c))
	}
	return palette
}
