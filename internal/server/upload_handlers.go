package server

import (
	"io"
	"mime/multipart"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/designpro/designpro/internal/usecase"
)

type Upload struct {
	ID           string   `json:"id"`
	Filename     string   `json:"filename"`
	OriginalName string   `json:"originalName"`
	Size         int      `json:"size"`
	MimeType     string   `json:"mimeType"`
	Base64       string   `json:"base64"`
	Palette      []string `json:"palette,omitempty"`
	Object       string   `json:"object,omitempty"`
	URL          string   `json:"url,omitempty"`
	UploadedAt   string   `json:"uploadedAt"`
}

func toUploadDTO(u usecase.Upload) Upload {
	return Upload{
		ID:           u.ID.String(),
		Filename:     u.Filename,
		OriginalName: u.OriginalName,
		Size:         u.Size,
		MimeType:     u.MimeType,
		Base64:       u.Base64,
		Palette:      u.Palette,
		Object:       u.Object,
		URL:          u.URL,
		UploadedAt:   u.UploadedAt.UTC().Format(time.RFC3339),
	}
}

func readUploadFile(fh *multipart.FileHeader) (usecase.UploadFile, error) {
	src, err := fh.Open()
	if err != nil {
		return usecase.UploadFile{}, err
	}
	defer src.Close()

	// read one byte past the cap so oversized files are rejected by
	// the size check instead of being silently truncated
	data, err := io.ReadAll(io.LimitReader(src, usecase.MaxUploadSize+1))
	if err != nil {
		return usecase.UploadFile{}, err
	}

	return usecase.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (s *Server) UploadImage(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return ctx.JSON(400, Res{Error: "file is required"})
	}

	file, err := readUploadFile(fh)
	if err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}

	up, err := s.server.UploadImage(ctx.Request().Context(), file)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toUploadDTO(up)})
}

type UploadImagesItem struct {
	OriginalName string  `json:"originalName"`
	Success      bool    `json:"success"`
	Upload       *Upload `json:"upload,omitempty"`
	Error        string  `json:"error,omitempty"`
}

func (s *Server) UploadImages(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return ctx.JSON(400, Res{Error: "files is required"})
	}
	if len(files) > usecase.MaxFilesPerBatch {
		return ctx.JSON(422, Res{Error: "too many files"})
	}

	results := make([]UploadImagesItem, 0, len(files))
	for _, fh := range files {
		item := UploadImagesItem{OriginalName: fh.Filename}

		file, err := readUploadFile(fh)
		if err != nil {
			item.Error = err.Error()
			results = append(results, item)
			continue
		}

		up, err := s.server.UploadImage(ctx.Request().Context(), file)
		if err != nil {
			item.Error = err.Error()
			results = append(results, item)
			continue
		}

		dto := toUploadDTO(up)
		item.Success = true
		item.Upload = &dto
		results = append(results, item)
	}

	return ctx.JSON(200, Res{Data: results})
}

type UploadInfo struct {
	MaxFileSize       int            `json:"maxFileSize"`
	MaxFileSizeMB     float64        `json:"maxFileSizeMb"`
	AllowedExtensions []string       `json:"allowedExtensions"`
	MaxFilesPerBatch  int            `json:"maxFilesPerBatch"`
	SupportedFormats  []UploadFormat `json:"supportedFormats"`
}

type UploadFormat struct {
	Extension   string `json:"extension"`
	MimeType    string `json:"mimeType"`
	Description string `json:"description"`
}

func (s *Server) GetUploadInfo(ctx echo.Context) error {
	info := usecase.GetUploadInfo()

	formats := make([]UploadFormat, 0, len(info.SupportedFormats))
	for _, f := range info.SupportedFormats {
		formats = append(formats, UploadFormat{
			Extension:   f.Extension,
			MimeType:    f.MimeType,
			Description: f.Description,
		})
	}

	return ctx.JSON(200, Res{Data: UploadInfo{
		MaxFileSize:       info.MaxFileSize,
		MaxFileSizeMB:     info.MaxFileSizeMB,
		AllowedExtensions: info.AllowedExtensions,
		MaxFilesPerBatch:  info.MaxFilesPerBatch,
		SupportedFormats:  formats,
	}})
}

type GetTempUploadURLRequest struct {
	Name string `query:"name" validate:"required"`
}

func (s *Server) GetTempUploadURL(ctx echo.Context) error {
	var req GetTempUploadURLRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	url, err := s.server.GetTempUploadURL(ctx.Request().Context(), req.Name)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: map[string]string{"url": url}})
}

type DeleteUploadedImageRequest struct {
	ID string `param:"id" validate:"required"`
}

func (s *Server) DeleteUploadedImage(ctx echo.Context) error {
	var req DeleteUploadedImageRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	if err := s.server.DeleteUploadedImage(ctx.Request().Context(), req.ID); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "image deleted"})
}
