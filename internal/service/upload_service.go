package service

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	app_errors "membox/backend/internal/errors"
)

// maxImageWidth caps stored image width; larger uploads are downscaled before
// being handed to the vision model.
const maxImageWidth = 2048

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadService stores uploaded images on disk and returns the URLs they are
// served under. The pending-attachment list lives client-side; this service
// is stateless.
type UploadService struct {
	dir     string
	baseURL string
}

func NewUploadService(dir, baseURL string) *UploadService {
	return &UploadService{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// SaveImages stores each uploaded file and returns its public URL, in input
// order. A single bad file fails the whole batch.
func (s *UploadService) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", app_errors.ErrValidation)
	}
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExtensions[ext] {
			return nil, fmt.Errorf("%w: unsupported file format %q", app_errors.ErrValidation, ext)
		}

		name := generateFilename(ext)
		if err := s.saveFile(header, filepath.Join(s.dir, name), ext); err != nil {
			return nil, err
		}
		urls = append(urls, s.baseURL+"/uploads/"+name)
	}
	return urls, nil
}

func (s *UploadService) saveFile(header *multipart.FileHeader, dest, ext string) error {
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("could not open uploaded file: %w", err)
	}
	defer file.Close()

	switch ext {
	case ".jpg", ".jpeg", ".png":
		img, err := imaging.Decode(file, imaging.AutoOrientation(true))
		if err != nil {
			return fmt.Errorf("%w: file %q is not a valid image", app_errors.ErrValidation, header.Filename)
		}
		if img.Bounds().Dx() > maxImageWidth {
			slog.Debug("Downscaling oversized upload", "file", header.Filename, "width", img.Bounds().Dx())
			img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
		}
		if err := imaging.Save(img, dest); err != nil {
			return fmt.Errorf("could not save image: %w", err)
		}
	default:
		// gif and webp are stored as-is; imaging cannot re-encode them.
		out, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("could not create file: %w", err)
		}
		defer out.Close()
		if _, err := io.Copy(out, file); err != nil {
			return fmt.Errorf("could not write file: %w", err)
		}
	}
	return nil
}

// generateFilename builds a unique name like 20260102_150405_a1b2c3d4.png.
func generateFilename(ext string) string {
	stamp := time.Now().UTC().Format("20060102_150405")
	return stamp + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8] + ext
}
