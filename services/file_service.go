package services

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrUnsupportedType = errors.New("file type not allowed")
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".webm": true,
}

const (
	optimizeMaxWidth = 1920
	jpegQuality      = 85
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// FileService writes and removes uploaded files under a single storage
// root. Database columns hold paths relative to that root; URL expansion
// happens at serialization, never here.
type FileService struct {
	Root string
}

func NewFileService(root string) *FileService {
	return &FileService{Root: root}
}

// EnsureDirs creates the per-category upload folders.
func (s *FileService) EnsureDirs(categories ...string) error {
	for _, category := range categories {
		if err := os.MkdirAll(filepath.Join(s.Root, category), 0o755); err != nil {
			return fmt.Errorf("create upload dir %s: %w", category, err)
		}
	}
	return nil
}

// MediaKind classifies a filename by extension into "image" or "video".
func MediaKind(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExtensions[ext]:
		return "image", nil
	case videoExtensions[ext]:
		return "video", nil
	default:
		return "", ErrUnsupportedType
	}
}

// sanitizeFilename strips path separators and shell-hostile characters,
// then appends a timestamp plus a short uuid so concurrent uploads of the
// same name never collide.
func sanitizeFilename(original string) string {
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" {
		name = "file"
	}
	stamp := time.Now().Format("20060102_150405")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s%s", name, stamp, suffix, ext)
}

// Save validates and stores one uploaded file under root/category and
// returns the storage-relative path. Images get a best-effort
// optimization pass; its failure never fails the upload.
func (s *FileService) Save(fh *multipart.FileHeader, category string) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", ErrNoFile
	}

	kind, err := MediaKind(fh.Filename)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.Root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := sanitizeFilename(fh.Filename)
	fullPath := filepath.Join(dir, filename)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("close file: %w", err)
	}

	if kind == "image" {
		if err := optimizeImage(fullPath); err != nil {
			log.Printf("warning: could not optimize image %s: %v", fullPath, err)
		}
	}

	return filepath.ToSlash(filepath.Join(category, filename)), nil
}

// Delete removes a stored file by its relative path. Best effort: a
// missing file is not an error.
func (s *FileService) Delete(relativePath string) bool {
	if relativePath == "" {
		return false
	}
	fullPath := filepath.Join(s.Root, filepath.FromSlash(relativePath))
	if err := os.Remove(fullPath); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: failed to delete file %s: %v", relativePath, err)
		}
		return false
	}
	return true
}

// optimizeImage bounds the width of a stored image and recompresses it.
// Formats the decoder does not know (gif, webp) are left as uploaded.
func optimizeImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	if bounds.Dx() > optimizeMaxWidth {
		ratio := float64(optimizeMaxWidth) / float64(bounds.Dx())
		height := int(float64(bounds.Dy()) * ratio)
		scaled := image.NewRGBA(image.Rect(0, 0, optimizeMaxWidth, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case "png":
		return png.Encode(out, img)
	default:
		return jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality})
	}
}
