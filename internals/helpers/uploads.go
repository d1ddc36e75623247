package helper

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Formats imaging can both decode and re-encode.
var allowedImageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// largest stored edge; field photos come in straight off phone cameras
const maxImageDimension = 1024

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameChars.ReplaceAllString(filename, "_")
}

func AllowedImageFile(filename string) bool {
	_, ok := allowedImageExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// SaveProfileImage validates, re-encodes and stores an uploaded image under
// uploadDir with a timestamped unique name. Returns the stored filename.
func SaveProfileImage(uploadDir string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil || fileHeader.Filename == "" {
		return "", fmt.Errorf("no file provided")
	}
	if !AllowedImageFile(fileHeader.Filename) {
		return "", fmt.Errorf("invalid file type: %s", fileHeader.Filename)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Dx() > maxImageDimension || img.Bounds().Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8],
		sanitizeFilename(fileHeader.Filename),
	)
	if err := imaging.Save(img, filepath.Join(uploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	log.Printf("[INFO] Image saved: %s", filename)
	return filename, nil
}

// DeleteProfileImage removes a previously stored image. Best-effort.
func DeleteProfileImage(uploadDir, filename string) bool {
	if filename == "" {
		return false
	}
	path := filepath.Join(uploadDir, filepath.Base(filename))
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARNING] Failed to delete image %s: %v", filename, err)
		}
		return false
	}
	return true
}
