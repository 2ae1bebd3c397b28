package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"foodhopper/config"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// ImageExt returns the lowercased extension without the dot, or "" when the
// file type is not an accepted image.
func ImageExt(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedImageExts[ext] {
		return ""
	}
	return ext
}

func AllowedImageFile(filename string) bool {
	return ImageExt(filename) != ""
}

// SaveImage writes an uploaded image into the upload directory under a unique
// generated name: <prefix>_<hex>.<ext>. The caller keeps the returned name as
// the stored file reference.
func SaveImage(file *multipart.FileHeader, prefix string) (string, error) {
	ext := ImageExt(file.Filename)
	if ext == "" {
		return "", errors.New("unsupported image type")
	}

	if err := os.MkdirAll(config.UploadDir(), 0o755); err != nil {
		return "", err
	}

	finalName := fmt.Sprintf("%s_%s.%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", ""), ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(config.UploadDir(), finalName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return finalName, nil
}

// RemoveImage deletes a stored upload by name. Missing files are not an error.
func RemoveImage(fileName string) error {
	if fileName == "" {
		return nil
	}
	err := os.Remove(filepath.Join(config.UploadDir(), fileName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UploadAvatar pushes an image to Cloudinary and returns its public URL.
func UploadAvatar(file *multipart.FileHeader) (string, error) {
	if config.Cloudinary == nil {
		return "", errors.New("cloudinary is not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	resp, err := config.Cloudinary.Upload.Upload(config.Ctx, src, uploader.UploadParams{Folder: "avatars"})
	if err != nil {
		return "", err
	}

	return resp.SecureURL, nil
}
