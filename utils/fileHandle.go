package utils

import (
	"classroom/config"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveBase64File decodes data and writes it under subDir inside the upload
// root. The stored name is prefixed with a timestamp to avoid collisions.
// Returns the public URL of the saved file.
func SaveBase64File(subDir, fileName, data string) (string, error) {
	buf, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("invalid base64 payload: %w", err)
	}

	destDir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fileName))
	if err := os.WriteFile(filepath.Join(destDir, storedName), buf, 0644); err != nil {
		return "", err
	}

	return "/uploads/" + filepath.ToSlash(filepath.Join(subDir, storedName)), nil
}

// DeleteUploadedFile removes a previously stored file by its public URL.
// Cleanup is best-effort, failures are logged and ignored.
func DeleteUploadedFile(fileURL string) {
	if fileURL == "" {
		return
	}
	rel := strings.TrimPrefix(fileURL, "/uploads/")
	if rel == fileURL {
		return // not one of ours
	}
	path := filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove uploaded file %s: %v", path, err)
	}
}
