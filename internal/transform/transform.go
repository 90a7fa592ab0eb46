// Package transform converts selected files into the opaque string values
// the catalog stores: cover images become data-URL strings and imported text
// files become extract text. The stores treat both results as opaque.
package transform

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"
)

// DataURL encodes raw file bytes as a data-URL string. The media type is
// sniffed from the content itself, not the filename.
func DataURL(data []byte) string {
	mimeType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// FileDataURL reads the file at path and returns it as a data-URL string.
func FileDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read cover file: %w", err)
	}
	return DataURL(data), nil
}

// FileText reads the file at path as UTF-8 text for extract import.
// Trailing whitespace is trimmed; invalid UTF-8 is rejected rather than
// stored.
func FileText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s is not valid UTF-8 text", path)
	}
	return strings.TrimSpace(string(data)), nil
}
