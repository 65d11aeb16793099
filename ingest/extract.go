package ingest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractFile reads a file and returns a title and its plain text.
// PDF files go through text extraction; anything else is read as UTF-8
// text. The title is the base filename without its extension.
func ExtractFile(path string) (string, string, error) {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	if strings.EqualFold(filepath.Ext(base), ".pdf") {
		text, err := extractPDF(path)
		if err != nil {
			return "", "", err
		}
		return title, text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", "", fmt.Errorf("%w: %s", ErrNoExtractedText, base)
	}

	return title, text, nil
}

// extractPDF pulls the plain text out of a PDF file.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoExtractedText, filepath.Base(path))
	}

	return text, nil
}
