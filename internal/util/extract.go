package util

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractPDFText pulls the text layer out of a PDF held in memory.
// Resumes synced from the CRM are digital-born, so the text layer is
// enough; pages that fail to extract are skipped.
func ExtractPDFText(content []byte) (string, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages []string
	var lastErr error
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}

	result := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text: %w", lastErr)
		}
		return "", fmt.Errorf("no text extracted from PDF")
	}
	return result, nil
}
