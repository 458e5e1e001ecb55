package adapter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kasicash/kasi/internal/domain/port"
)

// Compile-time interface check.
var _ port.StatementTextExtractor = (*PDFTextExtractor)(nil)

// PDFTextExtractor pulls plain text out of uploaded PDF statements. There is
// no OCR fallback: scanned-image PDFs yield empty text and corrupt or
// encrypted files surface as errors.
type PDFTextExtractor struct{}

// NewPDFTextExtractor creates the extractor.
func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

// ExtractText concatenates the plain text of every page, newline-separated.
func (e *PDFTextExtractor) ExtractText(_ context.Context, r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
