package services

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// TextExtractor converts an uploaded document into plain text. Polymorphic
// over PDF and DOCX; anything else fails with ErrUnsupportedFormat, corrupt
// input with ErrExtractionFailed. The context bounds slow extractions, checked
// between pages.
type TextExtractor interface {
	Extract(ctx context.Context, filePath string) (string, error)
}

type documentExtractor struct{}

func NewDocumentExtractor() TextExtractor {
	return &documentExtractor{}
}

func (e *documentExtractor) Extract(ctx context.Context, filePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: file does not exist: %s", ErrExtractionFailed, filePath)
	}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".pdf":
		return e.extractPDF(ctx, filePath)
	case ".docx":
		return e.extractDOCX(filePath)
	default:
		return "", fmt.Errorf("%w: %q (use PDF or DOCX)", ErrUnsupportedFormat, ext)
	}
}

func (e *documentExtractor) extractPDF(ctx context.Context, filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", ErrExtractionFailed, err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in PDF", ErrExtractionFailed)
	}

	return text, nil
}

var (
	docxParagraphRe = regexp.MustCompile(`</w:p>`)
	docxTagRe       = regexp.MustCompile(`<[^>]+>`)
)

func (e *documentExtractor) extractDOCX(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX: %v", ErrExtractionFailed, err)
	}
	defer r.Close()

	content := r.Editable().GetContent()

	// Paragraph boundaries become newlines, then the remaining WordprocessingML
	// markup is stripped.
	text := docxParagraphRe.ReplaceAllString(content, "\n")
	text = docxTagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in DOCX", ErrExtractionFailed)
	}

	return text, nil
}
