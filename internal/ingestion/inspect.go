package ingestion

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Report summarizes what a résumé file looks like locally, before upload.
type Report struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	Hash        string `json:"hash"`                // SHA256 hex digest
	Pages       int    `json:"pages,omitempty"`     // PDFs only
	TextChars   int    `json:"text_chars"`          // extractable characters, 0 if unknown
	Warning     string `json:"warning,omitempty"`   // set when the service would likely reject the file
	PDFError    string `json:"pdf_error,omitempty"` // set when the PDF could not be parsed
}

// Inspect reports size, media type, hash and, for PDFs and plain text, how
// much text is extractable. Image-only PDFs come back with a warning because
// the service answers them with "empty or invalid resume".
func Inspect(file *types.FileHandle) *Report {
	report := &Report{
		Name:        file.Name,
		ContentType: file.ContentType,
		SizeBytes:   file.Size(),
		Hash:        computeHash(file.Data),
	}

	switch {
	case file.Ext() == ".pdf" || strings.HasPrefix(file.ContentType, "application/pdf"):
		pages, text, err := extractPDFText(file.Data)
		if err != nil {
			report.PDFError = err.Error()
			report.Warning = "PDF could not be parsed locally"
			return report
		}
		report.Pages = pages
		report.TextChars = len([]rune(normalizeText(text)))
	case file.Ext() == ".txt" || strings.HasPrefix(file.ContentType, "text/"):
		report.TextChars = len([]rune(normalizeText(string(file.Data))))
	default:
		// .doc/.docx are parsed server-side only
		return report
	}

	if report.TextChars == 0 {
		report.Warning = "no extractable text; the service will reject this résumé as empty"
	}
	return report
}

// extractPDFText concatenates the plain text of every page.
func extractPDFText(data []byte) (int, string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return total, sb.String(), nil
}

// normalizeText normalizes line endings and drops surrounding whitespace
func normalizeText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.TrimSpace(content)
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
