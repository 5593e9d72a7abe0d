package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadFile reads study notes from a plain-text or PDF file.
func LoadFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return loadPDF(path)
	case ".txt", ".md", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read notes file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type %q: use .pdf or .txt", filepath.Ext(path))
	}
}

// loadPDF decodes a PDF to text page by page, normalizing whitespace.
func loadPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip undecodable pages rather than failing the import.
			continue
		}
		b.WriteString(Normalize(text))
		b.WriteString("\n\n")
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("no extractable text in %s", filepath.Base(path))
	}
	return out, nil
}

// Normalize cleans up text extracted from a PDF: control characters become
// spaces, hyphen-broken line ends are rejoined, and runs of whitespace
// collapse to a single space.
func Normalize(text string) string {
	// Rejoin words split across lines with a trailing hyphen.
	text = strings.ReplaceAll(text, "-\n", "")

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		if r < ' ' || r == 0x7f {
			r = ' '
		}
		if r == ' ' {
			if lastSpace {
				continue
			}
			lastSpace = true
		} else {
			lastSpace = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
