package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"hrassistant/internal/domain"
)

// loadPolicy reads the policy document. PDF files produce one document
// per page (tagged "pdf-page") so page-level table blocks survive
// chunking intact; plain text produces a single "txt" document.
func (l *Loader) loadPolicy() ([]domain.Document, error) {
	if _, err := os.Stat(l.policyPath); err != nil {
		return nil, fmt.Errorf("%w: policy document %s", domain.ErrNotFound, l.policyPath)
	}
	switch strings.ToLower(filepath.Ext(l.policyPath)) {
	case ".pdf":
		return l.loadPDF()
	default:
		return l.loadText()
	}
}

func (l *Loader) loadText() ([]domain.Document, error) {
	data, err := os.ReadFile(l.policyPath)
	if err != nil {
		return nil, fmt.Errorf("read policy document: %w", err)
	}
	id := hashString(l.policyPath)
	return []domain.Document{{ID: id, Source: "txt", Content: string(data)}}, nil
}

func (l *Loader) loadPDF() ([]domain.Document, error) {
	f, reader, err := pdf.Open(l.policyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf %s: %v", domain.ErrParse, l.policyPath, err)
	}
	defer f.Close()

	var docs []domain.Document
	base := hashString(l.policyPath)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: extract pdf page %d: %v", domain.ErrParse, i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, domain.Document{
			ID:      fmt.Sprintf("%s-p%d", base, i),
			Source:  "pdf-page",
			Content: text,
		})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: pdf %s contains no extractable text", domain.ErrParse, l.policyPath)
	}
	return docs, nil
}
