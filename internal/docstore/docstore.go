package docstore

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"hrassistant/internal/domain"
)

// Loader reads the policy document and the tabular source and produces
// the documents that make up the retrievable corpus. Loading is
// all-or-nothing: any failure returns no documents.
type Loader struct {
	policyPath string
	exportURL  string
	client     *http.Client
}

// Config configures the corpus loader. ExportURL may be empty, in which
// case only the policy document is loaded.
type Config struct {
	PolicyPath string
	ExportURL  string
	Timeout    time.Duration
}

func NewLoader(cfg Config) *Loader {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		policyPath: cfg.PolicyPath,
		exportURL:  cfg.ExportURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// LoadAll returns the policy documents followed by one document per
// non-empty sheet of the tabular source.
func (l *Loader) LoadAll() ([]domain.Document, error) {
	docs, err := l.loadPolicy()
	if err != nil {
		return nil, err
	}
	if l.exportURL != "" {
		sheetDocs, err := l.loadSheets()
		if err != nil {
			return nil, err
		}
		docs = append(docs, sheetDocs...)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents loaded", domain.ErrNotFound)
	}
	return docs, nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
