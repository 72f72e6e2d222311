package docstore

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"hrassistant/internal/domain"
)

// loadSheets downloads the spreadsheet export and serializes each
// non-empty sheet as one document tagged "sheet:<name>".
func (l *Loader) loadSheets() ([]domain.Document, error) {
	resp, err := l.client.Get(l.exportURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch spreadsheet export: %v", domain.ErrConnection, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: spreadsheet export returned %s", domain.ErrConnection, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read spreadsheet export: %v", domain.ErrConnection, err)
	}
	return parseWorkbook(data)
}

func parseWorkbook(data []byte) ([]domain.Document, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parse spreadsheet: %v", domain.ErrParse, err)
	}
	defer wb.Close()

	var docs []domain.Document
	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %s: %v", domain.ErrParse, name, err)
		}
		text := serializeRows(rows)
		if text == "" {
			continue
		}
		source := "sheet:" + name
		docs = append(docs, domain.Document{
			ID:      hashString(source),
			Source:  source,
			Content: text,
		})
	}
	return docs, nil
}

func serializeRows(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		line := strings.TrimSpace(strings.Join(row, "\t"))
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
