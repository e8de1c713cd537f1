package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/dgallion1/pdfreader/internal/document"
)

// CSVExtractor handles CSV files. The first row is the header; every data
// row becomes one line of "header: value" pairs.
type CSVExtractor struct{}

func (p *CSVExtractor) Extract(data []byte) (*document.Extraction, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	info := map[string]any{"Rows": 0}
	if len(records) == 0 {
		return &document.Extraction{PageCount: 1, Info: info}, nil
	}

	headers := records[0]
	rows := records[1:]
	info["Rows"] = len(rows)
	info["Columns"] = strings.Join(headers, ", ")

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for j, cell := range row {
			if j < len(headers) {
				cells = append(cells, headers[j]+": "+cell)
			} else {
				cells = append(cells, cell)
			}
		}
		lines = append(lines, strings.Join(cells, ", "))
	}

	return &document.Extraction{
		Text:      strings.Join(lines, "\n"),
		PageCount: 1,
		Info:      info,
	}, nil
}
