// Package sheetimport reads tabular uploads (CSV or XLSX) into header-keyed rows.
package sheetimport

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format of an uploaded sheet
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type used when archiving the file
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// DetectFormat picks the format from a file name's extension
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

// Row is a data row keyed by normalized header name
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// GetOrDefault returns the value for a column, or def if empty or absent
func (r *Row) GetOrDefault(header, def string) string {
	if val, ok := r.Data[header]; ok && val != "" {
		return val
	}
	return def
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// NormalizeHeader lowercases a header and joins words with underscores,
// so "Worker Name" and "worker_name" address the same column.
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(h))), "_")
}

// ReadRows parses r in the given format. Empty rows are dropped.
// When required columns are given, a missing one fails the whole file.
func ReadRows(r io.Reader, format Format, required ...string) ([]*Row, error) {
	var (
		headers []string
		records [][]string
		err     error
	)
	switch format {
	case FormatCSV:
		headers, records, err = readCSV(r)
	case FormatXLSX:
		headers, records, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(headers))
	for i, h := range headers {
		headers[i] = NormalizeHeader(h)
		present[headers[i]] = true
	}
	for _, col := range required {
		if !present[col] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	rows := make([]*Row, 0, len(records))
	for i, record := range records {
		row := &Row{
			LineNumber: i + 2, // header is line 1
			Data:       make(map[string]string, len(headers)),
		}
		for col, header := range headers {
			if header == "" {
				continue
			}
			if col < len(record) {
				row.Data[header] = strings.TrimSpace(record[col])
			} else {
				row.Data[header] = ""
			}
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
