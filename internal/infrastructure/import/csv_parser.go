package sheetimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// utf8BOM is stripped from the start of CSV uploads exported by spreadsheet tools
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingCheckSize is how much of the file is checked for valid UTF-8
const encodingCheckSize = 4096

func readCSV(r io.Reader) ([]string, [][]string, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == len(utf8BOM) && string(head) == string(utf8BOM) {
		_, _ = buf.Discard(len(utf8BOM))
	}

	sample, err := buf.Peek(encodingCheckSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(sample) == 0 {
		return nil, nil, ErrEmptyFile
	}
	if !validUTF8Prefix(sample, len(sample) < encodingCheckSize) {
		return nil, nil, ErrInvalidEncoding
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrMissingHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return headers, records, nil
}

// validUTF8Prefix checks a peeked sample. A sample cut mid-rune at the
// buffer boundary is still accepted when more input follows.
func validUTF8Prefix(sample []byte, complete bool) bool {
	if utf8.Valid(sample) {
		return true
	}
	if complete {
		return false
	}
	for trim := 1; trim < utf8.UTFMax && trim < len(sample); trim++ {
		if utf8.Valid(sample[:len(sample)-trim]) {
			return true
		}
	}
	return false
}
