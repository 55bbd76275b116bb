package sheetimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadRows_CSV(t *testing.T) {
	t.Run("normalizes headers and skips blank rows", func(t *testing.T) {
		data := "SKU, Quantity ,Worker Name\nE-001,15000,Ann\n,,\nM-552, 40 ,Bob\n"

		rows, err := ReadRows(strings.NewReader(data), FormatCSV, "sku", "quantity")

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "E-001", rows[0].Get("sku"))
		assert.Equal(t, "15000", rows[0].Get("quantity"))
		assert.Equal(t, "Ann", rows[0].Get("worker_name"))
		assert.Equal(t, 2, rows[0].LineNumber)
		assert.Equal(t, 4, rows[1].LineNumber)
		assert.Equal(t, "40", rows[1].Get("quantity"))
	})

	t.Run("strips UTF-8 BOM", func(t *testing.T) {
		rows, err := ReadRows(strings.NewReader("\xEF\xBB\xBFsku,quantity\nE-001,1"), FormatCSV, "sku")

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "E-001", rows[0].Get("sku"))
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ReadRows(strings.NewReader(""), FormatCSV)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		_, err := ReadRows(bytes.NewReader([]byte{'a', ',', 0xff, 0xfe, '\n'}), FormatCSV)
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := ReadRows(strings.NewReader("sku\nE-001"), FormatCSV, "sku", "quantity")
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("short rows are padded", func(t *testing.T) {
		rows, err := ReadRows(strings.NewReader("sku,quantity,note\nE-001,5"), FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, "", rows[0].Get("note"))
		assert.Equal(t, "n/a", rows[0].GetOrDefault("note", "n/a"))
	})
}

func TestReadRows_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Worker", "Status", "Shift", "Date"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"John Doe", "Present", "Morning", "2023-10-24"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Jane Smith", "Half Day", "Morning", "2023-10-24"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadRows(bytes.NewReader(buf.Bytes()), FormatXLSX, "worker", "status")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane Smith", rows[1].Get("worker"))
	assert.Equal(t, "Half Day", rows[1].Get("status"))
	assert.Equal(t, 3, rows[1].LineNumber)
}

func TestReadRows_XLSXRejectsGarbage(t *testing.T) {
	_, err := ReadRows(strings.NewReader("not a zip"), FormatXLSX)
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("stock.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = DetectFormat("stock.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = DetectFormat("stock.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestErrorCollection(t *testing.T) {
	ec := NewErrorCollection(2)
	ec.AddRequired(2, "sku")
	ec.AddFormat(3, "quantity", "number", "abc")
	ec.AddReference(4, "sku", "X-1", "inventory item")

	assert.Len(t, ec.Errors(), 2)
	assert.Equal(t, 3, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
	assert.Equal(t, "row 3, column 'quantity': invalid format, expected number", ec.Errors()[1].Error())
}
