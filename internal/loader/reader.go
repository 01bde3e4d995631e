package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// sheet is a header-indexed table read from one file.
type sheet struct {
	path     string
	index    map[string]int
	rows     [][]string
	warnings []Warning
}

func (s *sheet) has(col string) bool {
	_, ok := s.index[col]
	return ok
}

// cell returns the value of col in row, or "" when the column is absent.
func (s *sheet) cell(row []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (s *sheet) warn(line int, format string, args ...any) {
	s.warnings = append(s.warnings, Warning{File: s.path, Row: line, Message: fmt.Sprintf(format, args...)})
}

// require fails when a non-empty sheet lacks col.
func (s *sheet) require(col string) error {
	if len(s.rows) > 0 && !s.has(col) {
		return fmt.Errorf("%s: %w: %s", s.path, ErrMissingColumn, col)
	}
	return nil
}

// readSheet reads a CSV or XLSX file. A missing file is an empty sheet.
func readSheet(path string) (*sheet, error) {
	s := &sheet{path: path, index: map[string]int{}}
	if path == "" {
		return s, nil
	}

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path)
	case ".csv", ".txt", "":
		records, err = readCSV(s, path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return s, nil
	}

	for i, h := range records[0] {
		h = strings.ToLower(strings.TrimSpace(strings.Trim(h, "\ufeff")))
		if h == "" {
			continue
		}
		if _, dup := s.index[h]; !dup {
			s.index[h] = i
		}
	}
	s.rows = records[1:]
	return s, nil
}

func readCSV(s *sheet, path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	headerCount := -1
	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			s.warn(line, "parse error: %v", err)
			continue
		}
		if headerCount < 0 {
			headerCount = len(row)
		} else if len(row) != headerCount {
			s.warn(line, "row has %d columns, expected %d", len(row), headerCount)
		}
		records = append(records, row)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	// Raw values keep dates as serial numbers, which parse.Date understands
	// regardless of the cell's display format.
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

// decode converts file bytes to UTF-8. UTF-8 and UTF-16 with a BOM are
// honoured; anything else that is not valid UTF-8 is read as Latin-1.
func decode(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) || utf8.Valid(data) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		return out, err
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	return out, err
}
