package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrNoHeader          = errors.New("source has no header row")
	ErrColumnCount       = errors.New("unexpected number of columns")
	ErrUnsupportedFormat = errors.New("unsupported source format")
)

type sourceRow struct {
	line  int
	cells []string
}

// Load reads all records from the spreadsheet at path. The format is
// chosen by file extension: Office Open XML workbooks or CSV. Legacy
// binary .xls workbooks are not readable and give ErrUnsupportedFormat.
func Load(path string, opts Options) ([]Record, error) {
	opts = opts.WithDefaults()

	var read func(io.Reader) ([]Record, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		read = func(r io.Reader) ([]Record, error) {
			return ReadXLSX(r, opts.Sheet)
		}
	case ".csv":
		enc, err := LookupEncoding(opts.InputEncoding)
		if err != nil {
			return nil, err
		}
		read = func(r io.Reader) ([]Record, error) {
			return ReadCSV(r, enc)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return read(fd)
}

// ReadXLSX reads records from the given sheet, or the first sheet if
// sheet is empty. Cell values are read unformatted.
func ReadXLSX(r io.Reader, sheet string) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, errors.New("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	src := make([]sourceRow, len(rows))
	for i, row := range rows {
		src[i] = sourceRow{line: i + 1, cells: row}
	}
	return records(src)
}

// ReadCSV reads comma separated records in the given text encoding. A
// byte order mark, if present, overrides enc.
func ReadCSV(r io.Reader, enc encoding.Encoding) ([]Record, error) {
	dec := unicode.BOMOverride(enc.NewDecoder())
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1

	var src []sourceRow
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		src = append(src, sourceRow{line: line, cells: row})
	}
	return records(src)
}

// records maps rows positionally onto Records. The first row is the
// header. The widest row decides the column count, which must match
// Columns exactly.
func records(rows []sourceRow) ([]Record, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	width := 0
	for _, row := range rows {
		if w := trimmedLen(row.cells); w > width {
			width = w
		}
	}
	if width != numColumns {
		return nil, fmt.Errorf("%w: have %d, want %d (%s)", ErrColumnCount, width, numColumns, strings.Join(Columns, ", "))
	}

	recs := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{Row: row.line}
		for i, c := range rec.cells() {
			if i < len(row.cells) {
				*c = present(row.cells[i])
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func trimmedLen(cells []string) int {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return n
}
