package roster

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Null is written for absent optional values.
const Null = "NULL"

var (
	ErrNotInteger = errors.New("not an integer")
	ErrMissingID  = errors.New("missing student ID")
)

// ParseInteger converts a cell value to an integer. Besides plain
// integers it accepts the decimal and exponent forms spreadsheets store
// numbers in ("1002.0", "1.002E3"); fractions are truncated toward zero.
func ParseInteger(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q out of range", ErrNotInteger, s)
	}
	return int64(f), nil
}

// Escape doubles every single quote. Nothing else is changed.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Quote returns s escaped and wrapped in single quotes. The boolean is
// false when there is nothing to quote, in which case the value should
// be written as Null. Blank but non-empty strings are quoted as is.
func Quote(s string) (string, bool) {
	esc := Escape(s)
	if esc == "" {
		return "", false
	}
	return "'" + esc + "'", true
}

// Render produces the INSERT statement for a single record. Numeric
// failures are returned as *RowError.
func Render(rec Record, table string) (Statement, error) {
	values := make([]string, numColumns)
	for i, c := range rec.cells() {
		v, err := renderValue(i, *c)
		if err != nil {
			return Statement{}, &RowError{Row: rec.Row, Column: Columns[i], Err: err}
		}
		values[i] = v
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		table, strings.Join(Columns, ", "), strings.Join(values, ", "))
	return Statement{Row: rec.Row, SQL: sql}, nil
}

func renderValue(col int, c Cell) (string, error) {
	switch col {
	case colStudentID:
		if !c.Present {
			return "", ErrMissingID
		}
		v, err := ParseInteger(c.Text)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil

	case colNumberInClass, colGrade, colRoom:
		if !c.Present {
			return Null, nil
		}
		v, err := ParseInteger(c.Text)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil

	default:
		if !c.Present {
			return Null, nil
		}
		if q, ok := Quote(c.Text); ok {
			return q, nil
		}
		return Null, nil
	}
}

// RenderAll renders every record in order. Records that fail are left
// out and their errors collected; rendering always continues.
func RenderAll(recs []Record, table string) ([]Statement, []*RowError) {
	var stmts []Statement
	var skipped []*RowError
	for _, rec := range recs {
		stmt, err := Render(rec, table)
		if err != nil {
			var rerr *RowError
			if !errors.As(err, &rerr) {
				rerr = &RowError{Row: rec.Row, Err: err}
			}
			skipped = append(skipped, rerr)
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, skipped
}
