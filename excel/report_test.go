package excel

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
	"kastelo.dev/roster"
)

func TestReportXLSX(t *testing.T) {
	stmts := []roster.Statement{
		{Row: 2, SQL: "INSERT INTO students_master (student_id) VALUES (1001);"},
		{Row: 4, SQL: "INSERT INTO students_master (student_id) VALUES (1003);"},
	}
	skipped := []*roster.RowError{
		{Row: 5, Column: "grade", Err: errors.New("not an integer: \"tenth\"")},
	}

	bs, err := ReportXLSX(stmts, skipped)
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(bs))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); !reflect.DeepEqual(sheets, []string{ExportedSheet, SkippedSheet}) {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows(ExportedSheet)
	if err != nil {
		t.Fatal(err)
	}
	expected := [][]string{
		{"Row", "Statement"},
		{"2", stmts[0].SQL},
		{"4", stmts[1].SQL},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("exported mismatch\n%q\n%q", rows, expected)
	}

	rows, err = f.GetRows(SkippedSheet)
	if err != nil {
		t.Fatal(err)
	}
	expected = [][]string{
		{"Row", "Column", "Reason"},
		{"5", "grade", `not an integer: "tenth"`},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("skipped mismatch\n%q\n%q", rows, expected)
	}
}

func TestReportXLSXEmpty(t *testing.T) {
	bs, err := ReportXLSX(nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(bs))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(SkippedSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("expected only the header row, got %q", rows)
	}
}

func TestMergeStyles(t *testing.T) {
	s := mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom"))
	if s.Font == nil || !s.Font.Bold {
		t.Error("font not merged")
	}
	if len(s.Border) != 1 || s.Border[0].Type != "bottom" {
		t.Errorf("border not merged: %+v", s.Border)
	}
	if s.Fill.Pattern != 1 {
		t.Error("fill lost")
	}
	if mergeStyles() != nil {
		t.Error("expected nil for no styles")
	}
}
