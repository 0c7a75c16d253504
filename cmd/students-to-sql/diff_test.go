package main

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"kastelo.dev/roster"
)

func TestDiffAgainst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import_students.sql")
	first := []roster.Statement{
		{Row: 2, SQL: "INSERT INTO students_master (student_id, first_name) VALUES (1001, 'สมชาย');"},
	}

	patch, err := diffAgainst(path, first, charmap.Windows874)
	if err != nil || patch != "" {
		t.Fatalf("expected no diff without previous file, got %q, %v", patch, err)
	}

	if err := roster.WriteFile(path, first, charmap.Windows874); err != nil {
		t.Fatal(err)
	}
	patch, err = diffAgainst(path, first, charmap.Windows874)
	if err != nil || patch != "" {
		t.Fatalf("expected no diff for identical content, got %q, %v", patch, err)
	}

	second := append(first, roster.Statement{Row: 3, SQL: "INSERT INTO students_master (student_id, first_name) VALUES (1002, 'Ann');"})
	patch, err = diffAgainst(path, second, charmap.Windows874)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"-- Total students: 1", "+-- Total students: 2", "+INSERT INTO students_master (student_id, first_name) VALUES (1002, 'Ann');"} {
		if !strings.Contains(patch, want) {
			t.Errorf("patch lacks %q:\n%s", want, patch)
		}
	}
	if strings.Contains(patch, "+INSERT INTO students_master (student_id, first_name) VALUES (1001") {
		t.Errorf("unchanged statement reported as added:\n%s", patch)
	}
}

func TestDiffAgainstPreviousUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import_students.sql")
	stmts := []roster.Statement{
		{Row: 2, SQL: "INSERT INTO students_master (student_id, first_name) VALUES (1001, 'กมล');"},
	}

	// Written as UTF-8, compared after switching to windows-874.
	if err := roster.WriteFile(path, stmts, nil); err != nil {
		t.Fatal(err)
	}
	patch, err := diffAgainst(path, stmts, charmap.Windows874)
	if err != nil {
		t.Fatal(err)
	}
	if patch != "" {
		t.Errorf("expected no diff for unchanged UTF-8 file, got:\n%s", patch)
	}
}
