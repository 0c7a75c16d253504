package roster

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
)

const headerComment = "-- Import students from Excel file"

// Write writes the SQL file contents: a header comment with the number
// of statements followed by one statement per line.
func Write(w io.Writer, stmts []Statement) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", headerComment)
	fmt.Fprintf(bw, "-- Total students: %d\n\n", len(stmts))
	for _, stmt := range stmts {
		bw.WriteString(stmt.SQL)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile replaces the file at path with the rendered statements in
// the given encoding (UTF-8 if nil). The content goes to a temporary
// file next to path which is renamed into place, so either the complete
// file is written or the previous one is left untouched.
func WriteFile(path string, stmts []Statement, enc encoding.Encoding) error {
	var buf bytes.Buffer
	if err := Write(&buf, stmts); err != nil {
		return err
	}

	bs := buf.Bytes()
	if enc != nil {
		var err error
		bs, err = enc.NewEncoder().Bytes(bs)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".import-*.sql")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(bs); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
