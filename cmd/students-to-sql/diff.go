package main

import (
	"bytes"
	"errors"
	"os"
	"unicode/utf8"

	diff "github.com/sourcegraph/go-diff-patch"
	"golang.org/x/text/encoding"
	"kastelo.dev/roster"
)

// diffAgainst returns a unified diff from the SQL file currently at path
// to the one that would be written for stmts. It is empty if there is
// no such file or nothing changed. The existing file is read in enc,
// falling back to UTF-8 when it does not decode cleanly.
func diffAgainst(path string, stmts []roster.Statement, enc encoding.Encoding) (string, error) {
	before, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if enc != nil {
		dec, err := enc.NewDecoder().Bytes(before)
		if err != nil {
			return "", err
		}
		// A file from an earlier run may have been written as UTF-8
		// before the output encoding was changed.
		if !bytes.ContainsRune(dec, utf8.RuneError) || !utf8.Valid(before) {
			before = dec
		}
	}

	var after bytes.Buffer
	if err := roster.Write(&after, stmts); err != nil {
		return "", err
	}
	if bytes.Equal(before, after.Bytes()) {
		return "", nil
	}
	return diff.GeneratePatch(path, string(before), after.String()), nil
}
