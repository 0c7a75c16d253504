package roster

import (
	"fmt"

	"dario.cat/mergo"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const DefaultTable = "students_master"

type Options struct {
	Sheet          string // XLSX sheet; the first sheet when empty
	InputEncoding  string // CSV sources only
	OutputEncoding string
	Table          string
}

var DefaultOptions = Options{
	InputEncoding:  "utf-8",
	OutputEncoding: "utf-8",
	Table:          DefaultTable,
}

// WithDefaults returns a copy of o where every unset field is taken from
// DefaultOptions.
func (o Options) WithDefaults() Options {
	// Merge only fails for mismatched or non-struct types.
	_ = mergo.Merge(&o, DefaultOptions)
	return o
}

// LookupEncoding resolves a WHATWG encoding name or label such as
// "utf-8", "windows-874" or "tis-620".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}
	return enc, nil
}
