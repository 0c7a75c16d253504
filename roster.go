package roster // import "kastelo.dev/roster"

import "fmt"

// Columns is the canonical column order of the source sheet and of the
// generated INSERT statements.
var Columns = []string{
	"student_id",
	"number_in_class",
	"prefix",
	"first_name",
	"last_name",
	"grade",
	"room",
}

const (
	colStudentID = iota
	colNumberInClass
	colPrefix
	colFirstName
	colLastName
	colGrade
	colRoom
	numColumns
)

// Cell is a single source value. An empty cell in the source is not
// Present.
type Cell struct {
	Text    string
	Present bool
}

func present(s string) Cell {
	return Cell{Text: s, Present: s != ""}
}

type Record struct {
	Row           int // sheet row number, header is row 1
	StudentID     Cell
	NumberInClass Cell
	Prefix        Cell
	FirstName     Cell
	LastName      Cell
	Grade         Cell
	Room          Cell
}

func (r *Record) cells() [numColumns]*Cell {
	return [numColumns]*Cell{
		&r.StudentID,
		&r.NumberInClass,
		&r.Prefix,
		&r.FirstName,
		&r.LastName,
		&r.Grade,
		&r.Room,
	}
}

type Statement struct {
	Row int
	SQL string
}

// RowError is a failure confined to one source row. The row is skipped
// and the run continues.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Clean removes records without a student ID, keeping the order of the
// rest.
func Clean(recs []Record) []Record {
	res := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if !rec.StudentID.Present {
			continue
		}
		res = append(res, rec)
	}
	return res
}
