package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kingpin"
	"kastelo.dev/roster"
	"kastelo.dev/roster/excel"
	"kastelo.dev/roster/postgres"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("Error %v", err)
	}
}

// run executes one export. Per-row problems are printed to out; the
// returned error is always fatal.
func run(args []string, out io.Writer) error {
	app := kingpin.New("students-to-sql", "Convert a student list into SQL INSERT statements.")
	input := app.Flag("input", "Student list (.xlsx, .xlsm or .csv; legacy .xls must be resaved as .xlsx)").Short('i').Default("student list.xlsx").String()
	output := app.Flag("output", "SQL file to write").Short('o').Default("database/import_students.sql").String()
	sheet := app.Flag("sheet", "Sheet to read (default first sheet)").String()
	inputEncoding := app.Flag("input-encoding", "Text encoding of CSV input").Default("utf-8").String()
	outputEncoding := app.Flag("output-encoding", "Text encoding of the SQL file").Default("utf-8").String()
	report := app.Flag("report", "Write an Excel report of exported and skipped rows").String()
	showDiff := app.Flag("diff", "Show changes against the existing SQL file (read in the output encoding, or as UTF-8 if it does not decode)").Bool()
	dsn := app.Flag("dsn", "Also insert the students into this PostgreSQL database").Envar("DATABASE_URL").String()
	if _, err := app.Parse(args); err != nil {
		return err
	}

	logger := log.New(out, "", 0)

	opts := roster.Options{
		Sheet:          *sheet,
		InputEncoding:  *inputEncoding,
		OutputEncoding: *outputEncoding,
	}.WithDefaults()

	enc, err := roster.LookupEncoding(opts.OutputEncoding)
	if err != nil {
		return err
	}

	recs, err := roster.Load(*input, opts)
	if err != nil {
		return fmt.Errorf("reading Excel file: %w", err)
	}
	logger.Printf("Successfully loaded Excel file with %d rows", len(recs))

	recs = roster.Clean(recs)
	logger.Printf("After cleaning: %d valid student records", len(recs))

	stmts, skipped := roster.RenderAll(recs, opts.Table)
	for _, rerr := range skipped {
		logger.Printf("Error processing row %d: %v", rerr.Row, rerr)
	}

	if *showDiff {
		patch, err := diffAgainst(*output, stmts, enc)
		if err != nil {
			return fmt.Errorf("comparing with %s: %w", *output, err)
		}
		if patch == "" {
			logger.Printf("No changes to %s", *output)
		} else {
			fmt.Fprint(out, patch)
		}
	}

	if err := roster.WriteFile(*output, stmts, enc); err != nil {
		return fmt.Errorf("writing SQL file: %w", err)
	}
	logger.Printf("Generated %d SQL statements", len(stmts))
	logger.Printf("File saved as: %s", *output)

	if *report != "" {
		bs, err := excel.ReportXLSX(stmts, skipped)
		if err != nil {
			return fmt.Errorf("creating Excel report: %w", err)
		}
		if err := os.WriteFile(*report, bs, 0o644); err != nil {
			return fmt.Errorf("writing Excel report: %w", err)
		}
		logger.Printf("Report saved as: %s", *report)
	}

	if *dsn != "" {
		n, err := postgres.Apply(context.Background(), *dsn, stmts)
		if err != nil {
			return fmt.Errorf("importing into database: %w", err)
		}
		logger.Printf("Imported %d students into the database", n)
	}
	return nil
}
