package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rhyrak/go-pick/pkg/model"
)

var ErrMissingColumn = errors.New("missing column")

// Columns every offering table must carry.
var requiredColumns = []string{"Course", "Days", "Start Time", "End Time"}

// RowError describes a rejected table row. Line is 1-based and counts the
// header.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Table is the validated session table. Rows holds every row that has a
// course code after forward filling, rejected ones included, in table order.
type Table struct {
	Sessions []model.Session
	Rows     []model.Session
	Rejected []RowError
}

// LoadSessions reads and validates the session table stored at path.
func LoadSessions(path string, delim rune) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadSessions(f, delim)
	if err != nil {
		return Table{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return table, nil
}

// ReadSessions parses an offering table. Continuation rows with an empty
// Course column inherit code, name and credits from the row above. Rows
// that still lack a code, days or times are rejected and reported, not
// returned.
func ReadSessions(in io.Reader, delim rune) (Table, error) {
	r := csv.NewReader(in)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("%w: empty table", ErrMissingColumn)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	for _, col := range requiredColumns {
		if !containsSTR(header, col) {
			return Table{}, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var rows []*model.Session
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &rows); err != nil {
		return Table{}, fmt.Errorf("decoding sessions: %w", err)
	}

	var table Table
	var last model.Session
	for i, row := range rows {
		line := i + 2
		trimSession(row)

		if row.FullCode == "" {
			if last.FullCode == "" {
				table.Rejected = append(table.Rejected, RowError{Line: line, Reason: "no course code"})
				continue
			}
			row.FullCode = last.FullCode
			if row.CourseName == "" {
				row.CourseName = last.CourseName
			}
			if row.Credits == "" {
				row.Credits = last.Credits
			}
		}
		last = *row
		table.Rows = append(table.Rows, *row)

		if reason := validateSession(row); reason != "" {
			table.Rejected = append(table.Rejected, RowError{Line: line, Reason: row.FullCode + ": " + reason})
			continue
		}
		table.Sessions = append(table.Sessions, *row)
	}
	return table, nil
}

func validateSession(s *model.Session) string {
	if s.Days == "" {
		return "no days"
	}
	for _, letter := range s.Days {
		if letter == ',' || letter == ' ' {
			continue
		}
		if _, ok := model.ParseDay(letter); !ok {
			return fmt.Sprintf("unknown day %q", letter)
		}
	}
	if s.StartTime == "" || s.EndTime == "" {
		return "missing start or end time"
	}
	return ""
}

func trimSession(s *model.Session) {
	for _, f := range []*string{
		&s.Number, &s.FullCode, &s.CourseName, &s.Credits, &s.Instructor, &s.Room,
		&s.Days, &s.StartTime, &s.EndTime, &s.MaxEnrollment, &s.TotalEnrollment,
	} {
		*f = strings.TrimSpace(*f)
	}
}

func containsSTR(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// recordReader replays already read records to gocsv.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}
