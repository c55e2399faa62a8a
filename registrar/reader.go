// Package registrar reads the registrar's course export (RO_COURSE_INFO_PLAN_NU.csv).
package registrar

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/papernu/paper/scrape/parse"
	"github.com/papernu/paper/scrape/reconcile"
)

var ErrMissingColumn = errors.New("missing column")

const (
	columnSubject           = "Subject"
	columnSubjectDescr      = "Subject Descr"
	columnCatalog           = "Catalog"
	columnLongTitle         = "Long Course Title"
	columnMinUnits          = "Min Units"
	columnRepeatable        = "Repeatable for Credit"
	columnDescription       = "Course Description"
	columnTypicallyOffered  = "Course Typically Offered"
	columnAttributeDescr    = "Course Attribute Descr"
	columnAttributeValueDes = "Course Attribute Value Descr"
	columnCareer            = "Career Descr"
	columnCourseId          = "Course ID"
)

var requiredColumns = []string{
	columnSubject,
	columnSubjectDescr,
	columnCatalog,
	columnLongTitle,
	columnMinUnits,
	columnRepeatable,
	columnDescription,
	columnTypicallyOffered,
	columnAttributeDescr,
	columnAttributeValueDes,
	columnCareer,
	columnCourseId,
}

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Reader yields one reconcile.Row per CSV record.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
	// width is one past the rightmost expected column.
	width int
	line  int
}

// NewReader consumes the header row and checks every expected column is present.
func NewReader(r io.Reader) (*Reader, error) {
	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		if _, err := buffered.Discard(len(byteOrderMark)); err != nil {
			return nil, err
		}
	}

	c := csv.NewReader(buffered)
	c.FieldsPerRecord = -1
	c.LazyQuotes = true

	header, err := c.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	width := 0
	for _, name := range requiredColumns {
		i, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrMissingColumn)
		}
		width = max(width, i+1)
	}

	return &Reader{csv: c, columns: columns, width: width, line: 1}, nil
}

func (r *Reader) field(record []string, name string) string {
	return record[r.columns[name]]
}

// Next returns io.EOF after the last record. A record too short to hold every
// expected column is an ErrMissingColumn error.
func (r *Reader) Next() (reconcile.Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return reconcile.Row{}, io.EOF
		}
		return reconcile.Row{}, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	r.line++

	if len(record) < r.width {
		return reconcile.Row{}, fmt.Errorf("line %d: %d of %d fields: %w", r.line, len(record), r.width, ErrMissingColumn)
	}

	return reconcile.Row{
		DepartmentCode:    r.field(record, columnSubject),
		DepartmentDisplay: r.field(record, columnSubjectDescr),
		CatalogNumber:     r.field(record, columnCatalog),
		Name:              r.field(record, columnLongTitle),
		Units:             r.field(record, columnMinUnits),
		Repeatable:        parse.Repeatable(parse.Clean(r.field(record, columnRepeatable))),
		Description:       r.field(record, columnDescription),
		TermsOffered:      r.field(record, columnTypicallyOffered),
		AttributeCategory: r.field(record, columnAttributeDescr),
		AttributeValue:    r.field(record, columnAttributeValueDes),
		Career:            r.field(record, columnCareer),
		SourceRef:         r.field(record, columnCourseId),
	}, nil
}
