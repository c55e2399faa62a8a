// Package reconcile merges source rows into one record per course.
package reconcile

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/papernu/paper/scrape/db"
	"github.com/papernu/paper/scrape/parse"
	"github.com/papernu/paper/scrape/registry"
)

var ErrEmptyCourseId = errors.New("row has no course id")

// Row is the source-neutral shape both the catalog and the registrar feed are mapped into.
type Row struct {
	DepartmentCode    string
	DepartmentDisplay string
	CatalogNumber     string
	Name              string
	Units             string
	Repeatable        bool
	Description       string
	TermsOffered      string
	AttributeCategory string
	AttributeValue    string
	Career            string
	SourceRef         string
}

// RowSource yields rows in source order. Next returns io.EOF when exhausted.
type RowSource interface {
	Next() (Row, error)
}

type sliceSource struct {
	rows []Row
}

// Rows adapts an in-memory slice to a RowSource.
func Rows(rows []Row) RowSource {
	return &sliceSource{rows: rows}
}

func (s *sliceSource) Next() (Row, error) {
	if len(s.rows) == 0 {
		return Row{}, io.EOF
	}
	row := s.rows[0]
	s.rows = s.rows[1:]
	return row, nil
}

type Option func(*Engine)

// WithDistroDedup skips distribution tags a course already carries. Without it repeats
// are appended again, which is what earlier datasets contain.
func WithDistroDedup() Option {
	return func(e *Engine) {
		e.dedupDistros = true
	}
}

type department struct {
	code    string
	courses []*db.Course
	byId    map[string]*db.Course
}

type Engine struct {
	registry     *registry.Registry
	dedupDistros bool
	departments  []*department
	byCode       map[string]*department
}

// NewEngine starts with one empty bucket per department already in reg, so seeded
// departments keep their place in the output.
func NewEngine(reg *registry.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		byCode:   make(map[string]*department),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, d := range reg.Departments() {
		e.bucket(d.Code)
	}
	return e
}

func (e *Engine) bucket(code string) *department {
	if d, ok := e.byCode[code]; ok {
		return d
	}
	d := &department{code: code, byId: make(map[string]*db.Course)}
	e.departments = append(e.departments, d)
	e.byCode[code] = d
	return d
}

func (e *Engine) Add(row Row) error {
	code := parse.Clean(row.DepartmentCode)
	number := parse.Clean(row.CatalogNumber)
	if code == "" || number == "" {
		return fmt.Errorf("department %q catalog number %q: %w", code, number, ErrEmptyCourseId)
	}

	e.registry.Register(code, strings.TrimSpace(row.DepartmentDisplay))
	d := e.bucket(code)

	id := db.CourseId(code, number)
	if existing, ok := d.byId[id]; ok {
		if distro, ok := rowDistro(row); ok {
			if !e.dedupDistros || !existing.Distros.Contains(distro) {
				existing.Distros = append(existing.Distros, distro)
			}
		}
		return nil
	}

	course := newCourse(id, row)
	d.courses = append(d.courses, course)
	d.byId[id] = course
	return nil
}

func (e *Engine) AddAll(rows RowSource) error {
	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := e.Add(row); err != nil {
			return err
		}
	}
}

func rowDistro(row Row) (db.Distro, bool) {
	if !strings.Contains(strings.ToLower(parse.Clean(row.AttributeCategory)), "distribution") {
		return 0, false
	}
	return parse.DistroCategory(parse.Clean(row.AttributeValue))
}

func newCourse(id string, row Row) *db.Course {
	description := parse.SplitDescription(parse.Clean(row.Description))
	course := &db.Course{
		Id:          id,
		Name:        parse.Clean(row.Name),
		Units:       parse.Clean(row.Units),
		Repeatable:  row.Repeatable,
		Description: description.Text,
		Prereqs:     description.Prereqs,
		Offered:     parse.TermsOffered(parse.Clean(row.TermsOffered)),
		Career:      parse.Clean(row.Career),
		SourceRef:   parse.Clean(row.SourceRef),
	}
	if distro, ok := rowDistro(row); ok {
		course.Distros = db.Distros{distro}
	}
	return course
}

// Result is a snapshot; later Adds do not change it.
type Result struct {
	Courses     []db.Course
	Departments []db.Department
	MajorIds    map[string]string
}

func (e *Engine) Result() Result {
	var courses []db.Course
	for _, d := range e.departments {
		sorted := make([]db.Course, 0, len(d.courses))
		for _, course := range d.courses {
			c := *course
			c.Distros = slices.Clone(course.Distros)
			sorted = append(sorted, c)
		}
		slices.SortStableFunc(sorted, func(a, b db.Course) int {
			return strings.Compare(a.Id, b.Id)
		})
		courses = append(courses, sorted...)
	}

	return Result{
		Courses:     courses,
		Departments: e.registry.Departments(),
		MajorIds:    e.registry.MajorIds(),
	}
}
