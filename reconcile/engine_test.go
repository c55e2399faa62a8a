package reconcile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/papernu/paper/scrape/db"
	"github.com/papernu/paper/scrape/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func registrarRow(code, number, name string) Row {
	return Row{
		DepartmentCode:    code,
		DepartmentDisplay: code + " Department",
		CatalogNumber:     number,
		Name:              name,
		Units:             "1.00",
		Description:       "Covers " + name + ". Prereq: none.",
		TermsOffered:      "Fall, Spring",
		Career:            "Undergraduate",
		SourceRef:         "00" + number,
	}
}

func TestEngineBuildsCourseFromFirstRow(t *testing.T) {
	e := NewEngine(registry.New(0))
	require.NoError(t, e.Add(registrarRow("COMP_SCI", "111-0", "Fundamentals of Computer Programming")))

	got := e.Result()

	want := []db.Course{{
		Id:          "COMP_SCI 111-0",
		Name:        "Fundamentals of Computer Programming",
		Units:       "1.00",
		Description: "Covers Fundamentals of Computer Programming.",
		Prereqs:     ptr("none"),
		Offered:     db.Terms(0).With(db.TermFall).With(db.TermSpring),
		Career:      "Undergraduate",
		SourceRef:   "00111-0",
	}}
	if diff := cmp.Diff(want, got.Courses); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]string{"000": "COMP_SCI"}, got.MajorIds)
	assert.Equal(t, "COMP_SCI Department", got.Departments[0].Display)
}

func TestEngineAppendsDistroOnRepeat(t *testing.T) {
	first := registrarRow("HISTORY", "200-0", "Global History")
	first.AttributeCategory = "Distribution Requirement"
	first.AttributeValue = "Historical Studies Distro Area"

	second := registrarRow("HISTORY", "200-0", "A Different Title")
	second.Units = "0.50"
	second.AttributeCategory = "  DISTRIBUTION requirement "
	second.AttributeValue = "Social and Behavioral Sciences Distro Area"

	e := NewEngine(registry.New(0))
	require.NoError(t, e.AddAll(Rows([]Row{first, second})))

	courses := e.Result().Courses
	require.Len(t, courses, 1)
	assert.Equal(t, "43", courses[0].Distros.String())
	assert.Equal(t, "Global History", courses[0].Name)
	assert.Equal(t, "1.00", courses[0].Units)
}

func TestEngineRepeatWithoutDistroChangesNothing(t *testing.T) {
	first := registrarRow("MATH", "220-1", "Single-Variable Differential Calculus")
	second := registrarRow("MATH", "220-1", "Other")
	second.AttributeCategory = "Weinberg Advanced Writing"
	second.AttributeValue = "Natural Sciences"
	third := registrarRow("MATH", "220-1", "Other")
	third.AttributeCategory = "Distribution"
	third.AttributeValue = "Unknown area"

	e := NewEngine(registry.New(0))
	require.NoError(t, e.AddAll(Rows([]Row{first, second, third})))

	courses := e.Result().Courses
	require.Len(t, courses, 1)
	assert.Nil(t, courses[0].Distros)
}

func TestEngineKeepsDuplicateDistros(t *testing.T) {
	rows := make([]Row, 3)
	for i := range rows {
		rows[i] = registrarRow("PHIL", "110-0", "Introduction to Philosophy")
		rows[i].AttributeCategory = "Distribution"
		rows[i].AttributeValue = "Ethics and Values"
	}

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"concatenates by default", nil, "555"},
		{"dedup option", []Option{WithDistroDedup()}, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(registry.New(0), tt.opts...)
			require.NoError(t, e.AddAll(Rows(rows)))
			assert.Equal(t, tt.want, e.Result().Courses[0].Distros.String())
		})
	}
}

func TestEngineSortsWithinDepartmentsOnly(t *testing.T) {
	rows := []Row{
		registrarRow("STAT", "303-0", "c"),
		registrarRow("STAT", "202-0", "a"),
		registrarRow("ANTHRO", "390-0", "d"),
		registrarRow("ANTHRO", "101-6", "b"),
		registrarRow("STAT", "210-0", "e"),
	}

	e := NewEngine(registry.New(0))
	require.NoError(t, e.AddAll(Rows(rows)))

	var ids []string
	for _, course := range e.Result().Courses {
		ids = append(ids, course.Id)
	}
	assert.Equal(t, []string{"STAT 202-0", "STAT 210-0", "STAT 303-0", "ANTHRO 101-6", "ANTHRO 390-0"}, ids)
}

func TestEngineSeededDepartmentsComeFirst(t *testing.T) {
	reg := registry.New(119)
	require.NoError(t, reg.Seed(db.Department{Code: "MATH", Id: "001"}))
	require.NoError(t, reg.Seed(db.Department{Code: "LING", Id: "002"}))

	e := NewEngine(reg)
	require.NoError(t, e.Add(registrarRow("ANTHRO", "101-6", "x")))
	require.NoError(t, e.Add(registrarRow("MATH", "220-1", "y")))

	result := e.Result()
	assert.Equal(t, []string{"MATH 220-1", "ANTHRO 101-6"}, []string{result.Courses[0].Id, result.Courses[1].Id})
	assert.Equal(t, map[string]string{"001": "MATH", "002": "LING", "119": "ANTHRO"}, result.MajorIds)
	assert.Equal(t, "MATH Department", result.Departments[0].Display)
}

func TestEngineRejectsEmptyIds(t *testing.T) {
	e := NewEngine(registry.New(0))

	err := e.Add(Row{DepartmentCode: "MATH", CatalogNumber: " \n"})
	assert.ErrorIs(t, err, ErrEmptyCourseId)

	err = e.AddAll(Rows([]Row{registrarRow("MATH", "220-1", "x"), {CatalogNumber: "101"}}))
	assert.ErrorIs(t, err, ErrEmptyCourseId)
}

type failingSource struct{}

func (failingSource) Next() (Row, error) {
	return Row{}, errors.New("read failed")
}

func TestAddAllPropagatesSourceErrors(t *testing.T) {
	e := NewEngine(registry.New(0))
	assert.EqualError(t, e.AddAll(failingSource{}), "read failed")
}

func TestResultIsASnapshot(t *testing.T) {
	row := registrarRow("PHIL", "110-0", "Introduction to Philosophy")
	row.AttributeCategory = "Distribution"
	row.AttributeValue = "Ethics"

	e := NewEngine(registry.New(0))
	require.NoError(t, e.Add(row))
	before := e.Result()

	require.NoError(t, e.Add(row))
	require.NoError(t, e.Add(registrarRow("PHIL", "109-0", "x")))

	assert.Len(t, before.Courses, 1)
	assert.Equal(t, "5", before.Courses[0].Distros.String())
	assert.Equal(t, "55", e.Result().Courses[1].Distros.String())
}
