package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/papernu/paper/scrape/db"
	"github.com/papernu/paper/scrape/reconcile"
	"github.com/papernu/paper/scrape/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMajorsKeepFileOrder(t *testing.T) {
	input := `{"STAT":{"id":"002","display":"Statistics"},"ANTHRO":{"id":"000"},"MATH":{"id":"001","color":"red"}}`

	var majors Majors
	require.NoError(t, json.Unmarshal([]byte(input), &majors))

	want := Majors{
		{Code: "STAT", Id: "002", Display: "Statistics"},
		{Code: "ANTHRO", Id: "000"},
		{Code: "MATH", Id: "001", Color: "red"},
	}
	if diff := cmp.Diff(want, majors); diff != "" {
		t.Errorf("majors mismatch (-want +got):\n%s", diff)
	}

	data, err := json.Marshal(majors)
	require.NoError(t, err)
	assert.Equal(t, `{"STAT":{"display":"Statistics","id":"002"},"ANTHRO":{"id":"000"},"MATH":{"id":"001","color":"red"}}`, string(data))
}

func TestMajorsRejectNonObject(t *testing.T) {
	var majors Majors
	assert.Error(t, json.Unmarshal([]byte(`["STAT"]`), &majors))
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")

	reg := registry.New(0)
	engine := reconcile.NewEngine(reg)
	require.NoError(t, engine.Add(reconcile.Row{
		DepartmentCode:    "COMP_SCI",
		DepartmentDisplay: "Computer Science",
		CatalogNumber:     "111-0",
		Name:              "Fundamentals of Computer Programming",
		Units:             "1",
		Description:       "Programming <in> C & Racket. Prereq: none.",
	}))
	written := FromResult(engine.Result())
	reg.Colorize(registry.DefaultPalette)
	require.NoError(t, Write(path, written))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n    \"courses\": ["))
	assert.Contains(t, string(raw), "<in> C & Racket")
	assert.NotContains(t, string(raw), "null")

	read, err := Read(path)
	require.NoError(t, err)
	if diff := cmp.Diff(written.Courses, read.Courses); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]string{"000": "COMP_SCI"}, read.MajorIds)
	require.Len(t, read.Majors, 1)
	assert.Equal(t, db.Department{Code: "COMP_SCI", Display: "Computer Science", Id: "000"}, read.Majors[0], "colors are applied after the snapshot")
}

func TestSeedRegistryIsStable(t *testing.T) {
	d := &Dataset{Majors: Majors{
		{Code: "MATH", Id: "001"},
		{Code: "COMP_SCI", Id: "000"},
	}}

	for range 2 {
		reg := registry.New(119)
		require.NoError(t, d.SeedRegistry(reg))
		d.SetMajors(reg)
	}

	assert.Equal(t, Majors{{Code: "MATH", Id: "001"}, {Code: "COMP_SCI", Id: "000"}}, d.Majors)
	assert.Equal(t, map[string]string{"000": "COMP_SCI", "001": "MATH"}, d.MajorIds)
}

func TestCourseIndex(t *testing.T) {
	d := &Dataset{Courses: []db.Course{{Id: "A 1"}, {Id: "B 2"}, {Id: "A 1"}}}
	assert.Equal(t, map[string]int{"A 1": 0, "B 2": 1}, d.CourseIndex())
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteOmitsMissingMajors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	prereqs := "MATH 218-3"
	d := &Dataset{Courses: []db.Course{{Id: "MATH 220-1", Name: "Calculus", Description: "Limits.", Prereqs: &prereqs}}}

	require.NoError(t, Write(path, d))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "null")
	assert.NotContains(t, string(raw), "major_ids")
	assert.NotContains(t, string(raw), "majors")

	read, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, read.Majors)
	assert.Nil(t, read.MajorIds)
}
