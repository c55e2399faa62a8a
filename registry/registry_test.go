package registry

import (
	"fmt"
	"testing"

	"github.com/papernu/paper/scrape/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotent(t *testing.T) {
	r := New(0)

	first := r.Register("COMP_SCI", "Computer Science")
	second := r.Register("COMP_SCI", "Comp Sci")

	assert.Equal(t, "000", first.Id)
	assert.Equal(t, first, second)
	assert.Equal(t, "Computer Science", second.Display)
	assert.Equal(t, 1, r.Len())
}

func TestRegisterFirstDisplayWins(t *testing.T) {
	r := New(0)
	r.Register("MATH", "")

	department := r.Register("MATH", "Mathematics")
	assert.Empty(t, department.Display)
}

func TestRegisterReplacesSeededDisplay(t *testing.T) {
	r := New(119)
	require.NoError(t, r.Seed(db.Department{Code: "COMP_SCI", Id: "000", Display: "Comp Sci", Color: "red"}))
	require.NoError(t, r.Seed(db.Department{Code: "MATH", Id: "001", Display: "Mathematics"}))

	first := r.Register("COMP_SCI", "Computer Science")
	second := r.Register("COMP_SCI", "CS")

	assert.Equal(t, db.Department{Code: "COMP_SCI", Id: "000", Display: "Computer Science", Color: "red"}, first)
	assert.Equal(t, first, second)

	math, ok := r.Lookup("MATH")
	require.True(t, ok)
	assert.Equal(t, "Mathematics", math.Display, "departments never registered keep the seeded display")
}

func TestRegisterAssignsSequentialIdsFromStart(t *testing.T) {
	r := New(119)

	for i := 0; i < 101; i++ {
		department := r.Register(fmt.Sprintf("DEPT_%d", i), "")
		require.Equal(t, fmt.Sprintf("%03d", 119+i), department.Id)
	}

	departments := r.Departments()
	require.Len(t, departments, 101)
	assert.Equal(t, "119", departments[0].Id)
	assert.Equal(t, "219", departments[100].Id)
	assert.Equal(t, "DEPT_100", departments[100].Code)
}

func TestShortIdsArePadded(t *testing.T) {
	r := New(7)
	assert.Equal(t, "007", r.Register("ANTHRO", "Anthropology").Id)
	assert.Equal(t, "008", r.Register("ART", "Art Theory and Practice").Id)
}

func TestLookupByShortIdInvertsRegister(t *testing.T) {
	r := New(0)
	for _, code := range []string{"ANTHRO", "BIOL_SCI", "CHEM"} {
		r.Register(code, "")
	}

	for id, code := range r.MajorIds() {
		department, ok := r.Lookup(code)
		require.True(t, ok)
		assert.Equal(t, id, department.Id)

		found, ok := r.LookupByShortId(id)
		require.True(t, ok)
		assert.Equal(t, code, found)
	}

	_, ok := r.LookupByShortId("999")
	assert.False(t, ok)
}

func TestSeedKeepsPriorIds(t *testing.T) {
	seed := []db.Department{
		{Code: "COMP_SCI", Id: "000", Display: "Computer Science", Color: "red"},
		{Code: "MATH", Id: "001", Display: "Mathematics", Color: "orange"},
	}

	r := New(119)
	for _, department := range seed {
		require.NoError(t, r.Seed(department))
	}

	assert.Equal(t, "000", r.Register("COMP_SCI", "Something Else").Id)
	assert.Equal(t, "119", r.Register("STAT", "Statistics").Id)
	assert.Equal(t, []string{"COMP_SCI", "MATH", "STAT"}, codes(r.Departments()))
}

func TestSeedTwiceChangesNothing(t *testing.T) {
	seed := []db.Department{
		{Code: "COMP_SCI", Id: "000"},
		{Code: "MATH", Id: "120"},
	}

	r := New(119)
	for range 2 {
		for _, department := range seed {
			require.NoError(t, r.Seed(department))
		}
		for _, department := range seed {
			assert.Equal(t, department.Id, r.Register(department.Code, "").Id)
		}
	}
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "121", r.Register("STAT", "").Id, "new ids continue past seeded ones")
}

func TestSeedRejectsCollisions(t *testing.T) {
	r := New(0)
	require.NoError(t, r.Seed(db.Department{Code: "COMP_SCI", Id: "000"}))

	err := r.Seed(db.Department{Code: "MATH", Id: "000"})
	assert.ErrorIs(t, err, ErrShortIdTaken)

	err = r.Seed(db.Department{Code: "COMP_SCI", Id: "005"})
	assert.ErrorIs(t, err, ErrShortIdTaken)

	assert.Error(t, r.Seed(db.Department{Id: "010"}))
}

func TestSeedWithoutIdRegisters(t *testing.T) {
	r := New(3)
	require.NoError(t, r.Seed(db.Department{Code: "ANTHRO", Display: "Anthropology"}))

	department, ok := r.Lookup("ANTHRO")
	require.True(t, ok)
	assert.Equal(t, "003", department.Id)
	assert.Equal(t, "Anthropology", department.Display)
}

func TestRenumber(t *testing.T) {
	r := New(119)
	require.NoError(t, r.Seed(db.Department{Code: "COMP_SCI", Id: "042"}))
	r.Register("MATH", "")
	r.Register("STAT", "")

	r.Renumber()

	assert.Equal(t, map[string]string{"000": "COMP_SCI", "001": "MATH", "002": "STAT"}, r.MajorIds())
	assert.Equal(t, "119", r.Register("PHYSICS", "").Id)
}

func TestColorizeCyclesPalette(t *testing.T) {
	r := New(0)
	for i := 0; i < len(DefaultPalette)+2; i++ {
		r.Register(fmt.Sprintf("DEPT_%02d", i), "")
	}

	r.Colorize(DefaultPalette)

	departments := r.Departments()
	assert.Equal(t, "red", departments[0].Color)
	assert.Equal(t, "rose", departments[16].Color)
	assert.Equal(t, "red", departments[17].Color)
	assert.Equal(t, "orange", departments[18].Color)
}

func codes(departments []db.Department) []string {
	var out []string
	for _, department := range departments {
		out = append(out, department.Code)
	}
	return out
}
