package schedule

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/papernu/paper/scrape/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func loadTestFeed(t *testing.T) *Feed {
	t.Helper()
	feed, err := LoadFeed(testdataPath("feed"))
	require.NoError(t, err)
	return feed
}

func TestLoadFeed(t *testing.T) {
	feed := loadTestFeed(t)

	assert.Equal(t, []string{"COMP_SCI 111-0", "COMP_SCI 213-0", "MATH 220-1"}, feed.CourseIds())
	require.Len(t, feed.Sections["COMP_SCI 111-0"], 2)
	assert.Equal(t, "21", feed.Sections["COMP_SCI 111-0"][1].Section)
	assert.Nil(t, feed.Sections["COMP_SCI 213-0"][0].MeetingDays)
}

func TestAttachScheduleCourses(t *testing.T) {
	feed := loadTestFeed(t)

	require.NoError(t, Attach(feed.Courses, feed))

	data, err := json.Marshal(feed.Courses)
	require.NoError(t, err)

	want := `[
		{"course_id": "COMP_SCI 111-0", "title": "Fundamentals of Computer Programming", "sections": [
			{"section_id": "COMP_SCI 111-0-20", "section": "20", "meeting_days": "024", "start_time": {"h": 9, "m": 0}, "end_time": {"h": 9, "m": 50}, "room": "Tech LR3", "instructors": ["Connor Bain"]},
			{"section_id": "COMP_SCI 111-0-21", "section": "21", "meeting_days": "13", "start_time": {"h": 14, "m": 0}, "end_time": {"h": 15, "m": 20}, "room": null},
			{"section_id": "COMP_SCI 111-0-60", "section": "60", "meeting_days": "3", "start_time": {"h": 17, "m": 0}, "end_time": {"h": 17, "m": 50}, "component": "DIS"}
		]},
		{"course_id": "COMP_SCI 213-0", "title": "Introduction to Computer Systems", "sections": [
			{"section_id": "COMP_SCI 213-0-1", "section": "1"}
		]},
		{"course_id": "MATH 220-1", "title": "Single-Variable Differential Calculus", "sections": []}
	]`
	assert.JSONEq(t, want, string(data))
}

func TestAttachDatasetCourses(t *testing.T) {
	feed := loadTestFeed(t)
	courses := []db.Course{{Id: "COMP_SCI 213-0"}, {Id: "PHIL 110-0"}}

	targets := make([]*db.Course, len(courses))
	for i := range courses {
		targets[i] = &courses[i]
	}
	require.NoError(t, Attach(targets, feed))

	require.Len(t, courses[0].Sections, 1)
	assert.Equal(t, "COMP_SCI 213-0-1", courses[0].Sections[0].SectionId)
	assert.Empty(t, courses[1].Sections)
}

func TestAttachRejectsMalformedTime(t *testing.T) {
	bad := "9.30"
	feed := &Feed{Sections: map[string][]RawSection{
		"MATH 220-1": {{Section: "1", StartTime: &bad}},
	}}

	err := Attach([]*db.Course{{Id: "MATH 220-1"}}, feed)
	assert.ErrorContains(t, err, "MATH 220-1-1 start_time")
}

func TestRawSectionRejectsBadNumber(t *testing.T) {
	var section RawSection
	assert.Error(t, json.Unmarshal([]byte(`{"section": true}`), &section))
}
