// Package schedule joins the registrar's scheduling feed onto courses.
package schedule

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/papernu/paper/scrape/dataset"
	"github.com/papernu/paper/scrape/db"
)

const (
	CoursesFile     = "courses.json"
	SectionsFile    = "sections.json"
	DiscussionsFile = "discussions.json"
)

// RawSection is a section or discussion row as the feed ships it, with meeting days
// like "MoWeFr" and times like "9:30".
type RawSection struct {
	Section     string
	MeetingDays *string
	StartTime   *string
	EndTime     *string
	Extra       map[string]json.RawMessage
}

var rawSectionKeys = []string{"section", "meeting_days", "start_time", "end_time"}

func (s *RawSection) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var section RawSection
	if raw, ok := fields["section"]; ok {
		number, err := sectionNumber(raw)
		if err != nil {
			return err
		}
		section.Section = number
	}
	for key, dst := range map[string]**string{
		"meeting_days": &section.MeetingDays,
		"start_time":   &section.StartTime,
		"end_time":     &section.EndTime,
	} {
		if raw, ok := fields[key]; ok {
			if err := json.Unmarshal(raw, dst); err != nil {
				return fmt.Errorf("field %s: %w", key, err)
			}
		}
	}
	for _, key := range rawSectionKeys {
		delete(fields, key)
	}
	if len(fields) > 0 {
		section.Extra = fields
	}

	*s = section
	return nil
}

// sectionNumber accepts "20" as well as 20.
func sectionNumber(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("field section: %w", err)
	}
	return n.String(), nil
}

// Feed is one snapshot of the scheduling export.
type Feed struct {
	Courses     []*db.ScheduleCourse
	Sections    map[string][]RawSection
	Discussions map[string][]RawSection
}

// LoadFeed reads courses.json, sections.json and discussions.json from dir.
func LoadFeed(dir string) (*Feed, error) {
	var feed Feed
	if err := dataset.ReadJSON(filepath.Join(dir, CoursesFile), &feed.Courses); err != nil {
		return nil, err
	}
	if err := dataset.ReadJSON(filepath.Join(dir, SectionsFile), &feed.Sections); err != nil {
		return nil, err
	}
	if err := dataset.ReadJSON(filepath.Join(dir, DiscussionsFile), &feed.Discussions); err != nil {
		return nil, err
	}
	return &feed, nil
}

func (f *Feed) CourseIds() []string {
	ids := make([]string, 0, len(f.Courses))
	for _, course := range f.Courses {
		ids = append(ids, course.CourseId)
	}
	return ids
}

// scheduledCourseIds lists every course id with sections or discussions, sorted.
func (f *Feed) scheduledCourseIds() []string {
	ids := slices.Collect(maps.Keys(f.Sections))
	for id := range f.Discussions {
		if _, ok := f.Sections[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
