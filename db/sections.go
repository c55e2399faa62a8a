package db

import (
	"encoding/json"
	"fmt"
)

// UniqueIdField is the scheduling feed's internal row key. It never leaves the pipeline.
const UniqueIdField = "unique_id"

// Section is one scheduled offering (lecture or discussion) of a course.
// Fields the pipeline does not interpret are carried through in Extra.
type Section struct {
	SectionId   string
	Section     string
	MeetingDays *Days
	StartTime   *Time
	EndTime     *Time
	Extra       map[string]json.RawMessage
}

var sectionKeys = []string{"section_id", "section", "meeting_days", "start_time", "end_time"}

func (s Section) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+len(sectionKeys))
	for k, v := range s.Extra {
		out[k] = v
	}
	out["section_id"] = s.SectionId
	out["section"] = s.Section
	if s.MeetingDays != nil {
		out["meeting_days"] = *s.MeetingDays
	}
	if s.StartTime != nil {
		out["start_time"] = *s.StartTime
	}
	if s.EndTime != nil {
		out["end_time"] = *s.EndTime
	}
	return json.Marshal(out)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var section Section
	if err := decodeField(fields, "section_id", &section.SectionId); err != nil {
		return err
	}
	if err := decodeField(fields, "section", &section.Section); err != nil {
		return err
	}
	if err := decodeField(fields, "meeting_days", &section.MeetingDays); err != nil {
		return err
	}
	if err := decodeField(fields, "start_time", &section.StartTime); err != nil {
		return err
	}
	if err := decodeField(fields, "end_time", &section.EndTime); err != nil {
		return err
	}
	for _, k := range sectionKeys {
		delete(fields, k)
	}
	if len(fields) > 0 {
		section.Extra = fields
	}

	*s = section
	return nil
}

// ScheduleCourse is a course as it appears in the scheduling feed.
type ScheduleCourse struct {
	CourseId string
	Extra    map[string]json.RawMessage
	Sections []Section
}

func (c *ScheduleCourse) ScheduleId() string {
	return c.CourseId
}

func (c *ScheduleCourse) SetSections(sections []Section) {
	c.Sections = sections
}

func (c *ScheduleCourse) DropExtra(key string) {
	delete(c.Extra, key)
	if len(c.Extra) == 0 {
		c.Extra = nil
	}
}

func (c ScheduleCourse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+2)
	for k, v := range c.Extra {
		out[k] = v
	}
	out["course_id"] = c.CourseId
	if c.Sections != nil {
		out["sections"] = c.Sections
	}
	return json.Marshal(out)
}

func (c *ScheduleCourse) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var course ScheduleCourse
	if err := decodeField(fields, "course_id", &course.CourseId); err != nil {
		return err
	}
	if err := decodeField(fields, "sections", &course.Sections); err != nil {
		return err
	}
	delete(fields, "course_id")
	delete(fields, "sections")
	if len(fields) > 0 {
		course.Extra = fields
	}

	*c = course
	return nil
}

// decodeField unmarshals fields[key] into v. A missing key or a JSON null leaves v untouched.
func decodeField(fields map[string]json.RawMessage, key string, v any) error {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	return nil
}
