package schedule

import (
	"fmt"
	"maps"

	"github.com/papernu/paper/scrape/db"
	"github.com/papernu/paper/scrape/parse"
)

// Schedulable is anything sections can be attached to, keyed by course id.
type Schedulable interface {
	ScheduleId() string
	SetSections([]db.Section)
}

type extraDropper interface {
	DropExtra(key string)
}

// Attach gives every course its sections followed by its discussions. Courses the
// feed has nothing for end up with an empty list. A malformed time aborts the run.
func Attach[T Schedulable](courses []T, feed *Feed) error {
	for _, course := range courses {
		if dropper, ok := any(course).(extraDropper); ok {
			dropper.DropExtra(db.UniqueIdField)
		}

		courseId := course.ScheduleId()
		raw := feed.Sections[courseId]
		sections := make([]db.Section, 0, len(raw)+len(feed.Discussions[courseId]))
		for _, rows := range [][]RawSection{raw, feed.Discussions[courseId]} {
			for _, row := range rows {
				section, err := normalize(courseId, row)
				if err != nil {
					return err
				}
				sections = append(sections, section)
			}
		}
		course.SetSections(sections)
	}
	return nil
}

func normalize(courseId string, row RawSection) (db.Section, error) {
	section := db.Section{
		SectionId: db.SectionId(courseId, row.Section),
		Section:   row.Section,
	}

	if row.MeetingDays != nil {
		days := parse.MeetingDays(*row.MeetingDays)
		section.MeetingDays = &days
	}
	if row.StartTime != nil {
		start, err := parse.ParseTime(*row.StartTime)
		if err != nil {
			return db.Section{}, fmt.Errorf("section %s start_time: %w", section.SectionId, err)
		}
		section.StartTime = &start
	}
	if row.EndTime != nil {
		end, err := parse.ParseTime(*row.EndTime)
		if err != nil {
			return db.Section{}, fmt.Errorf("section %s end_time: %w", section.SectionId, err)
		}
		section.EndTime = &end
	}

	if len(row.Extra) > 0 {
		extra := maps.Clone(row.Extra)
		delete(extra, db.UniqueIdField)
		if len(extra) > 0 {
			section.Extra = extra
		}
	}
	return section, nil
}
