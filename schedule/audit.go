package schedule

import (
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/db"
)

// Report lists identifiers that occur more than once. Entries after the first
// occurrence are reported, so three copies produce two entries.
type Report struct {
	Courses     []string
	Sections    []string
	Discussions []string
	Combined    []string
}

func (r Report) Clean() bool {
	return len(r.Courses) == 0 && len(r.Sections) == 0 && len(r.Discussions) == 0 && len(r.Combined) == 0
}

func Audit(courseIds []string, feed *Feed) Report {
	var report Report

	seen := make(map[string]bool, len(courseIds))
	for _, id := range courseIds {
		if seen[id] {
			report.Courses = append(report.Courses, id)
		}
		seen[id] = true
	}

	for _, courseId := range feed.scheduledCourseIds() {
		report.Sections = append(report.Sections, duplicateSections(courseId, feed.Sections[courseId])...)
		report.Discussions = append(report.Discussions, duplicateSections(courseId, feed.Discussions[courseId])...)

		combined := append(append([]RawSection(nil), feed.Sections[courseId]...), feed.Discussions[courseId]...)
		report.Combined = append(report.Combined, duplicateSections(courseId, combined)...)
	}

	return report
}

func duplicateSections(courseId string, rows []RawSection) []string {
	var duplicates []string
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if seen[row.Section] {
			duplicates = append(duplicates, db.SectionId(courseId, row.Section))
		}
		seen[row.Section] = true
	}
	return duplicates
}

// Log emits one warning per failed check and one info line per passed check.
func (r Report) Log(logger *zap.Logger) {
	checks := []struct {
		name       string
		duplicates []string
	}{
		{"course ids", r.Courses},
		{"section numbers", r.Sections},
		{"discussion numbers", r.Discussions},
		{"section and discussion numbers", r.Combined},
	}

	for _, check := range checks {
		if len(check.duplicates) > 0 {
			logger.Warn("Duplicate "+check.name+" found", zap.Strings("duplicates", check.duplicates))
			continue
		}
		logger.Info("No duplicate "+check.name+" found")
	}
}
