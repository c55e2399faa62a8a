package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const listDepartments = `SELECT code, short_id, display, color FROM departments ORDER BY short_id`
// releaseShortIds parks the short id of every department missing from a publish on its own
// code, so the incoming ids can take the numbers over.
const releaseShortIds = `UPDATE departments SET short_id = code WHERE NOT (code = ANY($1))`
const insertDepartment = `INSERT INTO departments (code, short_id, display, color) VALUES ($1, $2, $3, $4) ON CONFLICT (code) DO UPDATE SET short_id=EXCLUDED.short_id, display=EXCLUDED.display, color=EXCLUDED.color`

const insertCourse = `INSERT INTO courses (id, department_code, number_rank, name, units, repeatable, description, prereqs, offered, distros, career, source_ref) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) ON CONFLICT (id) DO UPDATE SET department_code=EXCLUDED.department_code, number_rank=EXCLUDED.number_rank, name=EXCLUDED.name, units=EXCLUDED.units, repeatable=EXCLUDED.repeatable, description=EXCLUDED.description, prereqs=EXCLUDED.prereqs, offered=EXCLUDED.offered, distros=EXCLUDED.distros, career=EXCLUDED.career, source_ref=EXCLUDED.source_ref`

const deleteCourseSections = `DELETE FROM sections WHERE course_id = $1`
const insertSection = `INSERT INTO sections (section_id, course_id, section, meeting_days, start_minute, end_minute) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (section_id) DO NOTHING`

var courseColumns = []string{"id", "name", "units", "repeatable", "description", "prereqs", "offered", "distros", "career", "source_ref"}

// PublishStats counts the rows each batch touched.
type PublishStats struct {
	Departments int64
	Courses     int64
	Sections    int64
}

// CourseFilter narrows ListCourses. Zero fields match everything.
type CourseFilter struct {
	DepartmentCode string
	Offered        *Term
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// DepartmentCode is the subject code portion of a course id.
func DepartmentCode(courseId string) string {
	code, _, _ := strings.Cut(courseId, " ")
	return code
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func minuteOfDay(t *Time) *int {
	if t == nil {
		return nil
	}
	m := t.H*60 + t.M
	return &m
}

func countingCallback(affected *int64) func(pgconn.CommandTag) error {
	return func(ct pgconn.CommandTag) error {
		*affected += ct.RowsAffected()
		return nil
	}
}

func (d *Database) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := d.Pool.Query(ctx, listDepartments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var department Department
		var color *string
		if err := rows.Scan(&department.Code, &department.Id, &department.Display, &color); err != nil {
			return nil, err
		}
		if color != nil {
			department.Color = *color
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

func (d *Database) ListCourses(ctx context.Context, filter CourseFilter) ([]Course, error) {
	query := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select(courseColumns...).
		From("courses").
		OrderBy("department_code", "number_rank")
	if filter.DepartmentCode != "" {
		query = query.Where(squirrel.Eq{"department_code": filter.DepartmentCode})
	}
	if filter.Offered != nil {
		query = query.Where(squirrel.Like{"offered": "%" + Terms(0).With(*filter.Offered).String() + "%"})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		var units, career, sourceRef *string
		var offered, distros string
		if err := rows.Scan(&course.Id, &course.Name, &units, &course.Repeatable, &course.Description, &course.Prereqs, &offered, &distros, &career, &sourceRef); err != nil {
			return nil, err
		}
		if units != nil {
			course.Units = *units
		}
		if career != nil {
			course.Career = *career
		}
		if sourceRef != nil {
			course.SourceRef = *sourceRef
		}
		if course.Offered, err = TermsFromDigits(offered); err != nil {
			return nil, fmt.Errorf("course %s: %w", course.Id, err)
		}
		if course.Distros, err = DistrosFromDigits(distros); err != nil {
			return nil, fmt.Errorf("course %s: %w", course.Id, err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// departmentBatch queues the release of retired short ids ahead of the upserts. Ids that move
// between published departments only collide until commit, where the deferred unique
// constraint on short_id is checked.
func departmentBatch(departments []Department) (*pgx.Batch, []*pgx.QueuedQuery) {
	batch := &pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	codes := make([]string, len(departments))
	for i, department := range departments {
		codes[i] = department.Code
	}
	batch.Queue(releaseShortIds, codes)

	for _, department := range departments {
		queuedQueries = append(queuedQueries, batch.Queue(insertDepartment, department.Code, department.Id, department.Display, nullableString(department.Color)))
	}

	return batch, queuedQueries
}

func insertDepartments(ctx context.Context, q batchSender, departments []Department) (int64, error) {
	if len(departments) == 0 {
		return 0, nil
	}

	batch, queuedQueries := departmentBatch(departments)

	var affected int64
	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(countingCallback(&affected))
	}

	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return affected, err
	}

	return affected, nil
}

func insertCourses(ctx context.Context, q batchSender, courses []Course) (int64, error) {
	if len(courses) == 0 {
		return 0, nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, course := range courses {
		queuedQueries = append(
			queuedQueries,
			batch.Queue(
				insertCourse,
				course.Id,
				DepartmentCode(course.Id),
				CatalogRank(CatalogNumber(course.Id)),
				course.Name,
				nullableString(course.Units),
				course.Repeatable,
				strings.ReplaceAll(course.Description, "\x00", ""),
				course.Prereqs,
				course.Offered.String(),
				course.Distros.String(),
				nullableString(course.Career),
				nullableString(course.SourceRef),
			),
		)
	}

	var affected int64
	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(countingCallback(&affected))
	}

	if err := q.SendBatch(ctx, &batch).Close(); err != nil {
		return affected, err
	}

	return affected, nil
}

// insertSections replaces the stored sections of every course that carries any.
func insertSections(ctx context.Context, q batchSender, courses []Course) (int64, error) {
	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery
	var affected int64

	for _, course := range courses {
		if len(course.Sections) == 0 {
			continue
		}
		batch.Queue(deleteCourseSections, course.Id)
		for _, section := range course.Sections {
			var meetingDays *string
			if section.MeetingDays != nil {
				digits := section.MeetingDays.String()
				meetingDays = &digits
			}
			queuedQueries = append(queuedQueries, batch.Queue(insertSection, section.SectionId, course.Id, section.Section, meetingDays, minuteOfDay(section.StartTime), minuteOfDay(section.EndTime)))
		}
	}

	if batch.Len() == 0 {
		return 0, nil
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(countingCallback(&affected))
	}

	if err := q.SendBatch(ctx, &batch).Close(); err != nil {
		return affected, err
	}

	return affected, nil
}

// Publish upserts departments, courses and their sections in one transaction.
func (d *Database) Publish(ctx context.Context, departments []Department, courses []Course) (PublishStats, error) {
	var stats PublishStats

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback(ctx)

	if stats.Departments, err = insertDepartments(ctx, tx, departments); err != nil {
		return stats, fmt.Errorf("insert departments: %w", err)
	}
	if stats.Courses, err = insertCourses(ctx, tx, courses); err != nil {
		return stats, fmt.Errorf("insert courses: %w", err)
	}
	if stats.Sections, err = insertSections(ctx, tx, courses); err != nil {
		return stats, fmt.Errorf("insert sections: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit publish: %w", err)
	}

	return stats, nil
}
