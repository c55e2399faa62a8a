package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and by pgxmock pools.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Database struct {
	Pool Querier
}

// CourseId builds the dataset-wide course key, e.g. "COMP_SCI 111-0".
func CourseId(subjectCode, catalogNumber string) string {
	const idTemplate = "%v %v"
	return fmt.Sprintf(idTemplate, subjectCode, catalogNumber)
}

// SectionId builds the key of one section within a course, e.g. "COMP_SCI 111-0-20".
func SectionId(courseId, section string) string {
	return courseId + "-" + section
}
