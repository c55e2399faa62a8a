package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/app"
	"github.com/papernu/paper/scrape/dataset"
	"github.com/papernu/paper/scrape/db"
)

func main() {
	var path string

	cmd := app.NewCommand("publish", "Load a course dataset into PostgreSQL", func(ctx context.Context, cmd *cobra.Command, stage *app.Stage) error {
		if path == "" {
			path = stage.Config.Output.ResultPath
		}

		d, err := dataset.Read(path)
		if err != nil {
			return err
		}

		pool, err := db.Connect(ctx, stage.Config.Database.ConnectionString)
		if err != nil {
			return err
		}
		defer pool.Close()
		database := db.Database{Pool: pool}

		stats, err := database.Publish(ctx, d.Majors, d.Courses)
		if err != nil {
			return err
		}

		stored, err := database.ListCourses(ctx, db.CourseFilter{})
		if err != nil {
			return err
		}

		stage.Logger.Info("Published dataset",
			zap.String("path", path),
			zap.Int64("departments", stats.Departments),
			zap.Int64("courses", stats.Courses),
			zap.Int64("sections", stats.Sections),
			zap.Int("stored_courses", len(stored)))
		return nil
	})
	cmd.Flags().StringVar(&path, "dataset", "", "dataset to publish (default output.result_path)")

	app.Execute(cmd)
}
