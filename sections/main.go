package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/app"
	"github.com/papernu/paper/scrape/dataset"
	"github.com/papernu/paper/scrape/db"
	"github.com/papernu/paper/scrape/schedule"
)

func main() {
	var feedDir, output, datasetPath string

	cmd := app.NewCommand("sections", "Attach sections and discussions to scheduled courses", func(ctx context.Context, cmd *cobra.Command, stage *app.Stage) error {
		cfg := stage.Config
		if feedDir == "" {
			feedDir = cfg.Schedule.FeedDir
		}
		if output == "" {
			output = cfg.Schedule.OutputPath
		}

		feed, err := schedule.LoadFeed(feedDir)
		if err != nil {
			return err
		}

		if err := schedule.Attach(feed.Courses, feed); err != nil {
			return err
		}
		if err := dataset.Write(output, feed.Courses); err != nil {
			return err
		}
		stage.Logger.Info("Wrote scheduled courses", zap.String("path", output), zap.Int("courses", len(feed.Courses)))

		if datasetPath == "" {
			return nil
		}

		d, err := dataset.Read(datasetPath)
		if err != nil {
			return err
		}
		targets := make([]*db.Course, len(d.Courses))
		for i := range d.Courses {
			targets[i] = &d.Courses[i]
		}
		if err := schedule.Attach(targets, feed); err != nil {
			return err
		}
		if err := dataset.Write(datasetPath, d); err != nil {
			return err
		}
		stage.Logger.Info("Attached sections to dataset", zap.String("path", datasetPath), zap.Int("courses", len(d.Courses)))
		return nil
	})
	cmd.Flags().StringVar(&feedDir, "feed-dir", "", "directory holding courses.json, sections.json and discussions.json (default schedule.feed_dir)")
	cmd.Flags().StringVar(&output, "output", "", "file to write (default schedule.output_path)")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "also attach sections to this course dataset, in place")

	app.Execute(cmd)
}
