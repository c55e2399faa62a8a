package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/app"
	"github.com/papernu/paper/scrape/dataset"
	"github.com/papernu/paper/scrape/schedule"
)

func main() {
	var feedDir, datasetPath string

	cmd := app.NewCommand("validate", "Report duplicate course, section and discussion ids", func(ctx context.Context, cmd *cobra.Command, stage *app.Stage) error {
		if feedDir == "" {
			feedDir = stage.Config.Schedule.FeedDir
		}

		feed, err := schedule.LoadFeed(feedDir)
		if err != nil {
			return err
		}

		stage.Logger.Info("Checking scheduling feed", zap.String("dir", feedDir))
		schedule.Audit(feed.CourseIds(), feed).Log(stage.Logger)

		if datasetPath != "" {
			d, err := dataset.Read(datasetPath)
			if err != nil {
				return err
			}
			ids := make([]string, len(d.Courses))
			for i, course := range d.Courses {
				ids[i] = course.Id
			}
			stage.Logger.Info("Checking course dataset", zap.String("path", datasetPath))
			schedule.Audit(ids, &schedule.Feed{}).Log(stage.Logger.With(zap.String("path", datasetPath)))
		}
		return nil
	})
	cmd.Flags().StringVar(&feedDir, "feed-dir", "", "directory holding the scheduling feed (default schedule.feed_dir)")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "also check course ids in this dataset")

	app.Execute(cmd)
}
