package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/app"
	"github.com/papernu/paper/scrape/catalog"
	"github.com/papernu/paper/scrape/dataset"
)

func main() {
	var path string

	cmd := app.NewCommand("prereqs", "Fill course prerequisites from the catalog's extra blocks", func(ctx context.Context, cmd *cobra.Command, stage *app.Stage) error {
		cfg := stage.Config
		if path == "" {
			path = cfg.Output.ResultPath
		}

		d, err := dataset.Read(path)
		if err != nil {
			return err
		}

		scraper := catalog.NewScraper(cfg.Catalog.BaseUrl, cfg.Catalog.Timeout, cfg.Catalog.Concurrency, stage.Logger)
		pages, err := scraper.ScrapeAll(ctx)
		if err != nil {
			return err
		}

		updates, err := catalog.PrereqUpdates(pages)
		if err != nil {
			return err
		}

		index := d.CourseIndex()
		applied, skipped := 0, 0
		for _, update := range updates {
			i, ok := index[update.CourseId]
			if !ok {
				skipped++
				stage.Logger.Debug("Skipping unknown course", zap.String("course", update.CourseId))
				continue
			}
			prereqs := update.Prereqs
			d.Courses[i].Prereqs = &prereqs
			applied++
		}

		if err := dataset.Write(path, d); err != nil {
			return err
		}

		stage.Logger.Info("Updated prerequisites", zap.String("path", path), zap.Int("applied", applied), zap.Int("skipped", skipped))
		return nil
	})
	cmd.Flags().StringVar(&path, "dataset", "", "dataset to update in place (default output.result_path)")

	app.Execute(cmd)
}
