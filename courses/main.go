package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/app"
	"github.com/papernu/paper/scrape/catalog"
	"github.com/papernu/paper/scrape/dataset"
	"github.com/papernu/paper/scrape/reconcile"
	"github.com/papernu/paper/scrape/registry"
)

func main() {
	var output string
	var concurrency int

	cmd := app.NewCommand("courses", "Scrape the undergraduate catalog into a course dataset", func(ctx context.Context, cmd *cobra.Command, stage *app.Stage) error {
		cfg := stage.Config
		if output == "" {
			output = cfg.Output.CatalogPath
		}
		if concurrency <= 0 {
			concurrency = cfg.Catalog.Concurrency
		}

		scraper := catalog.NewScraper(cfg.Catalog.BaseUrl, cfg.Catalog.Timeout, concurrency, stage.Logger)
		pages, err := scraper.ScrapeAll(ctx)
		if err != nil {
			return err
		}

		rows, err := catalog.Rows(pages)
		if err != nil {
			return err
		}

		engine := reconcile.NewEngine(registry.New(0))
		if err := engine.AddAll(reconcile.Rows(rows)); err != nil {
			return err
		}

		d := dataset.FromResult(engine.Result())
		if err := dataset.Write(output, d); err != nil {
			return err
		}

		stage.Logger.Info("Finished scraping", zap.String("path", output), zap.Int("courses", len(d.Courses)), zap.Int("majors", len(d.Majors)))
		return nil
	})
	cmd.Flags().StringVar(&output, "output", "", "dataset to write (default output.catalog_path)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "department pages fetched at once (default catalog.concurrency)")

	app.Execute(cmd)
}
