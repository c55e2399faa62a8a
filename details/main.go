package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/app"
	"github.com/papernu/paper/scrape/dataset"
	"github.com/papernu/paper/scrape/db"
	"github.com/papernu/paper/scrape/reconcile"
	"github.com/papernu/paper/scrape/registrar"
	"github.com/papernu/paper/scrape/registry"
)

// seedRegistry restores short ids from a previous dataset, or from the database when
// fromDatabase is set.
func seedRegistry(ctx context.Context, stage *app.Stage, reg *registry.Registry, seedPath string, fromDatabase bool) error {
	if fromDatabase {
		pool, err := db.Connect(ctx, stage.Config.Database.ConnectionString)
		if err != nil {
			return err
		}
		defer pool.Close()
		database := db.Database{Pool: pool}

		departments, err := database.ListDepartments(ctx)
		if err != nil {
			return fmt.Errorf("list departments: %w", err)
		}
		for _, department := range departments {
			if err := reg.Seed(department); err != nil {
				return err
			}
		}
		stage.Logger.Info("Seeded majors from database", zap.Int("majors", len(departments)))
		return nil
	}

	if seedPath == "" {
		return nil
	}
	previous, err := dataset.Read(seedPath)
	if errors.Is(err, os.ErrNotExist) {
		stage.Logger.Warn("No previous dataset, assigning every id fresh", zap.String("path", seedPath))
		return nil
	}
	if err != nil {
		return err
	}
	if err := previous.SeedRegistry(reg); err != nil {
		return err
	}
	stage.Logger.Info("Seeded majors", zap.String("path", seedPath), zap.Int("majors", len(previous.Majors)))
	return nil
}

func main() {
	var csvPath, seedPath, output string
	var startId int
	var dedupDistros, seedFromDatabase bool

	cmd := app.NewCommand("details", "Rebuild course details from the registrar export", func(ctx context.Context, cmd *cobra.Command, stage *app.Stage) error {
		cfg := stage.Config
		if csvPath == "" {
			csvPath = cfg.Registrar.CsvPath
		}
		if !cmd.Flags().Changed("seed") {
			seedPath = cfg.Output.ResultPath
		}
		if output == "" {
			output = cfg.Output.DetailsPath
		}
		if !cmd.Flags().Changed("start-id") {
			startId = cfg.Registrar.StartId
		}
		if !cmd.Flags().Changed("dedup-distros") {
			dedupDistros = cfg.Registrar.DedupDistros
		}

		reg := registry.New(startId)
		if err := seedRegistry(ctx, stage, reg, seedPath, seedFromDatabase); err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		f, err := os.Open(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()

		reader, err := registrar.NewReader(f)
		if err != nil {
			return fmt.Errorf("%s: %w", csvPath, err)
		}

		var opts []reconcile.Option
		if dedupDistros {
			stage.Logger.Warn("Deduplicating distribution tags; output differs from earlier datasets")
			opts = append(opts, reconcile.WithDistroDedup())
		}
		engine := reconcile.NewEngine(reg, opts...)
		if err := engine.AddAll(reader); err != nil {
			return fmt.Errorf("%s: %w", csvPath, err)
		}

		d := dataset.FromResult(engine.Result())
		if err := dataset.Write(output, d); err != nil {
			return err
		}

		stage.Logger.Info("Wrote course details", zap.String("path", output), zap.Int("courses", len(d.Courses)), zap.Int("majors", len(d.Majors)))
		return nil
	})
	cmd.Flags().StringVar(&csvPath, "csv", "", "registrar export (default registrar.csv_path)")
	cmd.Flags().StringVar(&seedPath, "seed", "", "previous dataset whose major ids are kept; empty to skip (default output.result_path)")
	cmd.Flags().BoolVar(&seedFromDatabase, "seed-from-db", false, "seed major ids from the published departments table instead")
	cmd.Flags().StringVar(&output, "output", "", "dataset to write (default output.details_path)")
	cmd.Flags().IntVar(&startId, "start-id", 119, "first id handed to a newly seen major")
	cmd.Flags().BoolVar(&dedupDistros, "dedup-distros", false, "skip distribution tags a course already has")

	app.Execute(cmd)
}
