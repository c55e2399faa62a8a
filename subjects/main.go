package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papernu/paper/scrape/app"
	"github.com/papernu/paper/scrape/dataset"
	"github.com/papernu/paper/scrape/registry"
)

func main() {
	var path string
	var skipColors bool

	cmd := app.NewCommand("subjects", "Renumber majors from zero and assign their colors", func(ctx context.Context, cmd *cobra.Command, stage *app.Stage) error {
		if path == "" {
			path = stage.Config.Output.ResultPath
		}

		d, err := dataset.Read(path)
		if err != nil {
			return err
		}

		reg := registry.New(0)
		if err := d.SeedRegistry(reg); err != nil {
			return err
		}
		reg.Renumber()
		if !skipColors {
			reg.Colorize(stage.Config.Output.Palette)
		}
		d.SetMajors(reg)

		if err := dataset.Write(path, d); err != nil {
			return err
		}

		stage.Logger.Info("Renumbered majors", zap.String("path", path), zap.Int("majors", reg.Len()))
		return nil
	})
	cmd.Flags().StringVar(&path, "dataset", "", "dataset to update in place (default output.result_path)")
	cmd.Flags().BoolVar(&skipColors, "skip-colors", false, "keep existing major colors")

	app.Execute(cmd)
}
