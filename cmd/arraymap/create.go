package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/arraymap/internal/logger"
	"github.com/samcharles93/arraymap/pkg/arraymap"
)

func createCmd() *cli.Command {
	var (
		outPath      string
		manifestPath string
	)

	return &cli.Command{
		Name:  "create",
		Usage: "Create a container file from a YAML manifest (header only, no data)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output container path",
				Destination: &outPath,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "manifest",
				Aliases:     []string{"m"},
				Usage:       "YAML manifest listing array dtypes and shapes",
				Destination: &manifestPath,
				Required:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			dtypes, shapes, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			if err := arraymap.Create(outPath, dtypes, shapes); err != nil {
				return err
			}

			offsets, err := arraymap.Offsets(dtypes, shapes)
			if err != nil {
				return err
			}
			log.Info("container created",
				"path", outPath,
				"arrays", len(dtypes),
				"header_bytes", offsets[0],
				"total_bytes", offsets[len(offsets)-1],
			)
			return nil
		},
	}
}
