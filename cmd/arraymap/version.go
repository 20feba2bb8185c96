package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/arraymap/internal/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the arraymap version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println("arraymap", version.String())
			return nil
		},
	}
}
