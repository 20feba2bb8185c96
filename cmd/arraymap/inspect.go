package main

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/arraymap/internal/api"
)

func inspectCmd() *cli.Command {
	var filePath string

	return &cli.Command{
		Name:  "inspect",
		Usage: "Decode a container header and print its arrays as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to container file",
				Destination: &filePath,
				Required:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			desc, err := api.Describe(filePath)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(desc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
