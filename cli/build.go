package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/guillaumemaka/cdk8s-image/core"
	"github.com/guillaumemaka/cdk8s-image/core/registry"
	"github.com/urfave/cli/v3"
)

var BuildCommand = &cli.Command{
	Name:                  "build",
	Aliases:               []string{"b"},
	Usage:                 "build and push an image, printing its content addressed reference",
	ArgsUsage:             "DIRECTORY",
	EnableShellCompletion: true,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "output format. one of: pretty, json, url",
			Value: "pretty",
		},
	}, commonFlags()...),
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, env, buildOptions, err := GenerateBuildOptionsForCommand(cmd)
		if err != nil {
			return cli.Exit(err, 1)
		}

		reg := buildOptions.Registry
		if reg == "" {
			reg = core.DefaultRegistry
		}
		registry.WarnIfMissingCredentials(reg)

		result, err := core.BuildImage(ctx, app, env, buildOptions)
		if err != nil {
			return cli.Exit(err, 1)
		}

		switch cmd.String("format") {
		case "json":
			serialized, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return cli.Exit(err, 1)
			}
			os.Stdout.Write(serialized)
			os.Stdout.Write([]byte("\n"))
		case "url":
			fmt.Println(result.URL)
		default:
			core.PrettyPrintBuildResult(result, core.PrintOptions{Version: Version})
		}

		return nil
	},
}
