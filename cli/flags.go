package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/guillaumemaka/cdk8s-image/core/options"
	"github.com/urfave/cli/v3"
)

var FlagsCommand = &cli.Command{
	Name:                  "flags",
	Usage:                 "list the docker build flags that can be passed through",
	EnableShellCompletion: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "filter",
			Usage: "read flag tokens from the arguments and print only the supported ones",
		},
	},
	ArgsUsage: "[FLAG...]",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Bool("filter") {
			filtered := options.FilterSupported(cmd.Args().Slice())
			if len(filtered) > 0 {
				fmt.Println(strings.Join(filtered, " "))
			}
			return nil
		}

		for _, flag := range options.Supported() {
			fmt.Println(flag)
		}

		return nil
	},
}
