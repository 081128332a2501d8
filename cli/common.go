package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/guillaumemaka/cdk8s-image/core"
	a "github.com/guillaumemaka/cdk8s-image/core/app"
	"github.com/guillaumemaka/cdk8s-image/core/config"
	"github.com/guillaumemaka/cdk8s-image/core/options"
	"github.com/urfave/cli/v3"
)

// Version is set at build time
var Version = "dev"

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "registry",
			Usage: "registry prefix for the image tag",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "name of the image. Defaults to the build context directory name",
		},
		&cli.StringSliceFlag{
			Name:  "env",
			Usage: "build-arg variables to set (NAME=value, or NAME to read from the environment)",
		},
		&cli.StringSliceFlag{
			Name:  "label",
			Usage: "labels to apply to the image (name=value)",
		},
		&cli.StringSliceFlag{
			Name:  "option",
			Usage: "extra docker build flag tokens. Unsupported flags are dropped",
		},
		&cli.StringFlag{
			Name:  "platform",
			Usage: "target platform for the build (e.g. linux/amd64)",
		},
		&cli.StringFlag{
			Name:  "dockerfile",
			Usage: "path of the Dockerfile relative to the build context",
		},
		&cli.StringFlag{
			Name:  "target",
			Usage: "build stage to stop at",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "disable the docker build cache",
		},
		&cli.BoolFlag{
			Name:  "pull",
			Usage: "always attempt to pull newer versions of base images",
		},
	}
}

// GenerateBuildOptionsForCommand resolves the build context directory and
// combines the config file with the command line flags (flags win) into
// the options for core.BuildImage.
func GenerateBuildOptionsForCommand(cmd *cli.Command) (*a.App, *a.Environment, *core.BuildImageOptions, error) {
	directory := cmd.Args().First()

	if directory == "" {
		return nil, nil, nil, cli.Exit("directory argument is required", 1)
	}

	app, err := a.NewApp(directory)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error creating app: %w", err)
	}

	log.Debugf("Building %s", app.Source)

	fileConfig, err := config.FromApp(app)
	if err != nil {
		return nil, nil, nil, err
	}

	mergedConfig := fileConfig.Merge(configFromFlags(cmd))

	env, err := a.FromEnvs(cmd.StringSlice("env"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error creating env: %w", err)
	}

	// Config file build args sit under the command line ones
	for name, value := range mergedConfig.BuildArgs {
		if env.GetVariable(name) == "" {
			env.SetVariable(name, value)
		}
	}

	if mergedConfig.Dockerfile == "" && app.FindDockerfile() == "" {
		log.Warnf("No Dockerfile found in %s. The docker build will likely fail", app.Source)
	}

	builder := options.New()
	if mergedConfig.Platform != "" {
		builder.Platform(mergedConfig.Platform)
	}
	if mergedConfig.Dockerfile != "" {
		builder.File(mergedConfig.Dockerfile)
	}
	if cmd.String("target") != "" {
		builder.Target(cmd.String("target"))
	}
	if cmd.Bool("no-cache") {
		builder.NoCache()
	}
	if cmd.Bool("pull") {
		builder.Pull()
	}
	for _, token := range options.FilterSupported(mergedConfig.Options) {
		builder.Set(token)
	}

	return app, env, &core.BuildImageOptions{
		Registry: mergedConfig.Registry,
		Name:     mergedConfig.Name,
		Options:  builder.ToArgs(),
		Labels:   labelsOrNil(mergedConfig.Labels),
	}, nil
}

func configFromFlags(cmd *cli.Command) *config.Config {
	flagConfig := config.EmptyConfig()

	flagConfig.Registry = cmd.String("registry")
	flagConfig.Name = cmd.String("name")
	flagConfig.Platform = cmd.String("platform")
	flagConfig.Dockerfile = cmd.String("dockerfile")
	flagConfig.Options = cmd.StringSlice("option")

	for _, label := range cmd.StringSlice("label") {
		parts := strings.SplitN(label, "=", 2)
		if len(parts) != 2 {
			log.Debugf("Ignoring malformed label `%s`", label)
			continue
		}
		flagConfig.Labels[parts[0]] = parts[1]
	}

	return flagConfig
}

func labelsOrNil(labels map[string]string) map[string]string {
	if len(labels) == 0 {
		return nil
	}
	return labels
}
