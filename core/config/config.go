package config

import (
	"fmt"

	"github.com/guillaumemaka/cdk8s-image/core/app"
	"github.com/guillaumemaka/cdk8s-image/core/utils"
	"github.com/invopop/jsonschema"
)

// Names tried, in order, when looking for a config file in the build context
var ConfigFileNames = []string{
	"cdk8s-image.json",
	"cdk8s-image.jsonc",
	"cdk8s-image.yaml",
	"cdk8s-image.yml",
	"cdk8s-image.toml",
}

type Config struct {
	// Registry prefix for the image tag (e.g. ghcr.io/my-org)
	Registry string `json:"registry,omitempty" yaml:"registry" toml:"registry" jsonschema:"description=Registry prefix for the image tag (e.g. ghcr.io/my-org)"`

	// Name of the image. Defaults to a DNS label derived from the build context directory
	Name string `json:"name,omitempty" yaml:"name" toml:"name" jsonschema:"description=Name of the image. Defaults to a DNS label derived from the build context directory"`

	// Path of the Dockerfile relative to the build context
	Dockerfile string `json:"dockerfile,omitempty" yaml:"dockerfile" toml:"dockerfile" jsonschema:"description=Path of the Dockerfile relative to the build context"`

	// Target platform for the build (e.g. linux/amd64)
	Platform string `json:"platform,omitempty" yaml:"platform" toml:"platform" jsonschema:"description=Target platform for the build (e.g. linux/amd64)"`

	// Map of build-arg name to value
	BuildArgs map[string]string `json:"buildArgs,omitempty" yaml:"buildArgs" toml:"buildArgs" jsonschema:"description=Map of build-arg name to value"`

	// Map of label name to value applied to the image
	Labels map[string]string `json:"labels,omitempty" yaml:"labels" toml:"labels" jsonschema:"description=Map of label name to value applied to the image"`

	// Additional docker build flag tokens. Unsupported flags are dropped
	Options []string `json:"options,omitempty" yaml:"options" toml:"options" jsonschema:"description=Additional docker build flag tokens. Unsupported flags are dropped"`
}

func EmptyConfig() *Config {
	return &Config{
		BuildArgs: make(map[string]string),
		Labels:    make(map[string]string),
	}
}

// FromApp loads the config file from the build context if one exists.
// Returns an empty config when no file is found.
func FromApp(a *app.App) (*Config, error) {
	config := EmptyConfig()

	for _, name := range ConfigFileNames {
		if !a.HasMatch(name) {
			continue
		}

		var err error
		switch {
		case name == "cdk8s-image.toml":
			err = a.ReadTOML(name, config)
		case name == "cdk8s-image.yaml" || name == "cdk8s-image.yml":
			err = a.ReadYAML(name, config)
		default:
			err = a.ReadJSON(name, config)
		}

		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", name, err)
		}

		if config.BuildArgs == nil {
			config.BuildArgs = make(map[string]string)
		}
		if config.Labels == nil {
			config.Labels = make(map[string]string)
		}

		return config, nil
	}

	return config, nil
}

// Merge combines two configs where:
// - For strings (Registry, Name, Dockerfile, Platform), the last non-empty value wins
// - For maps (BuildArgs, Labels), entries are merged with last value winning
// - For arrays (Options), arrays are extended
func (c *Config) Merge(other *Config) *Config {
	result := EmptyConfig()

	result.Registry = c.Registry
	if other.Registry != "" {
		result.Registry = other.Registry
	}

	result.Name = c.Name
	if other.Name != "" {
		result.Name = other.Name
	}

	result.Dockerfile = c.Dockerfile
	if other.Dockerfile != "" {
		result.Dockerfile = other.Dockerfile
	}

	result.Platform = c.Platform
	if other.Platform != "" {
		result.Platform = other.Platform
	}

	for k, v := range c.BuildArgs {
		result.BuildArgs[k] = v
	}
	for k, v := range other.BuildArgs {
		result.BuildArgs[k] = v
	}

	for k, v := range c.Labels {
		result.Labels[k] = v
	}
	for k, v := range other.Labels {
		result.Labels[k] = v
	}

	result.Options = append(result.Options, c.Options...)
	result.Options = append(result.Options, other.Options...)
	if len(result.Options) > 0 {
		result.Options = utils.RemoveDuplicates(result.Options)
	} else {
		result.Options = nil
	}

	return result
}

func (Config) JSONSchemaExtend(schema *jsonschema.Schema) {
	schema.Properties.Set("$schema", &jsonschema.Schema{
		Type:        "string",
		Description: "The schema for this config",
	})
}

func GetJsonSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}

	schema := r.Reflect(&Config{})
	return schema
}
