package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/guillaumemaka/cdk8s-image/core/app"
	"github.com/stretchr/testify/require"
)

func TestEmptyConfig(t *testing.T) {
	config := EmptyConfig()
	require.NotNil(t, config)
	require.Empty(t, config.Registry)
	require.Empty(t, config.Name)
	require.Empty(t, config.BuildArgs)
	require.Empty(t, config.Labels)
	require.Nil(t, config.Options)
}

func TestMergeConfig(t *testing.T) {
	config1JSON := `{
		"registry": "docker.io/library",
		"name": "base-name",
		"platform": "linux/amd64",
		"buildArgs": {
			"NODE_ENV": "production",
			"SHARED": "one"
		},
		"labels": {
			"team": "platform"
		},
		"options": ["--pull"]
	}`

	config2JSON := `{
		"registry": "ghcr.io/my-org",
		"dockerfile": "docker/Dockerfile",
		"buildArgs": {
			"SHARED": "two",
			"GIT_SHA": "abc123"
		},
		"labels": {
			"env": "prod"
		},
		"options": ["--no-cache"]
	}`

	expectedJSON := `{
		"registry": "ghcr.io/my-org",
		"name": "base-name",
		"dockerfile": "docker/Dockerfile",
		"platform": "linux/amd64",
		"buildArgs": {
			"NODE_ENV": "production",
			"SHARED": "two",
			"GIT_SHA": "abc123"
		},
		"labels": {
			"team": "platform",
			"env": "prod"
		},
		"options": ["--pull", "--no-cache"]
	}`

	var config1, config2, expected Config
	require.NoError(t, json.Unmarshal([]byte(config1JSON), &config1))
	require.NoError(t, json.Unmarshal([]byte(config2JSON), &config2))
	require.NoError(t, json.Unmarshal([]byte(expectedJSON), &expected))

	result := config1.Merge(&config2)

	if diff := cmp.Diff(expected, *result); diff != "" {
		t.Errorf("configs mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAppJSON(t *testing.T) {
	a, err := app.NewApp("../../examples/with-config")
	require.NoError(t, err)

	config, err := FromApp(a)
	require.NoError(t, err)

	require.Equal(t, "registry.example.com/platform", config.Registry)
	require.Equal(t, "configured-app", config.Name)
	require.Equal(t, "linux/amd64", config.Platform)
	require.Equal(t, map[string]string{"NODE_ENV": "production"}, config.BuildArgs)
	require.Equal(t, map[string]string{"team": "platform"}, config.Labels)
	require.Equal(t, []string{"--pull", "--no-cache"}, config.Options)
}

func TestFromAppNoConfigFile(t *testing.T) {
	a, err := app.NewApp("../../examples/foobar")
	require.NoError(t, err)

	config, err := FromApp(a)
	require.NoError(t, err)

	require.Equal(t, EmptyConfig(), config)
}

func TestFromAppYAML(t *testing.T) {
	dir := t.TempDir()
	contents := "registry: quay.io/acme\nname: yaml-app\nbuildArgs:\n  FOO: bar\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cdk8s-image.yaml"), []byte(contents), 0644))

	a, err := app.NewApp(dir)
	require.NoError(t, err)

	config, err := FromApp(a)
	require.NoError(t, err)

	require.Equal(t, "quay.io/acme", config.Registry)
	require.Equal(t, "yaml-app", config.Name)
	require.Equal(t, map[string]string{"FOO": "bar"}, config.BuildArgs)
}

func TestFromAppTOML(t *testing.T) {
	dir := t.TempDir()
	contents := "registry = \"quay.io/acme\"\nname = \"toml-app\"\noptions = [\"--pull\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cdk8s-image.toml"), []byte(contents), 0644))

	a, err := app.NewApp(dir)
	require.NoError(t, err)

	config, err := FromApp(a)
	require.NoError(t, err)

	require.Equal(t, "quay.io/acme", config.Registry)
	require.Equal(t, "toml-app", config.Name)
	require.Equal(t, []string{"--pull"}, config.Options)
}

func TestGetJsonSchema(t *testing.T) {
	schema := GetJsonSchema()
	require.NotNil(t, schema)

	serialized, err := json.Marshal(schema)
	require.NoError(t, err)
	require.Contains(t, string(serialized), "registry")
	require.Contains(t, string(serialized), "buildArgs")
}
