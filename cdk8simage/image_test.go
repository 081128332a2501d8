package cdk8simage

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/jsii-runtime-go"
	"github.com/cdk8s-team/cdk8s-core-go/cdk8s/v2"
	"github.com/guillaumemaka/cdk8s-image/core"
	"github.com/guillaumemaka/cdk8s-image/core/app"
	"github.com/stretchr/testify/require"
)

const testDigest = "sha256:a3ed95caeb02ffe68cdd9fd84406680ae93d633cb16422d00e8a7c22955b46d4"

type recordedBuild struct {
	app     *app.App
	env     *app.Environment
	options *core.BuildImageOptions
}

// stubBuild replaces the docker-backed build with a recorder
func stubBuild(t *testing.T, err error) *recordedBuild {
	t.Helper()

	recorded := &recordedBuild{}
	original := buildImage

	buildImage = func(ctx context.Context, a *app.App, env *app.Environment, options *core.BuildImageOptions) (*core.BuildResult, error) {
		recorded.app = a
		recorded.env = env
		recorded.options = options

		if err != nil {
			return nil, err
		}

		tag, tagErr := core.ComputeTag(options.Registry, options.Name, a)
		if tagErr != nil {
			return nil, tagErr
		}

		return &core.BuildResult{
			Tag:    tag,
			Digest: testDigest,
			URL:    fmt.Sprintf("%s@%s", tag, testDigest),
		}, nil
	}

	t.Cleanup(func() { buildImage = original })

	return recorded
}

func testChart(t *testing.T) cdk8s.Chart {
	t.Helper()

	testApp := cdk8s.NewApp(nil)
	return cdk8s.NewChart(testApp, jsii.String("test"), nil)
}

func TestNewImage(t *testing.T) {
	recorded := stubBuild(t, nil)
	chart := testChart(t)

	img := NewImage(chart, jsii.String("image"), &ImageProps{
		Dir: jsii.String("../examples/foobar"),
	})

	require.NotNil(t, img.Url())
	require.True(t, strings.HasPrefix(*img.Url(), "docker.io/library/"))
	require.True(t, strings.HasSuffix(*img.Url(), "@"+testDigest))

	require.Contains(t, recorded.app.Source, "foobar")
	require.Equal(t, core.DefaultRegistry, recorded.options.Registry)

	// Default name derives from the construct path
	require.Contains(t, recorded.options.Name, "image")
}

func TestNewImageWithProps(t *testing.T) {
	recorded := stubBuild(t, nil)
	chart := testChart(t)

	img := NewImage(chart, jsii.String("image"), &ImageProps{
		Dir:          jsii.String("../examples/foobar"),
		Registry:     jsii.String("ghcr.io/my-org"),
		Name:         jsii.String("my-app"),
		Platform:     jsii.String("linux/arm64"),
		BuildOptions: &[]string{"--no-cache", "--squash"},
		BuildArgs: &map[string]*string{
			"GIT_SHA": jsii.String("abc123"),
		},
	})

	require.Equal(t, fmt.Sprintf("ghcr.io/my-org/my-app@%s", testDigest), *img.Url())

	require.Equal(t, "ghcr.io/my-org", recorded.options.Registry)
	require.Equal(t, "my-app", recorded.options.Name)
	require.Equal(t, []string{"--platform", "linux/arm64", "--no-cache"}, recorded.options.Options)
	require.Equal(t, "abc123", recorded.env.GetVariable("GIT_SHA"))
}

func TestNewImageRequiresDir(t *testing.T) {
	stubBuild(t, nil)
	chart := testChart(t)

	require.Panics(t, func() {
		NewImage(chart, jsii.String("image"), &ImageProps{})
	})
}

func TestNewImageBuildFailureAbortsSynthesis(t *testing.T) {
	stubBuild(t, fmt.Errorf("failed to push image"))
	chart := testChart(t)

	require.Panics(t, func() {
		NewImage(chart, jsii.String("image"), &ImageProps{
			Dir: jsii.String("../examples/foobar"),
		})
	})
}
