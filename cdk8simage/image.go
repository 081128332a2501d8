// Package cdk8simage exposes the image build as a cdk8s construct. The
// image is built and pushed synchronously while the construct tree is
// being assembled, so its content addressed reference can be used by
// other constructs in the same synthesis.
package cdk8simage

import (
	"context"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cdk8s-team/cdk8s-core-go/cdk8s/v2"
	"github.com/guillaumemaka/cdk8s-image/core"
	"github.com/guillaumemaka/cdk8s-image/core/app"
	"github.com/guillaumemaka/cdk8s-image/core/options"
	"github.com/guillaumemaka/cdk8s-image/core/registry"
)

type ImageProps struct {
	// Dir is the build context directory (required)
	Dir *string

	// Registry prefix for the image tag. Defaults to docker.io/library
	Registry *string

	// Name overrides the DNS label derived from the construct path
	Name *string

	// BuildOptions are docker build flag tokens. Unsupported flags are dropped
	BuildOptions *[]string

	// BuildArgs are build-time variables passed as `--build-arg` pairs
	BuildArgs *map[string]*string

	// Platform is the target platform for the build (e.g. linux/amd64)
	Platform *string

	// Labels applied to the image
	Labels *map[string]*string
}

// Image builds and pushes a docker image as part of the construct tree
type Image interface {
	constructs.Construct

	// Url is the fully qualified, content addressed image reference
	// (`tag@digest`) of the pushed image
	Url() *string
}

type image struct {
	constructs.Construct

	url string
}

func (i *image) Url() *string {
	return jsii.String(i.url)
}

// test seam, the real build shells out to docker
var buildImage = core.BuildImage

// NewImage builds and pushes the image in props.Dir. Any build, push or
// digest failure panics and aborts the synthesis, there is no partially
// constructed image.
func NewImage(scope constructs.Construct, id *string, props *ImageProps) Image {
	construct := constructs.NewConstruct(scope, id)

	if props == nil || props.Dir == nil || *props.Dir == "" {
		panic("cdk8simage: props.Dir is required")
	}

	buildContext, err := app.NewApp(*props.Dir)
	if err != nil {
		panic(err)
	}

	name := ""
	if props.Name != nil {
		name = *props.Name
	} else {
		name = *cdk8s.Names_ToDnsLabel(construct, nil)
	}

	registryPrefix := core.DefaultRegistry
	if props.Registry != nil && *props.Registry != "" {
		registryPrefix = *props.Registry
	}

	builder := options.New()
	if props.Platform != nil && *props.Platform != "" {
		builder.Platform(*props.Platform)
	}
	if props.BuildOptions != nil {
		for _, token := range options.FilterSupported(*props.BuildOptions) {
			builder.Set(token)
		}
	}

	env := app.NewEnvironment(nil)
	if props.BuildArgs != nil {
		for argName, value := range *props.BuildArgs {
			if value != nil {
				env.SetVariable(argName, *value)
			}
		}
	}

	registry.WarnIfMissingCredentials(registryPrefix)

	result, err := buildImage(context.Background(), buildContext, env, &core.BuildImageOptions{
		Registry: registryPrefix,
		Name:     name,
		Options:  builder.ToArgs(),
		Labels:   labelsFromProps(props.Labels),
	})
	if err != nil {
		panic(err)
	}

	return &image{
		Construct: construct,
		url:       result.URL,
	}
}

func labelsFromProps(labels *map[string]*string) map[string]string {
	if labels == nil {
		return nil
	}

	result := map[string]string{}
	for name, value := range *labels {
		if value != nil {
			result[name] = *value
		}
	}

	return result
}
