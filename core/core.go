package core

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/distribution/reference"
	"github.com/guillaumemaka/cdk8s-image/core/app"
	"github.com/guillaumemaka/cdk8s-image/core/names"
	"github.com/guillaumemaka/cdk8s-image/core/runner"
	"github.com/opencontainers/go-digest"
	specs "github.com/opencontainers/image-spec/specs-go/v1"
)

// DefaultRegistry is used when no registry prefix is configured
const DefaultRegistry = "docker.io/library"

// Push output is expected to contain a line like
// `latest: digest: sha256:abc... size: 1234`
var digestPattern = regexp.MustCompile(`digest: (sha256:[0-9a-f]+)`)

type BuildImageOptions struct {
	// Registry prefix for the tag. Defaults to DefaultRegistry
	Registry string

	// Name of the image, sanitized to a DNS label. Defaults to a label
	// derived from the build context directory
	Name string

	// Pre-validated docker build flag tokens, passed through verbatim
	Options []string

	// Labels applied to the image in addition to the default OCI ones
	Labels map[string]string

	// Runner used for the docker invocations. Defaults to an ExecRunner
	Runner runner.CommandRunner
}

// BuildResult describes a built and pushed image
type BuildResult struct {
	// Tag the image was built and pushed with
	Tag string `json:"tag"`

	// Digest parsed from the push output
	Digest string `json:"digest"`

	// URL is the fully qualified, content addressed image reference (`tag@digest`)
	URL string `json:"url"`
}

// BuildImage builds the app directory with `docker build`, pushes the
// result with `docker push` and returns the content addressed reference
// of the pushed image. Any failure aborts the whole operation, there is
// no retry and no partial result.
func BuildImage(ctx context.Context, a *app.App, env *app.Environment, options *BuildImageOptions) (*BuildResult, error) {
	if options == nil {
		options = &BuildImageOptions{}
	}

	run := options.Runner
	if run == nil {
		run = runner.NewExecRunner()
	}

	tag, err := ComputeTag(options.Registry, options.Name, a)
	if err != nil {
		return nil, err
	}

	buildArgs := []string{"build"}
	buildArgs = append(buildArgs, options.Options...)
	if env != nil {
		for _, pair := range env.ToBuildArgs() {
			buildArgs = append(buildArgs, "--build-arg", pair)
		}
	}
	buildArgs = append(buildArgs, labelTokens(options.Labels)...)
	buildArgs = append(buildArgs, "--tag", tag, a.Source)

	log.Infof("Building docker image %s", tag)
	if _, err := run.Run(ctx, "docker", buildArgs...); err != nil {
		return nil, fmt.Errorf("failed to build image %s: %w", tag, err)
	}

	log.Infof("Pushing docker image %s", tag)
	pushOutput, err := run.Run(ctx, "docker", "push", tag)
	if err != nil {
		return nil, fmt.Errorf("failed to push image %s: %w", tag, err)
	}

	imageDigest, err := extractDigest(pushOutput)
	if err != nil {
		return nil, err
	}

	return &BuildResult{
		Tag:    tag,
		Digest: imageDigest.String(),
		URL:    fmt.Sprintf("%s@%s", tag, imageDigest),
	}, nil
}

// ComputeTag concatenates the registry prefix with the DNS-label form of
// the image name and validates the result as an image reference
func ComputeTag(registry, name string, a *app.App) (string, error) {
	if registry == "" {
		registry = DefaultRegistry
	}

	if name == "" {
		name = a.Name()
	}

	tag := fmt.Sprintf("%s/%s", registry, names.ToDNSLabel(name))

	if _, err := reference.ParseNormalizedNamed(tag); err != nil {
		return "", fmt.Errorf("invalid image tag %s: %w", tag, err)
	}

	return tag, nil
}

// labelTokens serializes labels into `--label name=value` tokens, sorted
// by name for a deterministic invocation. The OCI created annotation is
// stamped unless the caller set one.
func labelTokens(labels map[string]string) []string {
	if labels == nil {
		return nil
	}

	merged := map[string]string{}
	for name, value := range labels {
		merged[name] = value
	}

	if _, exists := merged[specs.AnnotationCreated]; !exists {
		merged[specs.AnnotationCreated] = time.Now().UTC().Format(time.RFC3339)
	}

	labelNames := make([]string, 0, len(merged))
	for name := range merged {
		labelNames = append(labelNames, name)
	}
	sort.Strings(labelNames)

	tokens := make([]string, 0, len(labelNames)*2)
	for _, name := range labelNames {
		tokens = append(tokens, "--label", fmt.Sprintf("%s=%s", name, merged[name]))
	}

	return tokens
}

// extractDigest pulls the content digest out of the push output. The
// pattern is the contract with the docker CLI, anything it matches is
// taken verbatim.
func extractDigest(pushOutput string) (digest.Digest, error) {
	matches := digestPattern.FindStringSubmatch(pushOutput)
	if matches == nil {
		return "", fmt.Errorf("failed to find image digest in push output:\n%s", pushOutput)
	}

	return digest.Digest(matches[1]), nil
}
