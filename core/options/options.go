package options

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Flags of `docker build` that a build is allowed to customize. Anything
// not listed here is dropped by Set and FilterSupported.
var supportedFlags = []string{
	"--add-host",
	"--build-arg",
	"--cache-from",
	"--file",
	"--label",
	"--network",
	"--no-cache",
	"--platform",
	"--progress",
	"--pull",
	"--quiet",
	"--secret",
	"--ssh",
	"--target",
}

var supportedSet = func() map[string]bool {
	set := make(map[string]bool, len(supportedFlags))
	for _, flag := range supportedFlags {
		set[flag] = true
	}
	return set
}()

type flagValue struct {
	scalar string
	list   []string
	kind   flagKind
}

type flagKind int

const (
	boolFlag flagKind = iota
	scalarFlag
	listFlag
)

// Builder accumulates `docker build` flags and serializes them into the
// argument vector passed to the docker CLI. Each flag is registered at
// most once; the first registration wins and later ones are ignored.
// Insertion order is preserved in the serialized output.
type Builder struct {
	order []string
	flags map[string]flagValue
}

func New() *Builder {
	return &Builder{
		flags: map[string]flagValue{},
	}
}

// Set registers an arbitrary supported flag. No values makes it a boolean
// flag, one value a scalar, more than one a repeated flag. Unsupported
// flags and duplicate registrations are dropped without error.
func (b *Builder) Set(flag string, values ...string) *Builder {
	if !supportedSet[flag] {
		log.Debugf("Ignoring unsupported build flag `%s`", flag)
		return b
	}

	if _, exists := b.flags[flag]; exists {
		log.Debugf("Ignoring duplicate registration of build flag `%s`", flag)
		return b
	}

	value := flagValue{kind: boolFlag}
	switch len(values) {
	case 0:
	case 1:
		value = flagValue{kind: scalarFlag, scalar: values[0]}
	default:
		value = flagValue{kind: listFlag, list: values}
	}

	b.order = append(b.order, flag)
	b.flags[flag] = value

	return b
}

func (b *Builder) setList(flag string, values []string) *Builder {
	if _, exists := b.flags[flag]; exists {
		log.Debugf("Ignoring duplicate registration of build flag `%s`", flag)
		return b
	}

	b.order = append(b.order, flag)
	b.flags[flag] = flagValue{kind: listFlag, list: values}

	return b
}

// AddHost adds custom host-to-IP mappings (`host:ip` format)
func (b *Builder) AddHost(hosts ...string) *Builder {
	return b.setList("--add-host", hosts)
}

// BuildArg sets a single build-time variable
func (b *Builder) BuildArg(name, value string) *Builder {
	return b.setList("--build-arg", []string{fmt.Sprintf("%s=%s", name, value)})
}

// BuildArgs sets build-time variables from a list of `NAME=value` pairs
func (b *Builder) BuildArgs(args []string) *Builder {
	return b.setList("--build-arg", args)
}

// CacheFrom lists images to consider as cache sources
func (b *Builder) CacheFrom(images ...string) *Builder {
	return b.setList("--cache-from", images)
}

// File sets the Dockerfile path relative to the build context
func (b *Builder) File(path string) *Builder {
	return b.Set("--file", path)
}

// Label adds metadata labels as `name=value` pairs
func (b *Builder) Label(labels ...string) *Builder {
	return b.setList("--label", labels)
}

// Network sets the networking mode for RUN instructions
func (b *Builder) Network(mode string) *Builder {
	return b.Set("--network", mode)
}

// NoCache disables the build cache
func (b *Builder) NoCache() *Builder {
	return b.Set("--no-cache")
}

// Platform sets the target platform (e.g. linux/amd64)
func (b *Builder) Platform(platform string) *Builder {
	return b.Set("--platform", platform)
}

// Progress sets the progress output type (auto, plain, tty)
func (b *Builder) Progress(mode string) *Builder {
	return b.Set("--progress", mode)
}

// Pull always attempts to pull newer versions of base images
func (b *Builder) Pull() *Builder {
	return b.Set("--pull")
}

// Quiet suppresses build output
func (b *Builder) Quiet() *Builder {
	return b.Set("--quiet")
}

// Secret exposes secrets to the build (`id=...,src=...` format)
func (b *Builder) Secret(secrets ...string) *Builder {
	return b.setList("--secret", secrets)
}

// SSH exposes SSH agent sockets or keys to the build
func (b *Builder) SSH(agents ...string) *Builder {
	return b.setList("--ssh", agents)
}

// Target sets the build stage to stop at
func (b *Builder) Target(stage string) *Builder {
	return b.Set("--target", stage)
}

// ToArgs serializes the accumulated flags into a flat token list.
// Boolean flags emit just the flag, scalar flags emit the flag followed
// by its value, and list flags repeat the flag once per element.
func (b *Builder) ToArgs() []string {
	args := []string{}

	for _, flag := range b.order {
		value := b.flags[flag]

		switch value.kind {
		case boolFlag:
			args = append(args, flag)
		case scalarFlag:
			args = append(args, flag, value.scalar)
		case listFlag:
			for _, elem := range value.list {
				args = append(args, flag, elem)
			}
		}
	}

	return args
}

// Supported returns the flag allow-list
func Supported() []string {
	flags := make([]string, len(supportedFlags))
	copy(flags, supportedFlags)
	return flags
}

// FilterSupported narrows a list of flag tokens down to the ones present
// in the allow-list, preserving their relative order. Unknown tokens are
// dropped without error.
func FilterSupported(tokens []string) []string {
	filtered := []string{}

	for _, token := range tokens {
		if supportedSet[token] {
			filtered = append(filtered, token)
		} else {
			log.Debugf("Ignoring unsupported build flag `%s`", token)
		}
	}

	return filtered
}
