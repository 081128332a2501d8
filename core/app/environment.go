package app

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

// Environment holds the build-time variables passed to docker as
// `--build-arg` pairs
type Environment struct {
	Variables map[string]string
}

func NewEnvironment(variables *map[string]string) *Environment {
	if variables == nil {
		variables = &map[string]string{}
	}

	return &Environment{Variables: *variables}
}

// FromEnvs collects variables from `NAME=value` pairs. A bare `NAME` pulls
// the value from the current process environment, matching what docker
// does for a valueless `--build-arg`.
func FromEnvs(envs []string) (*Environment, error) {
	env := NewEnvironment(nil)
	re := regexp.MustCompile(`([A-Za-z0-9_-]*)(?:=?)(.*)`)

	for _, e := range envs {
		matches := re.FindStringSubmatch(e)
		if len(matches) < 3 {
			continue
		}

		name := matches[1]
		value := matches[2]

		if value == "" {
			// No value, pull from current environment
			if v, ok := os.LookupEnv(name); ok {
				env.SetVariable(name, v)
			}
		} else {
			// Use provided name, value pair
			env.SetVariable(name, value)
		}
	}

	return env, nil
}

// GetVariable returns the value of the given variable name
func (e *Environment) GetVariable(name string) string {
	return e.Variables[name]
}

// SetVariable stores a variable in the Environment
func (e *Environment) SetVariable(name, value string) {
	e.Variables[name] = value
}

// ToBuildArgs flattens the variables into sorted `NAME=value` pairs
// suitable for the `--build-arg` flag. Sorting keeps the docker
// invocation deterministic.
func (e *Environment) ToBuildArgs() []string {
	if len(e.Variables) == 0 {
		return nil
	}

	names := make([]string, 0, len(e.Variables))
	for name := range e.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, 0, len(names))
	for _, name := range names {
		args = append(args, fmt.Sprintf("%s=%s", name, e.Variables[name]))
	}

	return args
}
