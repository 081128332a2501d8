package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEnvs(t *testing.T) {
	env, err := FromEnvs([]string{
		"VAR1=value1",
		"VAR2=value2",
		"GIT_SHA=abc123",
	})

	require.NoError(t, err)
	require.Equal(t, env.GetVariable("VAR1"), "value1")
	require.Equal(t, env.GetVariable("VAR2"), "value2")
	require.Equal(t, env.GetVariable("GIT_SHA"), "abc123")
}

func TestFromEnvsPullsFromProcessEnvironment(t *testing.T) {
	t.Setenv("CDK8S_IMAGE_TEST_VAR", "from-process")

	env, err := FromEnvs([]string{"CDK8S_IMAGE_TEST_VAR"})
	require.NoError(t, err)
	require.Equal(t, "from-process", env.GetVariable("CDK8S_IMAGE_TEST_VAR"))
}

func TestToBuildArgs(t *testing.T) {
	env, err := FromEnvs([]string{
		"ZED=last",
		"ALPHA=first",
		"MID=middle",
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"ALPHA=first",
		"MID=middle",
		"ZED=last",
	}, env.ToBuildArgs())
}

func TestToBuildArgsEmpty(t *testing.T) {
	require.Nil(t, NewEnvironment(nil).ToBuildArgs())
}
