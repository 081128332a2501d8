package names

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDNSLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already valid",
			input:    "my-image",
			expected: "my-image",
		},
		{
			name:     "construct path",
			input:    "chart/my-app/image",
			expected: "chart-my-app-image",
		},
		{
			name:     "uppercase and underscores",
			input:    "My_App_Image",
			expected: "my-app-image",
		},
		{
			name:     "leading and trailing separators",
			input:    "./foobar/",
			expected: "foobar",
		},
		{
			name:     "consecutive invalid characters collapse",
			input:    "a__b..c",
			expected: "a-b-c",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "image",
		},
		{
			name:     "only invalid characters",
			input:    "///",
			expected: "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ToDNSLabel(tt.input))
		})
	}
}

func TestToDNSLabelTruncation(t *testing.T) {
	long := strings.Repeat("a", 100)
	label := ToDNSLabel(long)
	require.Len(t, label, 63)

	// Truncation must not leave a trailing hyphen
	label = ToDNSLabel(strings.Repeat("ab-", 21) + "rest")
	require.LessOrEqual(t, len(label), 63)
	require.False(t, strings.HasSuffix(label, "-"))
}
