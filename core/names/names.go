package names

import (
	"regexp"
	"strings"
)

const (
	maxLabelLength = 63
	fallbackLabel  = "image"
)

var invalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// ToDNSLabel sanitizes an arbitrary string (typically a construct path or
// a directory name) into a single DNS label: lowercase alphanumerics and
// hyphens, no leading or trailing hyphen, at most 63 characters. An input
// with no usable characters maps to a stable fallback rather than an
// empty label.
func ToDNSLabel(name string) string {
	label := strings.ToLower(name)
	label = invalidChars.ReplaceAllString(label, "-")
	label = strings.Trim(label, "-")

	if len(label) > maxLabelLength {
		label = label[:maxLabelLength]
		label = strings.TrimRight(label, "-")
	}

	if label == "" {
		return fallbackLabel
	}

	return label
}
