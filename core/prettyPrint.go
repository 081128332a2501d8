package core

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			MarginTop(1).
			Padding(0, 1)

	fieldNameStyle = lipgloss.NewStyle().
			Bold(true).
			Width(8).
			MarginLeft(1).
			Foreground(lipgloss.Color("13"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Margin(0, 1)

	valueStyle = lipgloss.NewStyle()

	urlStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))
)

type PrintOptions struct {
	Version string
}

func PrettyPrintBuildResult(buildResult *BuildResult, options ...PrintOptions) {
	output := FormatBuildResult(buildResult, options...)
	fmt.Print(output)
}

func FormatBuildResult(br *BuildResult, options ...PrintOptions) string {
	var opts PrintOptions
	if len(options) > 0 {
		opts = options[0]
	}

	var output strings.Builder

	header := "cdk8s-image"
	if opts.Version != "" {
		header = fmt.Sprintf("cdk8s-image %s", opts.Version)
	}
	output.WriteString(headerStyle.Render(header))
	output.WriteString("\n")

	separator := separatorStyle.Render("│")

	fields := []struct {
		name  string
		value string
	}{
		{"Tag", valueStyle.Render(br.Tag)},
		{"Digest", valueStyle.Render(br.Digest)},
		{"URL", urlStyle.Render(br.URL)},
	}

	for _, field := range fields {
		output.WriteString(fmt.Sprintf("%s%s%s", fieldNameStyle.Render(field.name), separator, field.value))
		output.WriteString("\n")
	}

	output.WriteString("\n")
	return output.String()
}
