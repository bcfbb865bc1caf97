package batch

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// formatBatchResults renders the batch report in the specified format.
func formatBatchResults(result *Result, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(result)
	case "yaml":
		return formatYAML(result)
	default: // text
		return formatText(result), nil
	}
}

// formatJSON renders the report as pretty JSON.
func formatJSON(result *Result) (string, error) {
	bts, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bts), nil
}

// formatYAML renders the report as YAML.
func formatYAML(result *Result) (string, error) {
	bts, err := yaml.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(bts), nil
}

// formatText renders a per-document plain text report.
func formatText(result *Result) string {
	var output strings.Builder
	for i, d := range result.Documents {
		if i > 0 {
			output.WriteString("\n")
		}
		if d.Error != "" {
			fmt.Fprintf(&output, "# %s\n  FAILED: %s\n", d.Input, d.Error)
			continue
		}
		output.WriteString("# ")
		output.WriteString(d.Result.Summary())
	}
	fmt.Fprintf(&output, "\n%d succeeded, %d failed\n", result.Succeeded, result.Failed)
	return output.String()
}
