package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const tableTimeLayout = "2006-01-02 15:04:05"

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownFormat, format)
	}
}

// render writes data as JSON or YAML, or calls table for the table format.
func render(w io.Writer, data any, table func(io.Writer) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		return printJSON(w, data)
	case constants.FormatYAML:
		return printYAML(w, data)
	default:
		return table(w)
	}
}

func printJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode as JSON: %w", err)
	}

	return nil
}

// printYAML goes through JSON first so entities keep their wire names.
func printYAML(w io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	var plain any

	err = json.Unmarshal(raw, &plain)
	if err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()

	err = encoder.Encode(plain)
	if err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	return nil
}

func newTable(w io.Writer, headers ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers...)

	return table
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// formatStatus turns PASSWORD_EXPIRED into "Password Expired".
func formatStatus(status string) string {
	if status == "" {
		return constants.NotAvailable
	}

	words := strings.ReplaceAll(strings.ToLower(status), "_", " ")

	return cases.Title(language.English).String(words)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.UTC().Format(tableTimeLayout)
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func truncate(value string, length int) string {
	if len(value) <= length {
		return value
	}

	return value[:length-3] + "..."
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))

	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}

	return strings.Join(out, sep)
}
